package store

import (
	"testing"

	"hexphyre/internal/models"
)

func TestTaxonomyStore_CRUD(t *testing.T) {
	db := testDB(t)
	store := NewTaxonomyStore(db)

	t.Cleanup(func() { cleanTaxonomies(t, db, "Quantum Systems", "Quantum Platforms") })

	created, err := store.Create(&models.Taxonomy{
		Kind:        models.TaxonomyCategory,
		Name:        "Quantum Systems",
		Slug:        "quantum-systems",
		Description: "Posts about quantum systems.",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected generated id")
	}

	found, err := store.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil || found.Name != "Quantum Systems" {
		t.Fatalf("FindByID = %+v, want Quantum Systems", found)
	}

	found.Name = "Quantum Platforms"
	found.Slug = "quantum-platforms"
	if err := store.Update(found); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	again, err := store.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after update failed: %v", err)
	}
	if again.Name != "Quantum Platforms" {
		t.Errorf("name after update = %q, want %q", again.Name, "Quantum Platforms")
	}

	if err := store.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	gone, err := store.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete failed: %v", err)
	}
	if gone != nil {
		t.Error("expected nil for deleted taxonomy")
	}
}

func TestTaxonomyStore_DuplicateNamesAllowed(t *testing.T) {
	db := testDB(t)
	store := NewTaxonomyStore(db)

	t.Cleanup(func() { cleanTaxonomies(t, db, "Duplicated Name") })

	for i := 0; i < 2; i++ {
		if _, err := store.Create(&models.Taxonomy{
			Kind: models.TaxonomyTag,
			Name: "Duplicated Name",
			Slug: "duplicated-name",
		}); err != nil {
			t.Fatalf("Create duplicate %d failed: %v", i, err)
		}
	}
}

func TestTaxonomyStore_ListOrderCaseInsensitive(t *testing.T) {
	db := testDB(t)
	store := NewTaxonomyStore(db)

	names := []string{"zz-apple-tag", "ZZ-Banana-Tag"}
	t.Cleanup(func() { cleanTaxonomies(t, db, names...) })

	// Insert out of order: Banana first, apple second. Case-insensitive
	// ordering must still place apple before Banana.
	for _, name := range []string{"ZZ-Banana-Tag", "zz-apple-tag"} {
		if _, err := store.Create(&models.Taxonomy{
			Kind: models.TaxonomyTag,
			Name: name,
			Slug: name,
		}); err != nil {
			t.Fatalf("Create %s failed: %v", name, err)
		}
	}

	tags, err := store.List(models.TaxonomyTag)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	idx := map[string]int{}
	for i, tag := range tags {
		idx[tag.Name] = i
	}
	apple, okA := idx["zz-apple-tag"]
	banana, okB := idx["ZZ-Banana-Tag"]
	if !okA || !okB {
		t.Fatal("expected both test tags in the list")
	}
	if apple > banana {
		t.Error("expected zz-apple-tag before ZZ-Banana-Tag under case-insensitive ordering")
	}
}

func TestTaxonomyStore_PostCount(t *testing.T) {
	db := testDB(t)
	taxonomies := NewTaxonomyStore(db)
	posts := NewPostStore(db)

	t.Cleanup(func() {
		cleanPosts(t, db, "count-test-post-1", "count-test-post-2")
		cleanTaxonomies(t, db, "Counted Category")
	})

	cat, err := taxonomies.Create(&models.Taxonomy{
		Kind: models.TaxonomyCategory,
		Name: "Counted Category",
		Slug: "counted-category",
	})
	if err != nil {
		t.Fatalf("Create category failed: %v", err)
	}

	for _, slug := range []string{"count-test-post-1", "count-test-post-2"} {
		if _, err := posts.Create(&models.Post{
			Title:      "Count " + slug,
			Slug:       slug,
			Format:     models.BodyFormatMarkdown,
			Categories: []string{"Counted Category"},
		}); err != nil {
			t.Fatalf("Create post %s failed: %v", slug, err)
		}
	}

	list, err := taxonomies.List(models.TaxonomyCategory)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, c := range list {
		if c.ID == cat.ID && c.PostCount != 2 {
			t.Errorf("PostCount = %d, want 2", c.PostCount)
		}
	}
}

func TestTaxonomyStore_CountByKind(t *testing.T) {
	db := testDB(t)
	store := NewTaxonomyStore(db)

	t.Cleanup(func() { cleanTaxonomies(t, db, "Kind Count Tag") })

	before, err := store.CountByKind(models.TaxonomyTag)
	if err != nil {
		t.Fatalf("CountByKind failed: %v", err)
	}

	if _, err := store.Create(&models.Taxonomy{
		Kind: models.TaxonomyTag,
		Name: "Kind Count Tag",
		Slug: "kind-count-tag",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	after, err := store.CountByKind(models.TaxonomyTag)
	if err != nil {
		t.Fatalf("CountByKind failed: %v", err)
	}
	if after != before+1 {
		t.Errorf("CountByKind = %d, want %d", after, before+1)
	}
}
