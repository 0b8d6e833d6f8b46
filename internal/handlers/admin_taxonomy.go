package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hexphyre/internal/models"
	"hexphyre/internal/render"
	"hexphyre/internal/slug"
)

// CategoriesPage renders the category manager.
func (a *Admin) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	a.taxonomyPage(w, r, models.TaxonomyCategory, "")
}

// TagsPage renders the tag manager.
func (a *Admin) TagsPage(w http.ResponseWriter, r *http.Request) {
	a.taxonomyPage(w, r, models.TaxonomyTag, "")
}

// CategoryCreate adds a new category from the inline form.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	a.taxonomyCreate(w, r, models.TaxonomyCategory)
}

// TagCreate adds a new tag from the inline form.
func (a *Admin) TagCreate(w http.ResponseWriter, r *http.Request) {
	a.taxonomyCreate(w, r, models.TaxonomyTag)
}

// CategoryUpdate renames a category. Posts keep the old name in their
// category set; renames do not cascade.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	a.taxonomyUpdate(w, r, models.TaxonomyCategory)
}

// TagUpdate renames a tag.
func (a *Admin) TagUpdate(w http.ResponseWriter, r *http.Request) {
	a.taxonomyUpdate(w, r, models.TaxonomyTag)
}

// CategoryDelete removes a category.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	a.taxonomyDelete(w, r, models.TaxonomyCategory)
}

// TagDelete removes a tag.
func (a *Admin) TagDelete(w http.ResponseWriter, r *http.Request) {
	a.taxonomyDelete(w, r, models.TaxonomyTag)
}

// taxonomyPage renders the shared manager template for one kind.
func (a *Admin) taxonomyPage(w http.ResponseWriter, r *http.Request, kind models.TaxonomyKind, errMsg string) {
	items, err := a.taxonomyStore.List(kind)
	if err != nil {
		slog.Error("list taxonomies failed", "error", err, "kind", kind)
	}

	heading, section, basePath := "Categories", "categories", "/admin/categories"
	if kind == models.TaxonomyTag {
		heading, section, basePath = "Tags", "tags", "/admin/tags"
	}

	var flashes []render.Flash
	if errMsg != "" {
		flashes = append(flashes, render.Flash{Type: "error", Message: errMsg})
	}

	a.renderer.Page(w, r, "taxonomies", &render.PageData{
		Title:   heading,
		Section: section,
		Flashes: flashes,
		Data: map[string]any{
			"Heading":       heading,
			"BasePath":      basePath,
			"Items":         items,
			"ShowPostCount": kind == models.TaxonomyCategory,
		},
	})
}

func (a *Admin) taxonomyCreate(w http.ResponseWriter, r *http.Request, kind models.TaxonomyKind) {
	name := r.FormValue("name")
	description := r.FormValue("description")

	if errMsg := validateTaxonomy(name, description); errMsg != "" {
		a.taxonomyPage(w, r, kind, errMsg)
		return
	}

	_, err := a.taxonomyStore.Create(&models.Taxonomy{
		Kind:        kind,
		Name:        name,
		Slug:        slug.Generate(name),
		Description: description,
	})
	if err != nil {
		slog.Error("create taxonomy failed", "error", err, "kind", kind)
		a.taxonomyPage(w, r, kind, "Failed to create.")
		return
	}

	a.redirectToManager(w, r, kind)
}

func (a *Admin) taxonomyUpdate(w http.ResponseWriter, r *http.Request, kind models.TaxonomyKind) {
	t, ok := a.findTaxonomy(w, r, kind)
	if !ok {
		return
	}

	name := r.FormValue("name")
	description := r.FormValue("description")
	if errMsg := validateTaxonomy(name, description); errMsg != "" {
		a.taxonomyPage(w, r, kind, errMsg)
		return
	}

	t.Name = name
	t.Slug = slug.Generate(name)
	t.Description = description
	if err := a.taxonomyStore.Update(t); err != nil {
		slog.Error("update taxonomy failed", "error", err, "id", t.ID)
		a.taxonomyPage(w, r, kind, "Failed to save.")
		return
	}

	a.redirectToManager(w, r, kind)
}

func (a *Admin) taxonomyDelete(w http.ResponseWriter, r *http.Request, kind models.TaxonomyKind) {
	t, ok := a.findTaxonomy(w, r, kind)
	if !ok {
		return
	}

	if err := a.taxonomyStore.Delete(t.ID); err != nil {
		slog.Error("delete taxonomy failed", "error", err, "id", t.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// HTMX delete refreshes the manager in place.
	a.taxonomyPage(w, r, kind, "")
}

// findTaxonomy resolves the {id} URL parameter, rejecting IDs that
// belong to the other kind so category routes cannot touch tags.
func (a *Admin) findTaxonomy(w http.ResponseWriter, r *http.Request, kind models.TaxonomyKind) (*models.Taxonomy, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return nil, false
	}

	t, err := a.taxonomyStore.FindByID(id)
	if err != nil {
		slog.Error("find taxonomy failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if t == nil || t.Kind != kind {
		http.NotFound(w, r)
		return nil, false
	}
	return t, true
}

func (a *Admin) redirectToManager(w http.ResponseWriter, r *http.Request, kind models.TaxonomyKind) {
	target := "/admin/categories"
	if kind == models.TaxonomyTag {
		target = "/admin/tags"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
