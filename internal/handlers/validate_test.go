package handlers

import (
	"strings"
	"testing"
)

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		slug    string
		wantErr bool
	}{
		{"valid", "A Post", "a-post", false},
		{"empty title", "", "a-post", true},
		{"whitespace title", "   ", "a-post", true},
		{"title at limit", strings.Repeat("a", 300), "s", false},
		{"title over limit", strings.Repeat("a", 301), "s", true},
		{"slug over limit", "ok", strings.Repeat("s", 301), true},
		{"empty slug is fine, one is generated later", "ok", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validatePost(tt.title, tt.slug)
			if (got != "") != tt.wantErr {
				t.Errorf("validatePost(%q, %q) = %q, wantErr %v", tt.title, tt.slug, got, tt.wantErr)
			}
		})
	}
}

func TestValidateExcerpt(t *testing.T) {
	if msg := validateExcerpt(strings.Repeat("x", 1000)); msg != "" {
		t.Errorf("excerpt at limit rejected: %q", msg)
	}
	if msg := validateExcerpt(strings.Repeat("x", 1001)); msg == "" {
		t.Error("excerpt over limit accepted")
	}
	if msg := validateExcerpt(""); msg != "" {
		t.Errorf("empty excerpt rejected: %q", msg)
	}
}

func TestValidateTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		taxName     string
		description string
		wantErr     bool
	}{
		{"valid", "Engineering", "Posts about engineering", false},
		{"empty name", "", "", true},
		{"whitespace name", "  ", "", true},
		{"name at limit", strings.Repeat("n", 200), "", false},
		{"name over limit", strings.Repeat("n", 201), "", true},
		{"description over limit", "ok", strings.Repeat("d", 1001), true},
		{"empty description ok", "ok", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateTaxonomy(tt.taxName, tt.description)
			if (got != "") != tt.wantErr {
				t.Errorf("validateTaxonomy(%q, %q) = %q, wantErr %v", tt.taxName, tt.description, got, tt.wantErr)
			}
		})
	}
}

func TestBrowserFromUA(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"", ""},
		{"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", "Chrome"},
		{"Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0", "Edge"},
		{"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Firefox"},
		{"Mozilla/5.0 (Macintosh) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15", "Safari"},
		{"curl/8.4.0", "Other"},
	}

	for _, tt := range tests {
		if got := browserFromUA(tt.ua); got != tt.want {
			t.Errorf("browserFromUA(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}
