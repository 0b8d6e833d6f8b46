package handlers

import (
	"log/slog"
	"net/http"

	"hexphyre/internal/models"
	"hexphyre/internal/render"
)

// SettingsPage renders the site settings form. Missing stored values
// show their defaults.
func (a *Admin) SettingsPage(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settingsStore.Get()
	if err != nil {
		slog.Error("load settings failed", "error", err)
	}

	a.renderer.Page(w, r, "settings", &render.PageData{
		Title:   "Settings",
		Section: "settings",
		Data:    map[string]any{"Settings": settings},
	})
}

// SettingsSave merges the submitted form into the stored settings.
// Every field is present in the form, so each is sent as an explicit
// value; clearing a field stores an empty string rather than reverting
// to the default.
func (a *Admin) SettingsSave(w http.ResponseWriter, r *http.Request) {
	patch := models.SettingsPatch{
		SiteTitle:       formPtr(r, "site_title"),
		SiteDescription: formPtr(r, "site_description"),
		AdminEmail:      formPtr(r, "admin_email"),
		HeroLabel:       formPtr(r, "hero_label"),
		HeroTitle:       formPtr(r, "hero_title"),
		HeroSubtitle:    formPtr(r, "hero_subtitle"),
		SocialLinks: &models.SocialLinksPatch{
			LinkedIn:  formPtr(r, "linkedin"),
			Facebook:  formPtr(r, "facebook"),
			Instagram: formPtr(r, "instagram"),
		},
	}

	settings, err := a.settingsStore.Update(patch)
	if err != nil {
		slog.Error("save settings failed", "error", err)
		a.renderer.Page(w, r, "settings", &render.PageData{
			Title:   "Settings",
			Section: "settings",
			Flashes: []render.Flash{{Type: "error", Message: "Failed to save settings."}},
			Data:    map[string]any{"Settings": settings},
		})
		return
	}

	// Settings feed the public layout, so every cached page is stale.
	a.pageCache.InvalidateAll(r.Context())

	a.renderer.Page(w, r, "settings", &render.PageData{
		Title:   "Settings",
		Section: "settings",
		Flashes: []render.Flash{{Type: "success", Message: "Settings saved."}},
		Data:    map[string]any{"Settings": settings},
	})
}

// formPtr returns a pointer to the form value. The pointer is always
// non-nil: submitting an empty field is an explicit clear, not an
// omission.
func formPtr(r *http.Request, key string) *string {
	v := r.FormValue(key)
	return &v
}
