package models

// SocialLinks holds the optional social profile URLs shown in the footer.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// SiteSettings is the singleton document holding site-wide configurable
// copy and links. Exactly one instance exists; readers fall back to
// DefaultSettings when it has never been written.
type SiteSettings struct {
	SiteTitle       string      `json:"siteTitle"`
	SiteDescription string      `json:"siteDescription"`
	AdminEmail      string      `json:"adminEmail"`
	SocialLinks     SocialLinks `json:"socialLinks"`
	HeroLabel       string      `json:"heroLabel"`
	HeroTitle       string      `json:"heroTitle"`
	HeroSubtitle    string      `json:"heroSubtitle"`
}

// DefaultSettings returns the hardcoded fallback used when the settings
// document does not exist yet.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		SiteTitle:       "HEXPHYRE TECHNOLOGIES",
		SiteDescription: "Inspiring future through advanced AI solutions, from predictive analytics to autonomous systems.",
		AdminEmail:      "",
		SocialLinks:     SocialLinks{},
		HeroLabel:       "",
		HeroTitle:       "DR AFNIZANFAIZAL",
		HeroSubtitle:    "Inspiring future through advanced AI solutions, from predictive analytics to autonomous systems, that deliver measurable results.",
	}
}

// SocialLinksPatch carries partial updates for SocialLinks. Nil fields
// are left unchanged.
type SocialLinksPatch struct {
	LinkedIn  *string `json:"linkedin,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
}

// SettingsPatch carries partial updates for SiteSettings. Nil fields are
// left unchanged; SocialLinks merges one level deep.
type SettingsPatch struct {
	SiteTitle       *string           `json:"siteTitle,omitempty"`
	SiteDescription *string           `json:"siteDescription,omitempty"`
	AdminEmail      *string           `json:"adminEmail,omitempty"`
	SocialLinks     *SocialLinksPatch `json:"socialLinks,omitempty"`
	HeroLabel       *string           `json:"heroLabel,omitempty"`
	HeroTitle       *string           `json:"heroTitle,omitempty"`
	HeroSubtitle    *string           `json:"heroSubtitle,omitempty"`
}

// Merge applies a patch to the settings. Top-level fields are replaced
// when present; socialLinks merges its own fields individually. Deeper
// structures do not exist, so no deep merge is provided.
func (s *SiteSettings) Merge(p SettingsPatch) {
	if p.SiteTitle != nil {
		s.SiteTitle = *p.SiteTitle
	}
	if p.SiteDescription != nil {
		s.SiteDescription = *p.SiteDescription
	}
	if p.AdminEmail != nil {
		s.AdminEmail = *p.AdminEmail
	}
	if p.HeroLabel != nil {
		s.HeroLabel = *p.HeroLabel
	}
	if p.HeroTitle != nil {
		s.HeroTitle = *p.HeroTitle
	}
	if p.HeroSubtitle != nil {
		s.HeroSubtitle = *p.HeroSubtitle
	}
	if p.SocialLinks != nil {
		if p.SocialLinks.LinkedIn != nil {
			s.SocialLinks.LinkedIn = *p.SocialLinks.LinkedIn
		}
		if p.SocialLinks.Facebook != nil {
			s.SocialLinks.Facebook = *p.SocialLinks.Facebook
		}
		if p.SocialLinks.Instagram != nil {
			s.SocialLinks.Instagram = *p.SocialLinks.Instagram
		}
	}
}
