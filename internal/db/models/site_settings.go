package models

// SiteSettings represents the single global record controlling the home
// page hero banner. Exactly one logical row exists (id = 1); it is seeded
// once at startup and only ever updated afterwards.
type SiteSettings struct {
	ID           uint64 `gorm:"primaryKey"`
	HeroTitle    string `gorm:"size:255"`
	HeroText     string `gorm:"type:text"`
	HeroImageURL string `gorm:"size:512"`
}
