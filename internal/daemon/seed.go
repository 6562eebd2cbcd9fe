package daemon

import (
	"gorm.io/gorm"

	"github.com/rs/zerolog/log"

	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/controller/sitesettings"
	"github.com/memoriam-dev/memoriam/internal/db/controller/user"
	"github.com/memoriam-dev/memoriam/internal/db/models"
)

// Default hero banner content used when the settings table is empty.
const (
	defaultHeroTitle    = "In Loving Memory"
	defaultHeroText     = "Honoring those who remain in our hearts."
	defaultHeroImageURL = "https://images.unsplash.com/photo-1506744038136-46273834b3fb"
)

func seed(cfg *config.Config, db *gorm.DB) error {
	// Settings row is seeded exactly once, restarts leave it untouched.
	err := sitesettings.Seed(db, models.SiteSettings{
		HeroTitle:    defaultHeroTitle,
		HeroText:     defaultHeroText,
		HeroImageURL: defaultHeroImageURL,
	})
	if err != nil {
		return err
	}

	// Registration always creates non-admin users, so the configured admin
	// account is the only path to the admin role. Seeded only while the
	// user table is empty.
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		return nil
	}

	count, err := user.Count(db)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	if _, err = user.Create(db, cfg.Admin.Username, cfg.Admin.Password, true); err != nil {
		return err
	}

	log.Info().Str("username", cfg.Admin.Username).Msg("seeded admin account")

	return nil
}
