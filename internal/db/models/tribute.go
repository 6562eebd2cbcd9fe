// Package models contains database model definitions.
package models

import "time"

// Tribute represents a memorial page for one deceased individual.
type Tribute struct {
	// ID is the unique identifier for the tribute.
	ID uint64 `gorm:"primaryKey"`
	// FirstName is the first name of the remembered person.
	FirstName string `gorm:"size:100"`
	// LastName is the last name of the remembered person.
	LastName string `gorm:"size:100"`
	// Bio is the free-text biography shown on the tribute page.
	Bio string `gorm:"type:text"`
	// Photo is a URL or uploaded-file path; a placeholder URL when none was supplied.
	Photo string `gorm:"size:512"`
	// FuneralHome is the free-text funeral home field.
	FuneralHome string `gorm:"size:255"`
	// CreatedAt is the timestamp when the tribute was created (managed by GORM).
	CreatedAt time.Time
}
