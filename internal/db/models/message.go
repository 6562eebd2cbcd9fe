package models

import "time"

// Message represents a condolence note attached to a single tribute.
// TributeID is an advisory reference; it is not backed by a database
// foreign key constraint, the cascade on tribute deletion is handled in
// the tribute controller.
type Message struct {
	// ID is the unique identifier for the message.
	ID uint64 `gorm:"primaryKey"`
	// TributeID references the tribute this message belongs to.
	TributeID uint64 `gorm:"index;not null"`
	// Author is the visitor-supplied name of the message writer.
	Author string `gorm:"size:100"`
	// Content is the free-text condolence message.
	Content string `gorm:"type:text"`
	// Likes counts the like button presses for this message.
	Likes int64 `gorm:"not null;default:0"`
	// CreatedAt is the timestamp when the message was created (managed by GORM).
	CreatedAt time.Time
}
