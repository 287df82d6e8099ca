package models

import "time"

// Session stores server-side login sessions and their pending flash
// messages. Flashes is a JSON-encoded queue drained on the next page render.
type Session struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Authenticated bool      `gorm:"not null"`
	Flashes       string    `gorm:"type:text"`
	ExpiresAt     time.Time `gorm:"index;not null"`
	CreatedAt     time.Time
}
