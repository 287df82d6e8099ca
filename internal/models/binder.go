package models

import "time"

// Binder is the top-level budget container. It owns its categories and
// transactions exclusively; deleting a binder removes both.
type Binder struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time

	Categories   []Category    `gorm:"constraint:OnDelete:CASCADE"`
	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE"`
}
