package models

import "time"

// Transaction is a single dated monetary entry. It belongs to exactly one
// binder and one category; binder_id and created_at are immutable after
// insert.
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`
	Date        time.Time `gorm:"not null;index"`
	Description string    `gorm:"size:200"`
	Amount      float64   `gorm:"not null"`
	BinderID    uint      `gorm:"not null;index"`
	CategoryID  uint      `gorm:"not null;index"`
	CreatedAt   time.Time
}
