package models

// User holds the single login credential. Exactly one row exists after the
// first startup; it is never deleted, only the hash is replaced on password
// change.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	PasswordHash string `gorm:"size:256;not null"`
}
