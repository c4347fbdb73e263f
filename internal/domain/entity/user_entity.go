package entity

import (
	"time"
)

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in PasswordHash field
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
