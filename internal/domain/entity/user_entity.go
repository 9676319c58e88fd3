package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never the plaintext credential.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicProfile is the subset of user fields safe to show next to a listing.
type PublicProfile struct {
	Name  string
	Email string
}
