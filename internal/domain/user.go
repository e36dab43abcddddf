package domain

import "time"

// User represents a registered account of the system. PasswordHash only ever
// holds the bcrypt digest; the plaintext never outlives the request carrying it.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
