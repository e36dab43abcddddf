package domain

import "time"

// Goal is a user-owned progress record. UserID links the goal to the account
// that created it; every read and write is scoped by that field.
type Goal struct {
	ID          string
	UserID      string
	Description string
	Target      float64
	Progress    float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
