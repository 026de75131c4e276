package models

import "time"

// RefreshToken is an opaque server-stored token. It is rotated on every
// refresh: the presented token is deleted and a new one issued in the same
// transaction.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
