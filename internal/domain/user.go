package domain

import "time"

// User is an account that owns projects. PasswordHash never leaves the server.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	MaxUsernameLen = 50
	MaxEmailLen    = 100
)
