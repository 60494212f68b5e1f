package domain

import "time"

// Project is a named container owned by exactly one user.
// Deleting a project deletes its todos (ON DELETE CASCADE).
type Project struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	UserID      int64     `db:"user_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const MaxNameLen = 200
