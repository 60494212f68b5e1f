package domain

import "time"

// Todo belongs to a project and has no direct user reference:
// its owner is always the owner of ProjectID.
type Todo struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	IsCompleted bool      `db:"is_completed"`
	ProjectID   int64     `db:"project_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const MaxTitleLen = 200
