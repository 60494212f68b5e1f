package domain

// SeedData is the fixed-id demo dataset inserted into an empty store.
type SeedData struct {
	Users    []User
	Projects []Project
	Todos    []Todo
}
