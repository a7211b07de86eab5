package models

// User owns exactly one widget session; its ID is the session ID.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
	Guest        bool   `json:"guest"`
}
