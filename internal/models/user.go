package models

// User represents an operator in the system
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Not serialized
	CreatedAt    string `json:"created_at"`
}
