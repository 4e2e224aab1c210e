// Package models holds the server-side records shared by repositories and
// services.
package models

import "time"

// User is the stored user record. PasswordHash must never leave the
// service layer; hand out a Profile instead.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the hash-free view of a user. It is also the application part
// of the session token claims.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile strips the password hash from the record.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}
