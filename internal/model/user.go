// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data; plain values with struct tags
// controlling how they serialize, no behaviour attached.
package model

import "time"

// Role constants returned by the login endpoint. The stored representation is
// the IsProfessor boolean; the role string is derived, never persisted.
const (
	RoleProfessor = "professor"
	RoleStudent   = "student"
)

// User represents a registered account; either a student or a professor.
//
// WHY IsProfessor bool (not a role string)?
// The wire format uses a single boolean flag at registration time, and the
// account is immutable after creation. A boolean can't drift into invalid
// states the way a free-form role column can.
//
// PasswordHash holds a bcrypt hash, never the plaintext. The `json:"-"` tag
// keeps it out of every JSON response; the directory endpoints return User
// values directly, so the hash must be unserializable rather than relying on
// each handler to strip it.
type User struct {
	ID           string    `json:"id"          db:"id"`
	Username     string    `json:"username"    db:"username"`
	PasswordHash string    `json:"-"           db:"password_hash"`
	IsProfessor  bool      `json:"isProfessor" db:"is_professor"`
	CreatedAt    time.Time `json:"createdAt"   db:"created_at"`
}

// Role derives the login role string from the professor flag.
func (u *User) Role() string {
	if u.IsProfessor {
		return RoleProfessor
	}
	return RoleStudent
}
