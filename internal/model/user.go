package model

import "time"

// Role names stored in the users.role column.  STAFF accounts may only
// operate on their own time entries; ADMIN accounts additionally manage
// accounts, read every user's entries and export timesheets.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User represents a staff account as stored in the `users` table.
// Usernames are full email addresses, lowercased and trimmed at the
// boundary before they ever reach this struct.
//
// Fields:
//  ID           – UUID primary key of the user.
//  Email        – unique, normalized email address used to log in.
//  PasswordHash – bcrypt hashed password.
//  Name         – display name shown on dashboards and exports.
//  Role         – RoleAdmin or RoleStaff.
//  IsActive     – whether the account may log in; deactivated accounts
//                 keep their historical entries.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
