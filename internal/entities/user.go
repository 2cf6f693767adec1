// Package entities contains core business entities.
package entities

import "time"

// UserID identifies an authenticated caller.
type UserID = int64

// User is a domain representation of a registered account.
type User struct {
	ID           UserID
	Name         *string
	Surname      *string
	Email        string
	Username     *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser carries validated registration input.
type NewUser struct {
	Name         *string
	Surname      *string
	Email        string
	Username     *string
	PasswordHash string
}

// AccessToken is one issued bearer credential.
type AccessToken struct {
	ID        string
	UserID    UserID
	Name      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Session is the result of a successful register or login.
type Session struct {
	User  User
	Token string
}

// Registration carries raw sign-up input before hashing.
type Registration struct {
	Name     *string
	Surname  *string
	Email    string
	Username *string
	Password string
}
