package dto

import "time"

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Email    string  `json:"email"`
	Username *string `json:"username"`
	Password string  `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User never carries the password hash.
type User struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name"`
	Surname   *string   `json:"surname"`
	Email     string    `json:"email"`
	Username  *string   `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User User `json:"user"`
}
