package auth

import "time"

type Role string

const (
	RoleCliente Role = "cliente"
	RoleAdmin   Role = "admin"
)

// User is the domain representation of a portal account.
// It mirrors the users table and should not include JSON annotations so it
// can be reused by different presentation layers.
type User struct {
	ID           string
	Email        string
	FullName     string
	DNI          *string
	PasswordHash string
	Phone        *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the authenticated caller passed explicitly to operations that
// act on behalf of a user.
type Session struct {
	UserID   string
	Email    string
	FullName string
	Role     Role
}

// Authenticated reports whether s identifies a user. A nil session is anonymous.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// RegisterRequest contains user registration data supplied by callers.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	DNI      string `json:"dni"`
	Role     Role   `json:"role"`
}

// LoginRequest contains user login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
