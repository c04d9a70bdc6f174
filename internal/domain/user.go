package domain

import (
	"context"
	"fmt"
	"time"
)

// Role is the closed set of account roles. Authorization checks match on
// these constants, never on raw strings from a request or token.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRecruiter Role = "RECRUITER"
	RoleCandidate Role = "CANDIDATE"
)

// ParseRole maps a stored or transmitted role name onto the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleRecruiter:
		return RoleRecruiter, nil
	case RoleCandidate:
		return RoleCandidate, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Authority returns the granted-authority name for the role (ROLE_<role>).
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByEmail resolves case-insensitively.
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     Role
}

// AuthResult is what register and login hand back: a bearer token plus the
// resolved account.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetCurrentUser(ctx context.Context) (*User, error)
}
