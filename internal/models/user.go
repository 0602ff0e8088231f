package models

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type Role string

const (
	RoleUser  Role = "user"
	RoleChief Role = "chief"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleChief, RoleAdmin:
		return true
	}
	return false
}

// AppUser - пользователь приложения, которым управляет администратор
type AppUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type AppUserPatch struct {
	Name   *string
	Email  *string
	Role   *Role
	Active *bool
}

// Apply делает поверхностное слияние полей
func (p AppUserPatch) Apply(u *AppUser) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Active != nil {
		u.Active = *p.Active
	}
}

// User - пользователь текущей сессии
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// SessionToken - выданный клиенту токен сессии
type SessionToken struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}
