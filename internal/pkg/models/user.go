package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an identity record in the system
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FullName     string    `json:"full_name" db:"full_name"`
	MSISDN       string    `json:"msisdn" db:"msisdn"`
	PasswordHash string    `json:"-" db:"password_hash"`
	APIKey       string    `json:"-" db:"api_key"`
	APISecret    string    `json:"-" db:"api_secret"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	Roles        []string  `json:"roles" db:"-"`
}

// HasRole reports whether the user holds any of the given roles
func (u *User) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// HasCredentials reports whether the user has a complete API credential pair
func (u *User) HasCredentials() bool {
	return u.APIKey != "" && u.APISecret != ""
}
