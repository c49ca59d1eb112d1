package model

import "time"

// Role determines field visibility and write permissions.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleInternalTeacher  Role = "internal_teacher"
	RoleInternalBusiness Role = "internal_business"
	RoleExternal         Role = "external"
)

// Roles lists every accepted role value.
var Roles = []Role{RoleAdmin, RoleInternalTeacher, RoleInternalBusiness, RoleExternal}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents an account that can authenticate against the API.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"first_name" gorm:"size:255;not null"`
	LastName     string    `json:"last_name" gorm:"size:255;not null"`
	Role         Role      `json:"role" gorm:"size:50;not null;index"`
	Gender       *string   `json:"gender" gorm:"size:50"`
	DateOfBirth  *string   `json:"date_of_birth" gorm:"size:10"` // ISO date, optional
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the identity payload returned by login and verify.
type UserSummary struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// Summary reduces a user to the fields exposed by the auth endpoints.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
