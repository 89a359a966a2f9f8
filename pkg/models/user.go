package models

import (
	"fmt"

	"github.com/campusbridge/campusbridge/pkg/repository/document"
)

// Role partitions users by what they may post and moderate.
type Role string

const (
	RoleIndustry   Role = "industry"
	RoleUniversity Role = "university"
	RoleAdmin      Role = "admin"
	RoleStudent    Role = "student"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleIndustry, RoleUniversity, RoleAdmin, RoleStudent:
		return true
	}
	return false
}

// Profile holds the user-editable identity fields. Only the name is
// required.
type Profile struct {
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
	Logo     string `json:"logo,omitempty"`
	Website  string `json:"website,omitempty"`
	Location string `json:"location,omitempty"`
	Contact  string `json:"contact,omitempty"`
}

// User is the local profile for an externally-verified identity. Its
// id equals the identity-provider subject.
type User struct {
	document.Base
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	Profile    Profile `json:"profile"`
	IsVerified bool    `json:"isVerified"`
}

func (u *User) Collection() string { return "users" }

// CreatorRef returns nil; users are not owned by other users.
func (u *User) CreatorRef() *document.Ref { return nil }

func (u *User) Validate() error {
	if err := requireString("email", u.Email); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	return requireString("profile.name", u.Profile.Name)
}
