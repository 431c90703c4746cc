package model

import "time"

type User struct {
	ID              string     `json:"_id"`
	Email           string     `json:"email"`
	Name            string     `json:"name,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	HourlyRate      float64    `json:"hourly_rate,omitempty"`
	Skills          []string   `json:"skills,omitempty"`
	UpworkConnected bool       `json:"upwork_connected,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// UserPatch is a partial user record; nil fields are left untouched.
type UserPatch struct {
	Email           *string
	Name            *string
	Bio             *string
	HourlyRate      *float64
	Skills          *[]string
	UpworkConnected *bool
}

// Apply merges p into a copy of u and returns the copy.
func (p UserPatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.HourlyRate != nil {
		u.HourlyRate = *p.HourlyRate
	}
	if p.Skills != nil {
		u.Skills = append([]string(nil), (*p.Skills)...)
	}
	if p.UpworkConnected != nil {
		u.UpworkConnected = *p.UpworkConnected
	}
	return u
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthResult is the payload of login and register.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
