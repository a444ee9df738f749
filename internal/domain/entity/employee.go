package entity

import (
	"time"
)

// Employee account lifecycle states and roles. Both default to the zero
// value at signup; downstream services own any further transitions.
const (
	StatusNew    = 0
	StatusActive = 1

	RoleBase  = 0
	RoleAdmin = 1
)

// DefaultTitle is assigned to every self-service signup.
const DefaultTitle = "Software Engineer"

// Employee is the aggregate root for the employee account domain.
// PasswordHash holds an argon2id PHC digest, never a plaintext password.
//
// Username is the unique lookup key; the employees table enforces it.
type Employee struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Username     string
	PasswordHash string
	Title        string
	Status       int
	Role         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
