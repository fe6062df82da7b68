package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns accounts. The core only needs it as the account owner reference
// and for the directory lookups the API exposes.
type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	NationalID string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUser(email, fullName, nationalID string) *User {
	return &User{
		ID:         uuid.New(),
		Email:      email,
		FullName:   fullName,
		NationalID: nationalID,
	}
}
