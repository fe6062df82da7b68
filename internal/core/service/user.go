package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AlejoJamC/banking-account/internal/core/domain"
)

// ErrBlankEmail rejects directory searches without a usable query.
var ErrBlankEmail = errors.New("email must not be blank")

// UserService serves the user directory endpoints.
type UserService struct {
	reader UserReader
}

func NewUserService(reader UserReader) *UserService {
	return &UserService{reader: reader}
}

func (s *UserService) AllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.reader.ListUsers(ctx)
}

// SearchByEmail finds a user by email, case-insensitively.
func (s *UserService) SearchByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrBlankEmail
	}
	return s.reader.FindUserByEmail(ctx, email)
}
