package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mcnijman/go-emailaddress"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidEmail = errors.New("invalid email format")
)

// Service validates input before handing it to the repository.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Create(ctx context.Context, user User) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" {
		return User{}, fmt.Errorf("%w: id", ErrMissingField)
	}
	if strings.TrimSpace(user.Name) == "" {
		return User{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	if err := validateEmail(user.Email); err != nil {
		return User{}, err
	}
	return s.Repo.Create(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: id", ErrMissingField)
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, upd Update) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: id", ErrMissingField)
	}
	if upd.Email != nil {
		if err := validateEmail(*upd.Email); err != nil {
			return User{}, err
		}
	}
	return s.Repo.Update(ctx, userID, upd)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("users service not configured")
	}
	return s.Repo.List(ctx)
}

func validateEmail(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: email", ErrMissingField)
	}
	if _, err := emailaddress.Parse(strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return nil
}
