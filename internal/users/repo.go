package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrDuplicateID = errors.New("user id already exists")
)

// Repo defines storage operations for users. Connection-state failures
// surface as memdb.ErrNotConnected from the backing store.
type Repo interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	Update(ctx context.Context, userID string, upd Update) (User, error)
	List(ctx context.Context) ([]User, error)
}
