package users

import (
	"context"
	"errors"
	"fmt"

	"cv-backend/internal/shared/storage/memdb"
)

const keyPrefix = "user:"

// MemDBRepo stores users in a shared memdb.DB session. The repo never
// connects or disconnects the DB; that lifecycle belongs to the caller.
type MemDBRepo struct {
	DB *memdb.DB
}

func NewMemDBRepo(db *memdb.DB) *MemDBRepo {
	return &MemDBRepo{DB: db}
}

func storeKey(userID string) string {
	return keyPrefix + userID
}

// Create inserts the record as given. An existing id fails with
// ErrDuplicateID and leaves the stored record untouched.
func (r *MemDBRepo) Create(ctx context.Context, user User) (User, error) {
	_, err := r.DB.Get(ctx, storeKey(user.ID))
	switch {
	case err == nil:
		return User{}, ErrDuplicateID
	case !errors.Is(err, memdb.ErrNoKey):
		return User{}, err
	}
	if err := r.DB.Save(ctx, storeKey(user.ID), user.Clone()); err != nil {
		return User{}, err
	}
	return user, nil
}

// GetByID returns a copy of the stored record; mutating the returned
// value cannot reach the store.
func (r *MemDBRepo) GetByID(ctx context.Context, userID string) (User, error) {
	raw, err := r.DB.Get(ctx, storeKey(userID))
	if err != nil {
		if errors.Is(err, memdb.ErrNoKey) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user, ok := raw.(User)
	if !ok {
		return User{}, fmt.Errorf("unexpected record type %T for %s", raw, storeKey(userID))
	}
	return user.Clone(), nil
}

// Update applies only the fields set in upd and returns the result.
func (r *MemDBRepo) Update(ctx context.Context, userID string, upd Update) (User, error) {
	raw, err := r.DB.Get(ctx, storeKey(userID))
	if err != nil {
		if errors.Is(err, memdb.ErrNoKey) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user, ok := raw.(User)
	if !ok {
		return User{}, fmt.Errorf("unexpected record type %T for %s", raw, storeKey(userID))
	}
	user = user.Clone()
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if len(upd.Attributes) > 0 {
		if user.Attributes == nil {
			user.Attributes = make(map[string]string, len(upd.Attributes))
		}
		for k, v := range upd.Attributes {
			user.Attributes[k] = v
		}
	}
	if err := r.DB.Save(ctx, storeKey(userID), user.Clone()); err != nil {
		return User{}, err
	}
	return user, nil
}

// List returns a copied snapshot in stable key order.
func (r *MemDBRepo) List(ctx context.Context) ([]User, error) {
	keys, err := r.DB.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(keys))
	for _, key := range keys {
		raw, err := r.DB.Get(ctx, key)
		if err != nil {
			if errors.Is(err, memdb.ErrNoKey) {
				continue
			}
			return nil, err
		}
		user, ok := raw.(User)
		if !ok {
			return nil, fmt.Errorf("unexpected record type %T for %s", raw, key)
		}
		out = append(out, user.Clone())
	}
	return out, nil
}
