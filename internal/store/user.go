package store

import (
	"context"

	"medical-booking/internal/model"
	"medical-booking/internal/storage"
)

func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	users, _, err := load[[]model.User](ctx, s, storage.KeyUsers)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *Store) SaveUsers(ctx context.Context, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	return s.save(ctx, storage.KeyUsers, users)
}

// Session returns the persisted copy of the logged-in user, or nil.
func (s *Store) Session(ctx context.Context) (*model.User, error) {
	u, ok, err := load[model.User](ctx, s, storage.KeySession)
	if err != nil || !ok || u.ID == "" {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetSession(ctx context.Context, u model.User) error {
	return s.save(ctx, storage.KeySession, u)
}

func (s *Store) ClearSession(ctx context.Context) error {
	return s.slots.Delete(ctx, storage.KeySession)
}
