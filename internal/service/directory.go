package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"medical-booking/internal/model"
	"medical-booking/internal/store"
)

// Directory owns the users collection and the session pointer.
//
// The session pointer is a full copy of the logged-in user, not a reference.
// Only UpdateUser keeps the two in step.
//
// Login does not verify the password. There is no credential store; callers
// must not treat a successful login as proof of identity.
type Directory struct {
	store *store.Store
	opts  options
}

func NewDirectory(st *store.Store, opts ...Option) *Directory {
	return &Directory{store: st, opts: buildOptions(opts)}
}

// wait simulates the remote round trip. Nothing has been written when it
// returns an error.
func (d *Directory) wait(ctx context.Context) error {
	if d.opts.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.opts.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Register adds a user with a fresh id and logs them in. Emails are compared
// exactly, case included.
func (d *Directory) Register(ctx context.Context, p model.Profile) (model.User, error) {
	if err := d.wait(ctx); err != nil {
		return model.User{}, err
	}

	users, err := d.store.Users(ctx)
	if err != nil {
		return model.User{}, err
	}
	if lo.ContainsBy(users, func(u model.User) bool { return u.Email == p.Email }) {
		return model.User{}, ErrDuplicateEmail
	}

	id := d.opts.newID()
	for lo.ContainsBy(users, func(u model.User) bool { return u.ID == id }) {
		id = d.opts.newID()
	}

	u := model.User{ID: id, Profile: p, CreatedAt: d.opts.now()}
	if err := d.store.SaveUsers(ctx, append(users, u)); err != nil {
		return model.User{}, err
	}
	if err := d.store.SetSession(ctx, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Login makes the user with this exact email the current user. password is
// accepted and ignored.
func (d *Directory) Login(ctx context.Context, email, password string) (model.User, error) {
	if err := d.wait(ctx); err != nil {
		return model.User{}, err
	}

	users, err := d.store.Users(ctx)
	if err != nil {
		return model.User{}, err
	}
	u, ok := lo.Find(users, func(u model.User) bool { return u.Email == email })
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	if err := d.store.SetSession(ctx, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Logout clears the session pointer. It is fine to call without a session.
func (d *Directory) Logout(ctx context.Context) error {
	return d.store.ClearSession(ctx)
}

// CurrentUser returns the session copy, or nil when nobody is logged in.
func (d *Directory) CurrentUser(ctx context.Context) (*model.User, error) {
	return d.store.Session(ctx)
}

// User looks a user up by id in the collection.
func (d *Directory) User(ctx context.Context, id string) (model.User, error) {
	users, err := d.store.Users(ctx)
	if err != nil {
		return model.User{}, err
	}
	u, ok := lo.Find(users, func(u model.User) bool { return u.ID == id })
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

// UpdateUser merges patch over the current user's record and refreshes the
// session copy. Email uniqueness is not re-checked.
func (d *Directory) UpdateUser(ctx context.Context, patch model.UserPatch) (model.User, error) {
	if err := d.wait(ctx); err != nil {
		return model.User{}, err
	}

	cur, err := d.store.Session(ctx)
	if err != nil {
		return model.User{}, err
	}
	if cur == nil {
		return model.User{}, ErrNotAuthenticated
	}

	users, err := d.store.Users(ctx)
	if err != nil {
		return model.User{}, err
	}
	_, i, ok := lo.FindIndexOf(users, func(u model.User) bool { return u.ID == cur.ID })
	if !ok {
		return model.User{}, ErrUserNotFound
	}

	users[i] = patch.Apply(users[i])
	if err := d.store.SaveUsers(ctx, users); err != nil {
		return model.User{}, err
	}
	if err := d.store.SetSession(ctx, users[i]); err != nil {
		return model.User{}, err
	}
	return users[i], nil
}
