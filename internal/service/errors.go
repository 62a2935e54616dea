package service

import "errors"

// Domain errors. All of them are recoverable input problems the caller is
// expected to show to the user.
var (
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotAuthenticated = errors.New("not authenticated")
)
