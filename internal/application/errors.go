package application

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrNotFound           = errors.New("not found")
	ErrPersistence        = errors.New("persistence failure")
	ErrUnavailable        = errors.New("feature not configured")
)

// ItemNotFoundError names the first order line whose menu reference did not
// resolve. It matches ErrItemNotFound.
type ItemNotFoundError struct {
	Ref string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("menu item not found: %s", e.Ref)
}

func (e *ItemNotFoundError) Is(target error) bool { return target == ErrItemNotFound }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
