package user

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyExists      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("username and password are required")
)

// User is a registered account. Username is case-sensitive and unique.
type User struct {
	Username     string
	PasswordHash string
}
