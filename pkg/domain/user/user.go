// Package user holds the account errors shared by services and handlers.
package user

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrInactiveUser is returned when a valid credential belongs to a disabled account.
	ErrInactiveUser = errors.New("inactive user")
	// ErrInvalidCredentials is returned by login for an unknown identity or a wrong password.
	ErrInvalidCredentials = errors.New("incorrect email/username or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already in use")
	// ErrIdentityTaken is reported when the store rejects a duplicate and the
	// colliding column is unknown.
	ErrIdentityTaken = errors.New("email or username already in use")
)
