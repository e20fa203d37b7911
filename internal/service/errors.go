package service

import "errors"

var (
	// ErrNotFound reports that the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken reports that another user already registered the email.
	ErrEmailTaken = errors.New("email already registered")
)
