package core

import "errors"

var ErrInvalidArgs = errors.New("invalid arguments")

// Users errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session errors
var (
	ErrUnauthenticated = errors.New("unauthorized")
	ErrInvalidToken    = errors.New("invalid token")
)

// Tasks errors
var (
	ErrTaskNotFound = errors.New("task not found")
)

var ErrUnavailable = errors.New("dependency unavailable")
