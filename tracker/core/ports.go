package core

import (
	"context"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type UserDB interface {
	CreateUser(ctx context.Context, username, email string, passwordHash []byte) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

// TaskDB implementations must scope every lookup by both task id and owner id.
type TaskDB interface {
	ListTasks(ctx context.Context, userID int64) ([]Task, error)
	CreateTask(ctx context.Context, userID int64, name string) (Task, error)
	UpdateTask(ctx context.Context, taskID, userID int64, p TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, taskID, userID int64) error
}

type DB interface {
	Pinger
	UserDB
	TaskDB
}

type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	Compare(hash []byte, password string) error
}

type TokenIssuer interface {
	Issue(username string, ttl time.Duration) (string, error)
	Validate(token string) (string, error)
}

type Deps struct {
	Accounts *Accounts
	Tasks    *Tasks
	Sessions *Sessions
	Tokens   TokenIssuer
	Pingers  map[string]Pinger
}
