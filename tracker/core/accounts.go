package core

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Accounts registers users and checks their credentials.
type Accounts struct {
	db     UserDB
	hasher PasswordHasher

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAccounts(db UserDB, hasher PasswordHasher) *Accounts {
	return &Accounts{
		db:     db,
		hasher: hasher,
	}
}

func (a *Accounts) Register(ctx context.Context, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return User{}, ErrInvalidArgs
	}

	_, err := a.db.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return User{}, ErrDuplicateUsername
	case !errors.Is(err, ErrUserNotFound):
		return User{}, err
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return User{}, err
	}

	// email uniqueness is left to the storage constraint
	return a.db.CreateUser(ctx, username, email, hash)
}

// Verify returns ErrInvalidCredentials both for unknown users and for wrong
// passwords.
func (a *Accounts) Verify(ctx context.Context, username, password string) (User, error) {
	u, err := a.db.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// burn the same hashing cost as a real comparison
			_ = a.hasher.Compare(a.dummy(), password)
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := a.hasher.Compare(u.Password, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Lookup resolves an authenticated username to its stored record.
func (a *Accounts) Lookup(ctx context.Context, username string) (User, error) {
	u, err := a.db.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrUnauthenticated
		}
		return User{}, err
	}
	return u, nil
}

func (a *Accounts) dummy() []byte {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = a.hasher.Hash("not-a-real-password")
	})
	return a.dummyHash
}
