package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"task-tracker/tracker/core"
)

func (db *DB) CreateUser(ctx context.Context, username, email string, passwordHash []byte) (core.User, error) {
	const q = `INSERT INTO users(username, email, password) VALUES (?, ?, ?)`

	id, err := db.insertID(ctx, q, username, email, string(passwordHash))
	if err != nil {
		if v, detail := classify(err); v == uniqueViolation {
			if isEmailConstraint(detail) {
				return core.User{}, core.ErrDuplicateEmail
			}
			return core.User{}, core.ErrDuplicateUsername
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}

	return core.User{
		ID:       id,
		Username: username,
		Email:    email,
		Password: passwordHash,
	}, nil
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	const q = `SELECT id, username, email, password FROM users WHERE username = ?`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, db.conn.Rebind(q), username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// isEmailConstraint matches the constraint that guards users.email:
// users_email_key on postgres and mysql, the users.email column on sqlite.
func isEmailConstraint(detail string) bool {
	return strings.Contains(detail, "users_email_key") || strings.Contains(detail, "users.email")
}
