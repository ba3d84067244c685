package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
)

// classify reports which constraint err violated, if any, together with the
// driver's description of it (constraint name or message).
func classify(err error) (violation, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return uniqueViolation, pgErr.ConstraintName
		case "23503":
			return foreignKeyViolation, pgErr.ConstraintName
		}
		return noViolation, ""
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return uniqueViolation, mysqlKeyName(myErr.Message)
		case 1452:
			return foreignKeyViolation, myErr.Message
		}
		return noViolation, ""
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return uniqueViolation, liteErr.Error()
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyViolation, liteErr.Error()
		}

		// primary result code only, when extended codes are off
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := liteErr.Error()
			switch {
			case strings.Contains(msg, "UNIQUE"):
				return uniqueViolation, msg
			case strings.Contains(msg, "FOREIGN KEY"):
				return foreignKeyViolation, msg
			}
		}
	}

	return noViolation, ""
}

// mysqlKeyName extracts the key from "Duplicate entry '<value>' for key
// '<key>'". The value is user input, so only the trailing key is kept.
func mysqlKeyName(msg string) string {
	i := strings.LastIndex(msg, " for key ")
	if i < 0 {
		return msg
	}
	return strings.Trim(msg[i+len(" for key "):], "'`")
}
