package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"task-tracker/tracker/core"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) driverName() (string, error) {
	switch d {
	case Postgres:
		return "pgx", nil
	case MySQL:
		return "mysql", nil
	case SQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", string(d))
	}
}

// DB is the single storage client of the process. It owns the connection
// pool; every request borrows a connection from it.
type DB struct {
	log     *slog.Logger
	conn    *sqlx.DB
	dialect Dialect
}

func New(log *slog.Logger, dialect Dialect, address string) (*DB, error) {
	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}

	dsn, err := prepareDSN(dialect, address)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		log.Error("connection problem", "driver", driver, "error", err)
		return nil, err
	}
	return &DB{log: log, conn: conn, dialect: dialect}, nil
}

func prepareDSN(dialect Dialect, address string) (string, error) {
	switch dialect {
	case MySQL:
		cfg, err := mysql.ParseDSN(address)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		return cfg.FormatDSN(), nil
	case SQLite:
		// foreign keys are off by default in sqlite and are per connection.
		// Transactions take the write lock at BEGIN so that busy_timeout
		// applies instead of failing on a read-to-write lock upgrade.
		var params []string
		if !strings.Contains(address, "foreign_keys") {
			params = append(params, "_pragma=foreign_keys(1)")
		}
		if !strings.Contains(address, "busy_timeout") {
			params = append(params, "_pragma=busy_timeout(5000)")
		}
		if !strings.Contains(address, "_txlock") {
			params = append(params, "_txlock=immediate")
		}
		if len(params) == 0 {
			return address, nil
		}
		sep := "?"
		if strings.Contains(address, "?") {
			sep = "&"
		}
		return address + sep + strings.Join(params, "&"), nil
	default:
		return address, nil
	}
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// insertID runs an INSERT and returns the generated id. pgx has no
// LastInsertId, so postgres goes through RETURNING.
func (db *DB) insertID(ctx context.Context, q string, args ...any) (int64, error) {
	if db.dialect == Postgres {
		var id int64
		err := db.conn.QueryRowxContext(ctx, db.conn.Rebind(q+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := db.conn.ExecContext(ctx, db.conn.Rebind(q), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// forUpdate is the row-lock suffix for SELECTs inside a transaction.
func (db *DB) forUpdate() string {
	if db.dialect == SQLite {
		// sqlite locks the whole database on write
		return ""
	}
	return " FOR UPDATE"
}

var _ core.DB = (*DB)(nil)
