package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// NewDB opens a MySQL connection pool for the given DSN and verifies it with
// a ping. The DSN must include parseTime=true so DATETIME columns scan into
// time.Time.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

// duplicateKeyError maps a MySQL duplicate-entry error (1062) to the
// sentinel matching the violated unique key, or returns the error unchanged.
// The unique keys act as the authoritative backstop to the pre-write
// duplicate checks: a race between two inserts surfaces here, not as a 500.
func duplicateKeyError(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) || myErr.Number != 1062 {
		return err
	}

	switch {
	case strings.Contains(myErr.Message, "uq_contacts_user_telefono"):
		return ErrDuplicateContactPhone
	case strings.Contains(myErr.Message, "uq_contacts_user_email"):
		return ErrDuplicateContactEmail
	case strings.Contains(myErr.Message, "uq_users_email"):
		return ErrDuplicateEmail
	}
	return err
}
