package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/agendago/agenda-go/internal/model"
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, created_at, updated_at`

// Create inserts a new user and sets the generated ID and timestamps on the
// struct. A duplicate email is reported as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (first_name, last_name, email, password_hash) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.FirstName, user.LastName, user.Email, user.PasswordHash)
	if err != nil {
		return duplicateKeyError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id

	return r.db.QueryRowContext(ctx, `SELECT created_at, updated_at FROM users WHERE id = ?`, id).
		Scan(&user.CreatedAt, &user.UpdatedAt)
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
