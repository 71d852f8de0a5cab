package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/agendago/agenda-go/internal/model"
)

// TokenRepository handles the bearer-token allowlist. One row per issued
// token; deleting a row revokes exactly that token.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create inserts an allowlist row for a freshly issued token.
func (r *TokenRepository) Create(ctx context.Context, token *model.AuthToken) error {
	query := `INSERT INTO auth_tokens (id, user_id, name) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, token.ID, token.UserID, token.Name)
	return err
}

// Get retrieves an allowlist row by token id (the jti claim).
func (r *TokenRepository) Get(ctx context.Context, id string) (*model.AuthToken, error) {
	query := `SELECT id, user_id, name, last_used_at, created_at FROM auth_tokens WHERE id = ?`

	token := &model.AuthToken{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&token.ID, &token.UserID, &token.Name, &token.LastUsedAt, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return token, nil
}

// Delete revokes a token by removing its allowlist row. Deleting a token
// that does not exist (already revoked) returns ErrTokenNotFound.
func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// TouchLastUsed records that the token was just presented. Best-effort
// bookkeeping; callers may ignore the error.
func (r *TokenRepository) TouchLastUsed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE auth_tokens SET last_used_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}
