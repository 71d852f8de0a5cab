package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/agendago/agenda-go/internal/model"
)

// ContactRepository handles contact persistence operations. Every query is
// filtered by user_id so a contact owned by someone else behaves exactly
// like a missing row.
type ContactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, user_id, nombre, apellido, telefono, email, direccion, created_at, updated_at`

// searchFilter matches the search query against any of the four searchable
// columns. Matching is case-insensitive via the table collation.
const searchFilter = ` AND (nombre LIKE ? OR apellido LIKE ? OR email LIKE ? OR telefono LIKE ?)`

// Create inserts a new contact and sets the generated ID and timestamps on
// the struct. Per-owner duplicates are reported as ErrDuplicateContactPhone
// or ErrDuplicateContactEmail via the unique keys.
func (r *ContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	query := `INSERT INTO contacts (user_id, nombre, apellido, telefono, email, direccion)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		contact.UserID, contact.Nombre, contact.Apellido,
		contact.Telefono, contact.Email, contact.Direccion,
	)
	if err != nil {
		return duplicateKeyError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	contact.ID = id

	return r.db.QueryRowContext(ctx, `SELECT created_at, updated_at FROM contacts WHERE id = ?`, id).
		Scan(&contact.CreatedAt, &contact.UpdatedAt)
}

// GetByID retrieves a contact by id scoped to its owner. A contact owned by
// a different user yields ErrContactNotFound.
func (r *ContactRepository) GetByID(ctx context.Context, ownerID, id int64) (*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ? AND user_id = ?`

	contact := &model.Contact{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&contact.ID, &contact.UserID, &contact.Nombre, &contact.Apellido,
		&contact.Telefono, &contact.Email, &contact.Direccion,
		&contact.CreatedAt, &contact.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

// Update rewrites a contact's fields, scoped to its owner, and refreshes the
// timestamps on the struct. Existence must be checked beforehand: MySQL
// reports zero affected rows for a no-op update, so that count cannot
// distinguish "missing" from "unchanged".
func (r *ContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	query := `UPDATE contacts SET nombre = ?, apellido = ?, telefono = ?, email = ?, direccion = ?
		WHERE id = ? AND user_id = ?`

	_, err := r.db.ExecContext(ctx, query,
		contact.Nombre, contact.Apellido, contact.Telefono,
		contact.Email, contact.Direccion, contact.ID, contact.UserID,
	)
	if err != nil {
		return duplicateKeyError(err)
	}

	return r.db.QueryRowContext(ctx, `SELECT created_at, updated_at FROM contacts WHERE id = ?`, contact.ID).
		Scan(&contact.CreatedAt, &contact.UpdatedAt)
}

// Delete removes a contact permanently, scoped to its owner.
func (r *ContactRepository) Delete(ctx context.Context, ownerID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// ListByOwner retrieves one page of a user's contacts ordered by nombre,
// with id as the stable tie-break (insertion order).
func (r *ContactRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = ?
		ORDER BY nombre ASC, id ASC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// CountByOwner returns the total number of contacts a user owns.
func (r *ContactRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE user_id = ?`, ownerID).Scan(&total)
	return total, err
}

// SearchByOwner retrieves one page of a user's contacts whose nombre,
// apellido, email or telefono contains the query as a substring, ordered
// like ListByOwner.
func (r *ContactRepository) SearchByOwner(ctx context.Context, ownerID int64, q string, limit, offset int) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = ?` + searchFilter +
		` ORDER BY nombre ASC, id ASC LIMIT ? OFFSET ?`

	pattern := likePattern(q)
	rows, err := r.db.QueryContext(ctx, query, ownerID, pattern, pattern, pattern, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// CountSearchByOwner returns the total number of contacts matching a search.
func (r *ContactRepository) CountSearchByOwner(ctx context.Context, ownerID int64, q string) (int, error) {
	query := `SELECT COUNT(*) FROM contacts WHERE user_id = ?` + searchFilter

	pattern := likePattern(q)
	var total int
	err := r.db.QueryRowContext(ctx, query, ownerID, pattern, pattern, pattern, pattern).Scan(&total)
	return total, err
}

// PhoneExists reports whether the owner already has a contact with this
// phone number, excluding excludeID (0 to exclude nothing). Used as the
// pre-write duplicate check; the unique key remains the backstop.
func (r *ContactRepository) PhoneExists(ctx context.Context, ownerID int64, telefono string, excludeID int64) (bool, error) {
	return r.fieldExists(ctx, "telefono", ownerID, telefono, excludeID)
}

// EmailExists reports whether the owner already has a contact with this
// email, excluding excludeID (0 to exclude nothing).
func (r *ContactRepository) EmailExists(ctx context.Context, ownerID int64, email string, excludeID int64) (bool, error) {
	return r.fieldExists(ctx, "email", ownerID, email, excludeID)
}

func (r *ContactRepository) fieldExists(ctx context.Context, column string, ownerID int64, value string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM contacts WHERE user_id = ? AND ` + column + ` = ? AND id != ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, ownerID, value, excludeID).Scan(&exists)
	return exists, err
}

func scanContacts(rows *sql.Rows) ([]model.Contact, error) {
	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Nombre, &c.Apellido,
			&c.Telefono, &c.Email, &c.Direccion,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// likePattern wraps q for substring matching, escaping LIKE wildcards so
// user input cannot alter the match semantics.
func likePattern(q string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(q) + "%"
}
