package service

import (
	"context"

	"github.com/agendago/agenda-go/internal/model"
)

// UserRepo is the persistence port for users.
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// TokenRepo is the persistence port for the bearer-token allowlist.
type TokenRepo interface {
	Create(ctx context.Context, token *model.AuthToken) error
	Get(ctx context.Context, id string) (*model.AuthToken, error)
	Delete(ctx context.Context, id string) error
	TouchLastUsed(ctx context.Context, id string) error
}

// ContactRepo is the persistence port for contacts. Every method takes the
// owner explicitly; implementations must filter by it.
type ContactRepo interface {
	Create(ctx context.Context, contact *model.Contact) error
	GetByID(ctx context.Context, ownerID, id int64) (*model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, ownerID, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Contact, error)
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
	SearchByOwner(ctx context.Context, ownerID int64, q string, limit, offset int) ([]model.Contact, error)
	CountSearchByOwner(ctx context.Context, ownerID int64, q string) (int, error)
	PhoneExists(ctx context.Context, ownerID int64, telefono string, excludeID int64) (bool, error)
	EmailExists(ctx context.Context, ownerID int64, email string, excludeID int64) (bool, error)
}
