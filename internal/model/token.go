package model

import (
	"database/sql"
	"time"
)

// AuthToken is the allowlist record for one issued bearer token. The ID is
// the token's jti claim; deleting the row revokes exactly that token. A user
// may hold any number of live tokens at once.
type AuthToken struct {
	ID         string
	UserID     int64
	Name       string
	LastUsedAt sql.NullTime
	CreatedAt  time.Time
}
