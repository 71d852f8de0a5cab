package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/agendago/agenda-go/internal/crypto"
	"github.com/agendago/agenda-go/internal/model"
	"github.com/agendago/agenda-go/internal/repository"
)

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	users     UserRepo
	tokens    TokenRepo
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepo, tokens TokenRepo, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and issues a fresh bearer token.
// Field problems, including an already-registered email, come back as a
// ValidationError naming the offending fields.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	ve := validateStruct(req)

	if req.Email != "" {
		if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
			dup := newValidationError()
			dup.add("email", msgDuplicateUserEmail)
			ve = ve.merge(dup)
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", err
		}
	}
	if ve != nil {
		return nil, "", ve
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Unique-key backstop: a concurrent registration with the same
		// email lands here instead of the pre-check above.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			dup := newValidationError()
			dup.add("email", msgDuplicateUserEmail)
			return nil, "", dup
		}
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user.ID, "register")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password and issues a fresh token
// without touching any previously issued ones. Unknown email and wrong
// password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, "", err
	}
	if !match {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID, "login")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes exactly the presented token. Revoking a token that is
// already gone fails with ErrUnauthenticated.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	err := s.tokens.Delete(ctx, tokenID)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return ErrUnauthenticated
	}
	return err
}

// CurrentUser resolves an authenticated user id to the full user record.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a raw bearer token to its owner. The signature and
// expiry are checked first, then the allowlist: a token whose jti row was
// deleted on logout is rejected even though its signature still verifies.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (userID int64, tokenID string, err error) {
	claims, err := crypto.ValidateToken(rawToken, s.jwtSecret)
	if err != nil {
		return 0, "", ErrUnauthenticated
	}

	token, err := s.tokens.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return 0, "", ErrUnauthenticated
		}
		return 0, "", err
	}
	if token.UserID != claims.UserID {
		return 0, "", ErrUnauthenticated
	}

	// Best-effort bookkeeping, never blocks the request.
	_ = s.tokens.TouchLastUsed(ctx, token.ID)

	return token.UserID, token.ID, nil
}

func (s *AuthService) issueToken(ctx context.Context, userID int64, name string) (string, error) {
	record := &model.AuthToken{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", err
	}
	return crypto.GenerateToken(userID, record.ID, s.jwtSecret, s.jwtExpiry)
}
