package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"motoreg/internal/common"
	"motoreg/internal/server/auth"
	"motoreg/internal/server/config"
	"motoreg/internal/server/models"
	"motoreg/internal/server/password"
	"motoreg/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint access tokens
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// TokenValidity exposes the configured token lifetime so the transport
// layer can align session TTLs with it.
func (s *UserService) TokenValidity() time.Duration {
	return s.accessTokenValidityDuration
}

// Register creates a new user with an argon2id digest of the password.
// A taken username yields common.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, pwd string) (*models.User, error) {
	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if pwd == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &common.ValidationError{MissingFields: missing}
	}

	hash, err := password.Hash(pwd)
	if err != nil {
		return nil, common.ErrInternal
	}

	repo := s.repomanager.Users(s.db)
	return repo.Create(ctx, &models.User{Username: username, PasswordHash: hash})
}

// Login verifies the credentials and, on success, returns a signed access
// token for the username. An unknown user and a wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, pwd string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", common.ErrInternal
	}

	if !password.Verify(user.PasswordHash, pwd) {
		return "", common.ErrUnauthorized
	}

	return auth.GenerateToken(user.Username, s.jwtSecret, s.accessTokenValidityDuration)
}
