package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/db"
)

// Service handles login and logout against the users and sessions tables.
type Service interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

type service struct {
	db         db.Querier
	sessions   SessionStore
	hasher     PasswordHasher
	sessionTTL time.Duration
}

func NewService(q db.Querier, sessions SessionStore, hasher PasswordHasher, sessionTTL time.Duration) Service {
	return &service{db: q, sessions: sessions, hasher: hasher, sessionTTL: sessionTTL}
}

func (s *service) Login(ctx context.Context, username, password string) (*Session, error) {
	query := `
		SELECT id, password_hash
		FROM users
		WHERE username = $1 AND NOT is_archived
	`

	var userID uuid.UUID
	var passwordHash string
	err := s.db.QueryRow(ctx, query, username).Scan(&userID, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}

	if !s.hasher.Verify(passwordHash, password) {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, userID, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().Stringer("user_id", userID).Str("username", username).Msg("User logged in")
	return sess, nil
}

func (s *service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	log.Info().Stringer("session_id", sessionID).Msg("User logged out")
	return nil
}
