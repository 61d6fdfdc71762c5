package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/db"
)

var (
	ErrNoSession          = errors.New("session not found or expired")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionStore persists login sessions and resolves them back to identities.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*Session, error)
	Identity(ctx context.Context, sessionID uuid.UUID) (Identity, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

type sessionStore struct {
	db db.Querier
}

func NewSessionStore(q db.Querier) SessionStore {
	return &sessionStore{db: q}
}

func (s *sessionStore) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*Session, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	query := `
		INSERT INTO sessions (id, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.Exec(ctx, query, sess.ID, sess.UserID, sess.ExpiresAt, sess.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	return sess, nil
}

func (s *sessionStore) Identity(ctx context.Context, sessionID uuid.UUID) (Identity, error) {
	query := `
		SELECT u.id, u.username, u.role
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1 AND s.expires_at > now() AND NOT u.is_archived
	`

	var identity Identity
	err := s.db.QueryRow(ctx, query, sessionID).Scan(&identity.ID, &identity.Username, &identity.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Identity{}, ErrNoSession
		}
		return Identity{}, fmt.Errorf("failed to resolve session %s: %w", sessionID, err)
	}

	return identity, nil
}

func (s *sessionStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}
