package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/db"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

type Repository interface {
	// ListActive returns non-archived accounts with the customer role,
	// in store order.
	ListActive(ctx context.Context) ([]Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	Create(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error
	Archive(ctx context.Context, id uuid.UUID) error
	WithTx(tx db.Tx) Repository
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

func (r *repository) WithTx(tx db.Tx) Repository {
	return &repository{db: tx}
}

const accountColumns = `id, username, email, password_hash, role, name, contact, is_archived, created_at, updated_at`

func (r *repository) ListActive(ctx context.Context) ([]Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM users
		WHERE role = $1 AND NOT is_archived
	`

	rows, err := r.db.Query(ctx, query, string(auth.RoleCustomer))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query customer accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating customer accounts: %w", err)
	}

	return accounts, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM users
		WHERE id = $1
	`

	a, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select account %s: %w", id, err)
	}

	return a, nil
}

func (r *repository) Create(ctx context.Context, a *Account) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role, name, contact, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		a.ID, a.Username, a.Email, a.PasswordHash, string(a.Role), a.Name, a.Contact, a.IsArchived, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("repository: failed to insert account: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, a *Account) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, name = $3, contact = $4, updated_at = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query, a.Username, a.Email, a.Name, a.Contact, time.Now().UTC(), a.ID)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("repository: failed to update account %s: %w", a.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) Archive(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET is_archived = TRUE, updated_at = $1
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("repository: failed to archive account %s: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.Name,
		&a.Contact,
		&a.IsArchived,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("repository: failed to scan account: %w", err)
	}
	return &a, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrUsernameExists
	case "users_email_key":
		return ErrEmailExists
	}
	return nil
}
