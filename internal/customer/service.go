package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/apperr"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/db"
)

type AddInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Name     string `validate:"required"`
	Contact  string `validate:"required"`
}

type EditInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Name     string `validate:"required"`
	Contact  string `validate:"required"`
}

type Service interface {
	List(ctx context.Context) ([]Account, error)
	// Add creates a customer account. The role is always customer; the
	// password never reaches storage in plaintext.
	Add(ctx context.Context, input AddInput) (*Account, error)
	// Edit updates username, email, name and contact. Password and role
	// are not alterable through this operation.
	Edit(ctx context.Context, id uuid.UUID, input EditInput) error
	Archive(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db       db.Beginner
	repo     Repository
	hasher   auth.PasswordHasher
	validate *validator.Validate
}

func NewService(beginner db.Beginner, repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		db:       beginner,
		repo:     repo,
		hasher:   hasher,
		validate: validator.New(),
	}
}

func (s *service) List(ctx context.Context) ([]Account, error) {
	accounts, err := s.repo.ListActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list customer accounts")
		return nil, apperr.Wrap("Failed to load users", err)
	}
	return accounts, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (*Account, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.Password = strings.TrimSpace(input.Password)
	input.Name = strings.TrimSpace(input.Name)
	input.Contact = strings.TrimSpace(input.Contact)

	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.InvalidErr(validationMessage(err))
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to hash password")
		return nil, apperr.Wrap("Failed to add user", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, apperr.Wrap("Failed to add user", err)
	}

	account := &Account{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         auth.RoleCustomer,
		Name:         input.Name,
		Contact:      input.Contact,
		IsArchived:   false,
	}

	err = s.inTx(ctx, func(repo Repository) error {
		return repo.Create(ctx, account)
	})
	if err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return nil, apperr.InvalidErr("Username already exists")
		}
		if errors.Is(err, ErrEmailExists) {
			return nil, apperr.InvalidErr("Email already exists")
		}
		log.Error().Err(err).Msg("service: failed to add customer account")
		return nil, apperr.Wrap(fmt.Sprintf("An error occurred: %v", err), err)
	}

	log.Info().Stringer("user_id", account.ID).Str("username", account.Username).Msg("Customer account added")
	return account, nil
}

func (s *service) Edit(ctx context.Context, id uuid.UUID, input EditInput) error {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	input.Contact = strings.TrimSpace(input.Contact)

	if err := s.validate.Struct(input); err != nil {
		return apperr.InvalidErr(validationMessage(err))
	}

	err := s.inTx(ctx, func(repo Repository) error {
		account, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		account.Username = input.Username
		account.Email = input.Email
		account.Name = input.Name
		account.Contact = input.Contact

		return repo.Update(ctx, account)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFoundErr("User not found!")
		}
		if errors.Is(err, ErrUsernameExists) {
			return apperr.InvalidErr("Username already exists")
		}
		if errors.Is(err, ErrEmailExists) {
			return apperr.InvalidErr("Email already exists")
		}
		log.Error().Err(err).Stringer("user_id", id).Msg("service: failed to edit customer account")
		return apperr.Wrap(fmt.Sprintf("An error occurred: %v", err), err)
	}

	log.Info().Stringer("user_id", id).Msg("Customer account updated")
	return nil
}

func (s *service) Archive(ctx context.Context, id uuid.UUID) error {
	err := s.inTx(ctx, func(repo Repository) error {
		return repo.Archive(ctx, id)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFoundErr("User not found!")
		}
		log.Error().Err(err).Stringer("user_id", id).Msg("service: failed to archive customer account")
		return apperr.Wrap(fmt.Sprintf("An error occurred: %v", err), err)
	}

	log.Info().Stringer("user_id", id).Msg("Customer account archived")
	return nil
}

// inTx runs fn against a transaction-bound repository, committing on
// success. Rollback failures are logged, never returned in place of the
// original error.
func (s *service) inTx(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("service: failed to begin transaction: %w", err)
	}

	if err := fn(s.repo.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error().Err(rbErr).Msg("service: failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("service: failed to commit transaction: %w", err)
	}

	return nil
}

func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			if fieldErr.Tag() == "email" {
				return "Invalid email address"
			}
		}
	}
	return "All fields are required"
}
