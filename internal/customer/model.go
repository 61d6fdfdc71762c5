package customer

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
)

// Account is a storefront user account managed from the back office.
// Archived accounts are soft-deleted: kept in storage, hidden from listings.
type Account struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         auth.Role `db:"role"`
	Name         string    `db:"name"`
	Contact      string    `db:"contact"`
	IsArchived   bool      `db:"is_archived"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
