package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Order is read-only for the back office: reporting consumes orders that
// the storefront created.
type Order struct {
	ID         uuid.UUID           `db:"id"`
	UserID     uuid.UUID           `db:"user_id"`
	TotalPrice decimal.Decimal     `db:"total_price"`
	Discount   decimal.NullDecimal `db:"discount"`
	OrderDate  time.Time           `db:"order_date"`
	Items      []Item              `db:"-"`
	CreatedAt  time.Time           `db:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at"`
}

type Item struct {
	ID          uuid.UUID `db:"id"`
	OrderID     uuid.UUID `db:"order_id"`
	ProductID   uuid.UUID `db:"product_id"`
	ProductName string    `db:"product_name"`
	Quantity    int       `db:"quantity"`
}
