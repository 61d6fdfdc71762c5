package order

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/db"
)

type Repository interface {
	// FindByDateRange returns orders whose order_date falls inside the
	// closed interval [start, end], with items attached.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Order, error)
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

func (r *repository) FindByDateRange(ctx context.Context, start, end time.Time) ([]Order, error) {
	ordersQuery := `
		SELECT id, user_id, total_price, discount, order_date, created_at, updated_at
		FROM orders
		WHERE order_date BETWEEN $1 AND $2
		ORDER BY order_date
	`

	orderRows, err := r.db.Query(ctx, ordersQuery, start, end)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders in range: %w", err)
	}
	defer orderRows.Close()

	ordersMap := make(map[uuid.UUID]*Order)
	var orderIDs []uuid.UUID

	for orderRows.Next() {
		var o Order
		err := orderRows.Scan(
			&o.ID,
			&o.UserID,
			&o.TotalPrice,
			&o.Discount,
			&o.OrderDate,
			&o.CreatedAt,
			&o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		o.Items = make([]Item, 0)
		ordersMap[o.ID] = &o
		orderIDs = append(orderIDs, o.ID)
	}

	if err = orderRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	if len(orderIDs) == 0 {
		return []Order{}, nil
	}

	// One batched fetch for all items, joined to products so reports see
	// product identity without per-order round trips. LEFT JOIN keeps an
	// item countable even if its product row is gone.
	itemsQuery := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
	`

	itemRows, err := r.db.Query(ctx, itemsQuery, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item Item
		var productName *string
		err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &productName, &item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}
		if productName != nil {
			item.ProductName = *productName
		}
		if o, ok := ordersMap[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items: %w", err)
	}

	orders := make([]Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *ordersMap[id])
	}

	return orders, nil
}
