package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/order"
)

const (
	dateLayout     = "2006-01-02"
	currencyPrefix = "RM"
)

// Summary holds the aggregated figures for a set of orders. Revenue and
// discounts keep full stored precision; only the average is rounded at
// aggregation time, everything else at formatting.
type Summary struct {
	TotalOrders       int
	TotalRevenue      decimal.Decimal
	TotalDiscounts    decimal.Decimal
	AverageOrderValue decimal.Decimal
	TotalProducts     int
	UniqueCustomers   int
}

// Summarize aggregates orders in a single pass. A missing discount counts
// as zero; the average order value is zero for an empty set and otherwise
// rounded half-up to two decimal places.
func Summarize(orders []order.Order) Summary {
	totalRevenue := decimal.Zero
	totalDiscounts := decimal.Zero
	customers := make(map[uuid.UUID]struct{})
	totalProducts := 0

	for _, o := range orders {
		totalRevenue = totalRevenue.Add(o.TotalPrice)
		if o.Discount.Valid {
			totalDiscounts = totalDiscounts.Add(o.Discount.Decimal)
		}
		customers[o.UserID] = struct{}{}

		for _, item := range o.Items {
			totalProducts += item.Quantity
		}
	}

	averageOrderValue := decimal.Zero
	if len(orders) > 0 {
		averageOrderValue = totalRevenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	return Summary{
		TotalOrders:       len(orders),
		TotalRevenue:      totalRevenue,
		TotalDiscounts:    totalDiscounts,
		AverageOrderValue: averageOrderValue,
		TotalProducts:     totalProducts,
		UniqueCustomers:   len(customers),
	}
}

// Details renders the fixed report text block for the given period.
func (s Summary) Details(start, end time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Period: %s to %s\n", start.Format(dateLayout), end.Format(dateLayout))
	fmt.Fprintf(&b, "Total Orders: %d\n", s.TotalOrders)
	fmt.Fprintf(&b, "Total Revenue: %s %s\n", currencyPrefix, s.TotalRevenue.StringFixed(2))
	fmt.Fprintf(&b, "Average Order Value: %s %s\n", currencyPrefix, s.AverageOrderValue.StringFixed(2))
	fmt.Fprintf(&b, "Total Discounts: %s %s\n", currencyPrefix, s.TotalDiscounts.StringFixed(2))
	fmt.Fprintf(&b, "Total Products Sold: %d\n", s.TotalProducts)
	fmt.Fprintf(&b, "Unique Customers: %d", s.UniqueCustomers)
	return b.String()
}
