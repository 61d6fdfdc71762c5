package report

import (
	"time"

	"github.com/gofrs/uuid"
)

const TypeSales = "Sales Report"

// Report is a persisted snapshot of aggregated sales figures. The details
// block is rendered once at generation time and never recomputed.
type Report struct {
	ID          uuid.UUID `db:"id"`
	ReportType  string    `db:"report_type"`
	GeneratedAt time.Time `db:"generated_at"`
	GeneratedBy uuid.UUID `db:"generated_by"`
	Details     string    `db:"details"`
}
