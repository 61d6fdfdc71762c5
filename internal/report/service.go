package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/apperr"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/db"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/order"
)

type Service interface {
	// Generate aggregates all orders within the closed date range and
	// persists a new sales report attributed to the acting user.
	Generate(ctx context.Context, startDate, endDate string, by auth.Identity) (*Report, error)
	List(ctx context.Context) ([]Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db      db.Beginner
	reports Repository
	orders  order.Repository
}

func NewService(beginner db.Beginner, reports Repository, orders order.Repository) Service {
	return &service{db: beginner, reports: reports, orders: orders}
}

func (s *service) Generate(ctx context.Context, startDate, endDate string, by auth.Identity) (rpt *Report, err error) {
	if startDate == "" || endDate == "" {
		return nil, apperr.InvalidErr("Start and end dates are required")
	}

	start, parseErr := time.Parse(dateLayout, startDate)
	if parseErr != nil {
		return nil, apperr.InvalidErr(fmt.Sprintf("Invalid start date %q, expected YYYY-MM-DD", startDate))
	}
	end, parseErr := time.Parse(dateLayout, endDate)
	if parseErr != nil {
		return nil, apperr.InvalidErr(fmt.Sprintf("Invalid end date %q, expected YYYY-MM-DD", endDate))
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to begin report transaction")
		return nil, apperr.Wrap("Failed to generate report", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("service: failed to rollback after panic")
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("service: failed to rollback report transaction")
			}
		} else if commitErr := tx.Commit(ctx); commitErr != nil {
			log.Error().Err(commitErr).Msg("service: failed to commit report transaction")
			rpt = nil
			err = apperr.Wrap(fmt.Sprintf("Failed to generate report: %v", commitErr), commitErr)
		}
	}()

	orders, err := s.orders.WithTx(tx).FindByDateRange(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Str("start", startDate).Str("end", endDate).Msg("service: failed to load orders for report")
		return nil, apperr.Wrap(fmt.Sprintf("Failed to generate report: %v", err), err)
	}

	summary := Summarize(orders)

	id, err := uuid.NewV4()
	if err != nil {
		return nil, apperr.Wrap(fmt.Sprintf("Failed to generate report: %v", err), err)
	}

	rpt = &Report{
		ID:          id,
		ReportType:  TypeSales,
		GeneratedAt: time.Now().UTC(),
		GeneratedBy: by.ID,
		Details:     summary.Details(start, end),
	}

	if err = s.reports.WithTx(tx).Create(ctx, rpt); err != nil {
		log.Error().Err(err).Msg("service: failed to persist report")
		return nil, apperr.Wrap(fmt.Sprintf("Failed to generate report: %v", err), err)
	}

	log.Info().
		Stringer("report_id", rpt.ID).
		Stringer("generated_by", by.ID).
		Int("orders", summary.TotalOrders).
		Msg("Sales report generated")

	return rpt, nil
}

func (s *service) List(ctx context.Context) ([]Report, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list reports")
		return nil, apperr.Wrap("Failed to load reports", err)
	}
	return reports, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to begin delete transaction")
		return apperr.Wrap("Failed to delete report", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("service: failed to rollback delete transaction")
			}
		} else if commitErr := tx.Commit(ctx); commitErr != nil {
			log.Error().Err(commitErr).Msg("service: failed to commit delete transaction")
			err = apperr.Wrap(fmt.Sprintf("Failed to delete report: %v", commitErr), commitErr)
		}
	}()

	if err = s.reports.WithTx(tx).Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFoundErr("Report not found!")
		}
		log.Error().Err(err).Stringer("report_id", id).Msg("service: failed to delete report")
		return apperr.Wrap(fmt.Sprintf("Failed to delete report: %v", err), err)
	}

	log.Info().Stringer("report_id", id).Msg("Report deleted")
	return nil
}
