package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/apperr"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/db"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/order"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/report"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
	begun    int
}

func (b *fakeBeginner) Begin(ctx context.Context) (db.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	b.begun++
	return b.tx, nil
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, r *report.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReportRepository) List(ctx context.Context) ([]report.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.Report), args.Error(1)
}

func (m *MockReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReportRepository) WithTx(tx db.Tx) report.Repository {
	return m
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]order.Order, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) WithTx(tx db.Tx) order.Repository {
	return m
}

func manager(t *testing.T) auth.Identity {
	t.Helper()
	return auth.Identity{ID: mustUUID(t), Username: "boss", Role: auth.RoleManager}
}

func TestReportService_Generate_Success(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	reports := new(MockReportRepository)
	orders := new(MockOrderRepository)
	svc := report.NewService(beginner, reports, orders)

	by := manager(t)
	fixture := []order.Order{
		{
			UserID:     mustUUID(t),
			TotalPrice: decQ(t, "100.00"),
			Discount:   decimal.NullDecimal{Decimal: decQ(t, "10.00"), Valid: true},
			Items:      []order.Item{{Quantity: 2}},
		},
		{
			UserID:     mustUUID(t),
			TotalPrice: decQ(t, "50.00"),
			Items:      []order.Item{{Quantity: 1}},
		},
	}

	orders.On("FindByDateRange", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(fixture, nil).
		Once()
	reports.On("Create", mock.Anything, mock.AnythingOfType("*report.Report")).
		Return(nil).
		Once()

	rpt, err := svc.Generate(context.Background(), "2024-01-01", "2024-01-31", by)

	require.NoError(t, err)
	require.NotNil(t, rpt)
	require.Equal(t, report.TypeSales, rpt.ReportType)
	require.Equal(t, by.ID, rpt.GeneratedBy)
	require.NotEqual(t, uuid.Nil, rpt.ID)
	require.WithinDuration(t, time.Now().UTC(), rpt.GeneratedAt, 5*time.Second)
	require.Contains(t, rpt.Details, "Period: 2024-01-01 to 2024-01-31")
	require.Contains(t, rpt.Details, "Total Revenue: RM 150.00")
	require.Contains(t, rpt.Details, "Average Order Value: RM 75.00")

	require.Equal(t, 1, beginner.begun)
	require.True(t, beginner.tx.committed)
	require.False(t, beginner.tx.rolledBack)
	reports.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestReportService_Generate_MissingDates(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	reports := new(MockReportRepository)
	orders := new(MockOrderRepository)
	svc := report.NewService(beginner, reports, orders)

	rpt, err := svc.Generate(context.Background(), "", "2024-01-31", manager(t))

	require.Error(t, err)
	require.Nil(t, rpt)
	require.Equal(t, apperr.Invalid, apperr.KindOf(err))
	require.Zero(t, beginner.begun, "no transaction may be opened on validation failure")
	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_Generate_InvalidMonth(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	reports := new(MockReportRepository)
	orders := new(MockOrderRepository)
	svc := report.NewService(beginner, reports, orders)

	rpt, err := svc.Generate(context.Background(), "2024-13-01", "2024-12-31", manager(t))

	require.Error(t, err)
	require.Nil(t, rpt)
	require.Equal(t, apperr.Invalid, apperr.KindOf(err))
	require.Zero(t, beginner.begun)
	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_Generate_QueryFailureRollsBack(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	reports := new(MockReportRepository)
	orders := new(MockOrderRepository)
	svc := report.NewService(beginner, reports, orders)

	cause := errors.New("connection reset")
	orders.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, cause).
		Once()

	rpt, err := svc.Generate(context.Background(), "2024-01-01", "2024-01-31", manager(t))

	require.Error(t, err)
	require.Nil(t, rpt)
	require.Equal(t, apperr.Internal, apperr.KindOf(err))
	require.ErrorIs(t, err, cause)
	require.True(t, beginner.tx.rolledBack)
	require.False(t, beginner.tx.committed)
	reports.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_Generate_PersistFailureRollsBack(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	reports := new(MockReportRepository)
	orders := new(MockOrderRepository)
	svc := report.NewService(beginner, reports, orders)

	orders.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).
		Return([]order.Order{}, nil).
		Once()
	reports.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("insert failed")).
		Once()

	rpt, err := svc.Generate(context.Background(), "2024-01-01", "2024-01-31", manager(t))

	require.Error(t, err)
	require.Nil(t, rpt)
	require.True(t, beginner.tx.rolledBack)
	require.False(t, beginner.tx.committed)
}

func TestReportService_Delete_NotFound(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	reports := new(MockReportRepository)
	svc := report.NewService(beginner, reports, new(MockOrderRepository))

	id := mustUUID(t)
	reports.On("Delete", mock.Anything, id).
		Return(report.ErrNotFound).
		Once()

	err := svc.Delete(context.Background(), id)

	require.Error(t, err)
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	require.True(t, beginner.tx.rolledBack)
	require.False(t, beginner.tx.committed)
}

func TestReportService_Delete_Success(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	reports := new(MockReportRepository)
	svc := report.NewService(beginner, reports, new(MockOrderRepository))

	id := mustUUID(t)
	reports.On("Delete", mock.Anything, id).
		Return(nil).
		Once()

	err := svc.Delete(context.Background(), id)

	require.NoError(t, err)
	require.True(t, beginner.tx.committed)
	require.False(t, beginner.tx.rolledBack)
	reports.AssertExpectations(t)
}

func TestReportService_List_NewestFirstPassthrough(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	reports := new(MockReportRepository)
	svc := report.NewService(beginner, reports, new(MockOrderRepository))

	newest := report.Report{ID: mustUUID(t), GeneratedAt: time.Now()}
	older := report.Report{ID: mustUUID(t), GeneratedAt: time.Now().Add(-time.Hour)}
	reports.On("List", mock.Anything).
		Return([]report.Report{newest, older}, nil).
		Once()

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, newest.ID, got[0].ID)
	require.Zero(t, beginner.begun, "listing needs no transaction")
}
