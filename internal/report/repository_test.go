package report_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/report"
)

var testDB *pgxpool.Pool

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestMain(m *testing.M) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envDefault("DB_HOST_TEST", "localhost"),
		envDefault("DB_PORT_TEST", "5432"),
		envDefault("DB_USER_TEST", "postgres"),
		envDefault("DB_PASSWORD_TEST", "123456"),
		envDefault("DB_NAME_TEST", "backoffice_db"),
		envDefault("DB_SSLMODE_TEST", "disable"))

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse test database connstr")
	}
	poolConfig.MaxConns = 5

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connectCancel()

	testDB, err = pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to test database")
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err = testDB.Ping(pingCtx); err != nil {
		testDB.Close()
		log.Fatal().Err(err).Msg("Failed to ping test database")
	}

	exitCode := m.Run()

	testDB.Close()
	os.Exit(exitCode)
}

// seedReporter inserts a user row to satisfy the generated_by foreign key
// and schedules its removal.
func seedReporter(tb testing.TB) uuid.UUID {
	tb.Helper()
	id, err := uuid.NewV4()
	require.NoError(tb, err)

	_, err = testDB.Exec(context.Background(), `
		INSERT INTO users (id, username, email, password_hash, role, name, contact, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, 'hashed_password', 'manager', 'Test Manager', '0123456789', FALSE, now(), now())
	`, id, "mgr_"+id.String()[:8], fmt.Sprintf("mgr.%s@example.com", id.String()[:8]))
	require.NoError(tb, err, "failed to seed reporter user")

	tb.Cleanup(func() {
		_, err := testDB.Exec(context.Background(), "DELETE FROM users WHERE id = $1", id)
		require.NoError(tb, err, "failed to delete reporter user")
	})

	return id
}

func newReport(tb testing.TB, by uuid.UUID, generatedAt time.Time) *report.Report {
	tb.Helper()
	id, err := uuid.NewV4()
	require.NoError(tb, err)
	return &report.Report{
		ID:          id,
		ReportType:  report.TypeSales,
		GeneratedAt: generatedAt,
		GeneratedBy: by,
		Details:     "Period: 2031-03-01 to 2031-03-10",
	}
}

func deleteReports(tb testing.TB, ids ...uuid.UUID) {
	tb.Helper()
	_, err := testDB.Exec(context.Background(), "DELETE FROM reports WHERE id = ANY($1)", ids)
	require.NoError(tb, err, "failed to delete test reports")
}

func TestReportRepository_List_NewestFirst(t *testing.T) {
	repo := report.NewRepository(testDB)
	by := seedReporter(t)

	base := time.Date(2031, time.March, 10, 12, 0, 0, 0, time.UTC)
	oldest := newReport(t, by, base)
	middle := newReport(t, by, base.Add(time.Hour))
	newest := newReport(t, by, base.Add(2*time.Hour))

	t.Cleanup(func() {
		deleteReports(t, oldest.ID, middle.ID, newest.ID)
	})

	// Insert out of chronological order so the ordering comes from the
	// query, not insertion order.
	require.NoError(t, repo.Create(context.Background(), middle))
	require.NoError(t, repo.Create(context.Background(), newest))
	require.NoError(t, repo.Create(context.Background(), oldest))

	reports, err := repo.List(context.Background())
	require.NoError(t, err)

	position := make(map[uuid.UUID]int)
	for i, rpt := range reports {
		position[rpt.ID] = i
	}
	require.Contains(t, position, oldest.ID)
	require.Contains(t, position, middle.ID)
	require.Contains(t, position, newest.ID)
	require.Less(t, position[newest.ID], position[middle.ID])
	require.Less(t, position[middle.ID], position[oldest.ID])
}

func TestReportRepository_Create_RoundTrip(t *testing.T) {
	repo := report.NewRepository(testDB)
	by := seedReporter(t)

	created := newReport(t, by, time.Now().UTC())

	t.Cleanup(func() {
		deleteReports(t, created.ID)
	})

	require.NoError(t, repo.Create(context.Background(), created))

	reports, err := repo.List(context.Background())
	require.NoError(t, err)

	var found *report.Report
	for i := range reports {
		if reports[i].ID == created.ID {
			found = &reports[i]
			break
		}
	}
	require.NotNil(t, found)
	require.Equal(t, report.TypeSales, found.ReportType)
	require.Equal(t, by, found.GeneratedBy)
	require.Equal(t, created.Details, found.Details)
	require.WithinDuration(t, created.GeneratedAt, found.GeneratedAt, time.Second)
}

func TestReportRepository_Delete_Success(t *testing.T) {
	repo := report.NewRepository(testDB)
	by := seedReporter(t)

	created := newReport(t, by, time.Now().UTC())

	t.Cleanup(func() {
		deleteReports(t, created.ID)
	})

	require.NoError(t, repo.Create(context.Background(), created))
	require.NoError(t, repo.Delete(context.Background(), created.ID))

	err := repo.Delete(context.Background(), created.ID)
	require.Error(t, err)
	require.ErrorIs(t, err, report.ErrNotFound)
}

func TestReportRepository_Delete_NotFound(t *testing.T) {
	repo := report.NewRepository(testDB)

	nonExistentID, err := uuid.NewV4()
	require.NoError(t, err)

	err = repo.Delete(context.Background(), nonExistentID)
	require.Error(t, err)
	require.ErrorIs(t, err, report.ErrNotFound)
}
