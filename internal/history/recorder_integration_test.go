//go:build integration

package history

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"swiftcheck/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Requires SWIFTCHECK_TEST_MYSQL_DSN, e.g. root@tcp(127.0.0.1:3306)/swiftcheck_test
func TestRecorder_Integration(t *testing.T) {
	dsn := os.Getenv("SWIFTCHECK_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("SWIFTCHECK_TEST_MYSQL_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, NewDatabaseManager(dsn).Migrate(ctx))
	// Migrating twice is a no-op.
	require.NoError(t, NewDatabaseManager(dsn).Migrate(ctx))

	db, err := Open(dsn)
	require.NoError(t, err)
	defer db.Close()
	rec := NewRecorder(db)

	first := Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().Add(-time.Minute),
		Endpoint:  "https://www.swifttranslator.com/",
		Settle:    "fixed",
		Workers:   1,
		Results: []domain.CaseResult{
			{Label: "Test 1", Expected: "මට", Candidate: "මට", Found: true, Passed: true, Kind: domain.KindPassed},
			{Label: "Test 2", Expected: "අපි\n\n", Candidate: "අපි", Found: true, Kind: domain.KindMismatch},
			{Label: "Test 3", Kind: domain.KindDriverError, Err: errors.New("driver navigate: timeout")},
		},
	}
	require.NoError(t, rec.Record(ctx, first))

	second := first
	second.ID = uuid.NewString()
	second.StartedAt = time.Now()
	require.NoError(t, rec.Record(ctx, second))

	prev, err := rec.LastCandidates(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, "අපි", prev["Test 2"])
	require.Equal(t, "", prev["Test 3"])
}
