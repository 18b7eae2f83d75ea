package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()

	l, err := Open(filepath.Join(t.TempDir(), "drydrift.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestOpen_CreatesDatabase(t *testing.T) {
	l := openTestLedger(t)

	records, err := l.History(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drydrift.db")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Append(context.Background(), Record{
		Kind:      KindRun,
		Args:      []string{"status"},
		Status:    StatusPass,
		CreatedAt: time.Now(),
	}))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()

	records, err := l.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAppendHistory_RoundTrip(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	created := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	rec := Record{
		Scenario:  "apply_is_pure",
		Kind:      KindDryRunCheck,
		Args:      []string{"apply", "--dry-run"},
		ExitCode:  0,
		Status:    StatusDrift,
		Drifted:   []string{"c.txt"},
		CreatedAt: created,
	}
	require.NoError(t, l.Append(ctx, rec))

	records, err := l.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.NotEmpty(t, got.ID, "ID is assigned at append time")
	assert.Equal(t, rec.Scenario, got.Scenario)
	assert.Equal(t, rec.Kind, got.Kind)
	assert.Equal(t, rec.Args, got.Args)
	assert.Equal(t, rec.ExitCode, got.ExitCode)
	assert.Equal(t, rec.Status, got.Status)
	assert.Equal(t, rec.Drifted, got.Drifted)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestHistory_NewestFirst(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Append(ctx, Record{
			Kind:      KindRun,
			Args:      []string{"step", string(rune('a' + i))},
			Status:    StatusPass,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, err := l.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"step", "c"}, records[0].Args)
	assert.Equal(t, []string{"step", "a"}, records[2].Args)
}

func TestHistory_Limit(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Append(ctx, Record{
			Kind:      KindRun,
			Args:      []string{"status"},
			Status:    StatusPass,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, err := l.History(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAppend_EmptyDriftedRoundTripsEmpty(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, Record{
		Kind:      KindRun,
		Args:      []string{"status"},
		Status:    StatusPass,
		CreatedAt: time.Now(),
	}))

	records, err := l.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Drifted)
}
