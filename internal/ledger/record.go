package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run kinds.
const (
	KindRun         = "run"           // plain command execution
	KindDryRunCheck = "dry_run_check" // snapshot-verify dry-run check
)

// Run statuses.
const (
	StatusPass  = "pass"  // command executed, no drift
	StatusDrift = "drift" // dry-run check detected tree drift
	StatusError = "error" // unexpected exit code or harness error
)

// Record is one harness outcome.
type Record struct {
	ID        string    // UUID assigned at record time
	Scenario  string    // scenario name, or "" for ad-hoc checks
	Kind      string    // "run" or "dry_run_check"
	Args      []string  // argument list as executed (dry-run flag included)
	ExitCode  int       // exit status of the command under test
	Status    string    // StatusPass, StatusDrift, or StatusError
	Drifted   []string  // drifted canonical paths, empty unless StatusDrift
	CreatedAt time.Time // UTC
}

// Append inserts a run record. The record's ID is assigned here; callers
// never choose IDs.
func (l *Ledger) Append(ctx context.Context, rec Record) error {
	argsJSON, err := json.Marshal(rec.Args)
	if err != nil {
		return fmt.Errorf("append run: marshal args: %w", err)
	}
	driftedJSON, err := json.Marshal(rec.Drifted)
	if err != nil {
		return fmt.Errorf("append run: marshal drifted paths: %w", err)
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, kind, args, exit_code, status, drifted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.NewString(),
		rec.Scenario,
		rec.Kind,
		string(argsJSON),
		rec.ExitCode,
		rec.Status,
		string(driftedJSON),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append run: %w", err)
	}

	return nil
}

// History returns the most recent records, newest first, up to limit.
// A non-positive limit returns everything.
//
// Returns an empty slice (not nil) when no records exist.
func (l *Ledger) History(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT id, scenario, kind, args, exit_code, status, drifted, created_at
		FROM runs
		ORDER BY created_at DESC, id COLLATE BINARY ASC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return records, nil
}

func scanRecord(rows interface{ Scan(...any) error }) (Record, error) {
	var (
		rec         Record
		argsJSON    string
		driftedJSON string
		createdAt   string
	)
	if err := rows.Scan(&rec.ID, &rec.Scenario, &rec.Kind, &argsJSON, &rec.ExitCode, &rec.Status, &driftedJSON, &createdAt); err != nil {
		return Record{}, fmt.Errorf("scan run: %w", err)
	}

	if err := json.Unmarshal([]byte(argsJSON), &rec.Args); err != nil {
		return Record{}, fmt.Errorf("scan run %s: decode args: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(driftedJSON), &rec.Drifted); err != nil {
		return Record{}, fmt.Errorf("scan run %s: decode drifted paths: %w", rec.ID, err)
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("scan run %s: decode timestamp: %w", rec.ID, err)
	}
	rec.CreatedAt = t

	return rec, nil
}
