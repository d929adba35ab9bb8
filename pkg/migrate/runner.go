package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
)

// revisionDDL creates the single-row marker table recording which chain
// version the live schema currently matches. The CHECK-ed boolean primary key
// caps the table at one row.
const revisionDDL = `
CREATE TABLE IF NOT EXISTS schema_revision (
	one boolean PRIMARY KEY DEFAULT true CHECK (one),
	version text NOT NULL,
	applied_at timestamptz NOT NULL DEFAULT now()
)`

// Options controls a migration run.
type Options struct {
	// DryRun renders the plan's SQL to the writer without touching the
	// database. Use it to preview a run or to produce a reviewable script.
	DryRun io.Writer

	// Force permits downgrading through steps that are not declared
	// reversible. The data those steps destroyed on the way up stays
	// destroyed; Force only acknowledges that.
	Force bool
}

// Result reports what a migration run did.
type Result struct {
	From    string
	To      string
	Applied []PlanEntry
	// Irreversible lists non-reversible steps the plan downgraded through.
	// Non-empty only on forced runs; operators should treat every entry as
	// confirmed data loss.
	Irreversible []string
	DryRun       bool
}

// Runner executes resolved migration plans against a live database.
//
// Runs are sequential and single-writer: the caller is expected to hold
// exclusive access (an advisory lock or equivalent) for the whole batch. Each
// step executes inside its own transaction together with the marker update,
// so a failure leaves the database exactly at the last completed step.
type Runner struct {
	db    Execer
	chain *Chain
}

// NewRunner creates a runner for the given chain.
// The Execer is typically *sql.DB; pass *sql.Tx to run inside an existing
// transaction (used by tests).
func NewRunner(db Execer, chain *Chain) *Runner {
	return &Runner{db: db, chain: chain}
}

// Chain returns the chain this runner executes.
func (r *Runner) Chain() *Chain { return r.chain }

// CurrentVersion reads the schema version marker. It returns "" when the
// marker table does not exist or holds no row, i.e. a database the chain has
// never touched.
func (r *Runner) CurrentVersion(ctx context.Context) (string, error) {
	var tableExists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pg_class c
			JOIN pg_namespace n ON n.oid = c.relnamespace
			WHERE c.relname = 'schema_revision'
			AND n.nspname = current_schema()
		)
	`).Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("checking schema_revision table: %w", err)
	}
	if !tableExists {
		return "", nil
	}

	var version string
	err = r.db.QueryRowContext(ctx, `SELECT version FROM schema_revision`).Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading schema revision: %w", err)
	}
	return version, nil
}

// Plan resolves the path from the database's current version to target
// without applying anything.
func (r *Runner) Plan(ctx context.Context, target string) ([]PlanEntry, error) {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	return r.chain.ResolvePath(current, target)
}

// Apply executes a single plan entry. The step's operations and the marker
// update run in one transaction when the Execer supports BeginTx; on any
// failure the whole step is rolled back and the marker is left unchanged.
func (r *Runner) Apply(ctx context.Context, entry PlanEntry) error {
	if txer, ok := r.db.(interface {
		BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	}); ok {
		tx, err := txer.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("starting transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if err := r.applyEntry(ctx, tx, entry); err != nil {
			return err
		}
		return tx.Commit()
	}

	// Caller already owns a transaction (*sql.Tx).
	return r.applyEntry(ctx, r.db, entry)
}

func (r *Runner) applyEntry(ctx context.Context, db Execer, entry PlanEntry) error {
	for i, op := range entry.Step.Ops(entry.Direction) {
		stmt := op.SQL()
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return &OperationError{
				Version:   entry.Step.Version,
				Direction: entry.Direction,
				Index:     i,
				SQL:       stmt,
				Err:       err,
			}
		}
	}
	return r.writeMarker(ctx, db, entry.TargetVersion())
}

func (r *Runner) writeMarker(ctx context.Context, db Execer, version string) error {
	if _, err := db.ExecContext(ctx, revisionDDL); err != nil {
		return fmt.Errorf("ensuring schema_revision table: %w", err)
	}
	if version == "" {
		if _, err := db.ExecContext(ctx, `DELETE FROM schema_revision`); err != nil {
			return fmt.Errorf("clearing schema revision: %w", err)
		}
		return nil
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO schema_revision (one, version) VALUES (true, $1)
		ON CONFLICT (one) DO UPDATE SET version = EXCLUDED.version, applied_at = now()
	`, version)
	if err != nil {
		return fmt.Errorf("recording schema revision %s: %w", version, err)
	}
	return nil
}

// MigrateTo moves the database from its current version to target, applying
// each step of the resolved path in order. Target "" downgrades all the way
// past the root, leaving no user tables.
//
// Downgrade paths that cross a non-reversible step fail with ErrIrreversible
// before anything executes, unless Options.Force is set; forced runs report
// the crossed steps in Result.Irreversible so the operator sees the data
// loss rather than silently accepting it.
func (r *Runner) MigrateTo(ctx context.Context, target string, opts Options) (*Result, error) {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := r.chain.ResolvePath(current, target)
	if err != nil {
		return nil, err
	}

	res := &Result{From: current, To: target, Applied: plan, DryRun: opts.DryRun != nil}
	for _, e := range plan {
		if e.Direction == DirectionDown && !e.Step.Reversible {
			res.Irreversible = append(res.Irreversible, e.Step.Version)
		}
	}
	if len(res.Irreversible) > 0 && !opts.Force {
		return nil, fmt.Errorf("%w: downgrade crosses %s (data destroyed on upgrade cannot be restored; re-run with force to acknowledge)",
			ErrIrreversible, strings.Join(res.Irreversible, ", "))
	}

	if opts.DryRun != nil {
		r.renderPlan(opts.DryRun, current, target, plan)
		return res, nil
	}

	for _, e := range plan {
		if err := r.Apply(ctx, e); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// renderPlan writes the plan's SQL as an executable script.
func (r *Runner) renderPlan(w io.Writer, current, target string, plan []PlanEntry) {
	_, _ = fmt.Fprintf(w, "-- factiondb migration plan (dry-run)\n")
	_, _ = fmt.Fprintf(w, "-- from: %s\n", orLabel(current, "<empty>"))
	_, _ = fmt.Fprintf(w, "-- to:   %s\n\n", orLabel(target, "<empty>"))

	for _, e := range plan {
		_, _ = fmt.Fprintf(w, "-- ============================================================\n")
		_, _ = fmt.Fprintf(w, "-- %s %s: %s\n", e.Direction, e.Step.Version, e.Step.Label)
		if e.Direction == DirectionDown && !e.Step.Reversible {
			_, _ = fmt.Fprintf(w, "-- WARNING: not reversible, upgrade destroyed data this cannot restore\n")
		}
		_, _ = fmt.Fprintf(w, "-- ============================================================\n\n")
		ops := e.Step.Ops(e.Direction)
		if len(ops) == 0 {
			_, _ = fmt.Fprintf(w, "-- (no operations)\n\n")
			continue
		}
		for _, op := range ops {
			_, _ = fmt.Fprintf(w, "%s;\n\n", op.SQL())
		}
	}
}

func orLabel(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
