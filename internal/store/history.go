// Package store keeps a SQLite-backed history of projection runs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpgo/drawdown/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrRunNotFound is returned when a report ID has no recorded run.
var ErrRunNotFound = errors.New("run not found")

// History provides SQLite-backed run history.
type History struct {
	db  *sql.DB
	now func() time.Time
}

// RunRecord is one recorded projection run.
type RunRecord struct {
	ReportID      string
	GeneratedAt   time.Time
	Source        string
	ScenarioCount int
	RecordedAt    time.Time
	Scenarios     []ScenarioRecord
}

// ScenarioRecord holds the stored summary of one scenario of a run.
type ScenarioRecord struct {
	Name            string
	ProjectionYears int
	Summary         domain.ProjectionSummary
}

// DefaultPath returns ~/.drawdown/history.db, or a relative path when no home directory is known.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".drawdown", "history.db")
	}
	return filepath.Join(home, ".drawdown", "history.db")
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db, now: time.Now}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// SaveReport records a report and its scenario summaries. Saving the same
// report ID again replaces the earlier record.
func (h *History) SaveReport(report *domain.ProjectionReport, source string) error {
	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM run_scenarios WHERE report_id = ?", report.ID); err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT OR REPLACE INTO runs
		(report_id, generated_at, source, scenario_count, recorded_at)
		VALUES (?, ?, ?, ?, ?)`,
		report.ID, report.GeneratedAt.UTC().Format(time.RFC3339), source, len(report.Scenarios),
		h.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	for i, sc := range report.Scenarios {
		s := sc.Summary
		var depletionYear sql.NullInt64
		if s.Depleted {
			depletionYear = sql.NullInt64{Int64: int64(s.DepletionYear), Valid: true}
		}
		depleted := 0
		if s.Depleted {
			depleted = 1
		}
		_, err = tx.Exec(`INSERT INTO run_scenarios
			(report_id, position, name, projection_years, total_starting_balance, final_balance,
			 cumulative_withdrawals, cumulative_taxes, cumulative_net_spending, cumulative_shortfall,
			 first_year_monthly_net, average_withdrawal_pct, years_funded, depleted, depletion_year)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			report.ID, i, sc.Name, len(sc.Projection), s.TotalStartingBalance.String(), s.FinalBalance.String(),
			s.CumulativeWithdrawals.String(), s.CumulativeTaxes.String(), s.CumulativeNetSpending.String(),
			s.CumulativeShortfall.String(), s.FirstYearMonthlyNet.String(), s.AverageWithdrawalPercent.String(),
			s.YearsFunded, depleted, depletionYear,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first, without scenario detail.
// A limit of zero or less returns every run.
func (h *History) ListRuns(limit int) ([]RunRecord, error) {
	query := "SELECT report_id, generated_at, source, scenario_count, recorded_at FROM runs ORDER BY generated_at DESC, report_id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadRun reads one run and its scenario summaries in their original order.
func (h *History) LoadRun(reportID string) (*RunRecord, error) {
	row := h.db.QueryRow("SELECT report_id, generated_at, source, scenario_count, recorded_at FROM runs WHERE report_id = ?", reportID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, reportID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := h.db.Query(`SELECT
		name, projection_years, total_starting_balance, final_balance, cumulative_withdrawals,
		cumulative_taxes, cumulative_net_spending, cumulative_shortfall, first_year_monthly_net,
		average_withdrawal_pct, years_funded, depleted, depletion_year
		FROM run_scenarios WHERE report_id = ? ORDER BY position`, reportID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var sc ScenarioRecord
		var starting, final, withdrawals, taxes, net, shortfall, monthly, avgPct string
		var depleted int
		var depletionYear sql.NullInt64
		if err := rows.Scan(&sc.Name, &sc.ProjectionYears, &starting, &final, &withdrawals, &taxes, &net,
			&shortfall, &monthly, &avgPct, &sc.Summary.YearsFunded, &depleted, &depletionYear); err != nil {
			return nil, err
		}
		fields := []struct {
			text string
			dst  *decimal.Decimal
		}{
			{starting, &sc.Summary.TotalStartingBalance},
			{final, &sc.Summary.FinalBalance},
			{withdrawals, &sc.Summary.CumulativeWithdrawals},
			{taxes, &sc.Summary.CumulativeTaxes},
			{net, &sc.Summary.CumulativeNetSpending},
			{shortfall, &sc.Summary.CumulativeShortfall},
			{monthly, &sc.Summary.FirstYearMonthlyNet},
			{avgPct, &sc.Summary.AverageWithdrawalPercent},
		}
		for _, f := range fields {
			if *f.dst, err = decimal.NewFromString(f.text); err != nil {
				return nil, fmt.Errorf("scenario %q: corrupt amount %q: %w", sc.Name, f.text, err)
			}
		}
		sc.Summary.Depleted = depleted != 0
		if depletionYear.Valid {
			sc.Summary.DepletionYear = int(depletionYear.Int64)
		}
		run.Scenarios = append(run.Scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

// DeleteRun removes a run and its scenarios.
func (h *History) DeleteRun(reportID string) error {
	res, err := h.db.Exec("DELETE FROM runs WHERE report_id = ?", reportID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, reportID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var r RunRecord
	var generated, recorded string
	if err := s.Scan(&r.ReportID, &generated, &r.Source, &r.ScenarioCount, &recorded); err != nil {
		return r, err
	}
	r.GeneratedAt, _ = time.Parse(time.RFC3339, generated)
	r.RecordedAt, _ = time.Parse(time.RFC3339, recorded)
	return r, nil
}
