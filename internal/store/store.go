// Package store persists simulation runs to SQLite so they can be listed
// and re-rendered later. Plan inputs and ledger rows are stored as flat
// records; monetary amounts are stored as decimal strings.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/jaeho-lee/pensim/internal/domain"
)

// DB wraps the SQLite handle.
type DB struct {
	db *sql.DB
}

// migrations returns the schema statements. Each string is a single SQL
// statement (SQLite executes one at a time).
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id                          INTEGER PRIMARY KEY AUTOINCREMENT,
			name                        TEXT NOT NULL,
			created_at                  TEXT NOT NULL,
			start_age                   INTEGER NOT NULL,
			payout_start_age            INTEGER NOT NULL,
			payout_end_age              INTEGER NOT NULL,
			pre_payout_return           TEXT NOT NULL,
			post_payout_return          TEXT NOT NULL,
			inflation_rate              TEXT NOT NULL,
			annual_contribution         TEXT NOT NULL,
			non_deductible_contribution TEXT NOT NULL,
			other_tax_free_principal    TEXT NOT NULL,
			other_pension_income        TEXT NOT NULL,
			other_comprehensive_income  TEXT NOT NULL,
			contribution_timing         TEXT NOT NULL,
			withdrawal_limit_base       TEXT NOT NULL,
			lump_sum_strategy           TEXT NOT NULL,
			ending_balance              TEXT NOT NULL,
			first_year_after_tax        TEXT NOT NULL,
			first_year_after_tax_pv     TEXT NOT NULL,
			total_withdrawn             TEXT NOT NULL,
			total_tax_paid              TEXT NOT NULL,
			total_after_tax             TEXT NOT NULL,
			lump_sum_taxable            TEXT NOT NULL,
			lump_sum_tax                TEXT NOT NULL,
			lump_sum_after_tax          TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS payout_years (
			run_id               INTEGER NOT NULL REFERENCES runs(id),
			year_index           INTEGER NOT NULL,
			age                  INTEGER NOT NULL,
			gross_withdrawal     TEXT NOT NULL,
			from_non_taxable     TEXT NOT NULL,
			from_taxable         TEXT NOT NULL,
			withdrawal_limit     TEXT NOT NULL,
			taxable_within_limit TEXT NOT NULL,
			excess_withdrawal    TEXT NOT NULL,
			pension_tax          TEXT NOT NULL,
			penalty_tax          TEXT NOT NULL,
			total_tax            TEXT NOT NULL,
			after_tax            TEXT NOT NULL,
			comprehensive_tax    TEXT NOT NULL,
			separate_tax         TEXT NOT NULL,
			mode                 TEXT NOT NULL,
			ending_balance       TEXT NOT NULL,
			PRIMARY KEY (run_id, year_index)
		)`,

		`CREATE TABLE IF NOT EXISTS accumulation_points (
			run_id  INTEGER NOT NULL REFERENCES runs(id),
			age     INTEGER NOT NULL,
			balance TEXT NOT NULL,
			PRIMARY KEY (run_id, age)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
	}
}

// Open opens (creating if needed) the history database at path and applies
// the schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return &DB{db: db}, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// RunSummary is one row of the history listing.
type RunSummary struct {
	ID            int64
	Name          string
	CreatedAt     time.Time
	EndingBalance decimal.Decimal
	TotalAfterTax decimal.Decimal
	PayoutYears   int
}

// SaveRun persists a complete result and returns the new run id.
func (d *DB) SaveRun(result *domain.SimulationResult) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	in := &result.Input
	res, err := tx.Exec(`INSERT INTO runs (
			name, created_at,
			start_age, payout_start_age, payout_end_age,
			pre_payout_return, post_payout_return, inflation_rate,
			annual_contribution, non_deductible_contribution, other_tax_free_principal,
			other_pension_income, other_comprehensive_income,
			contribution_timing, withdrawal_limit_base, lump_sum_strategy,
			ending_balance, first_year_after_tax, first_year_after_tax_pv,
			total_withdrawn, total_tax_paid, total_after_tax,
			lump_sum_taxable, lump_sum_tax, lump_sum_after_tax
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		in.Name, time.Now().UTC().Format(time.RFC3339),
		in.StartAge, in.PayoutStartAge, in.PayoutEndAge,
		in.PrePayoutReturn.String(), in.PostPayoutReturn.String(), in.InflationRate.String(),
		in.AnnualContribution.String(), in.NonDeductibleContribution.String(), in.OtherTaxFreePrincipal.String(),
		in.OtherPensionIncome.String(), in.OtherComprehensiveIncome.String(),
		string(in.ContributionTiming), string(in.WithdrawalLimitBase), string(in.LumpSumStrategy),
		result.EndingAccumulationBalance.String(), result.FirstYearAfterTax.String(), result.FirstYearAfterTaxPV.String(),
		result.TotalWithdrawn.String(), result.TotalTaxPaid.String(), result.TotalAfterTax.String(),
		result.LumpSum.TaxableAmount.String(), result.LumpSum.Tax.String(), result.LumpSum.AfterTaxAmount.String())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, row := range result.PayoutLedger {
		if _, err := tx.Exec(`INSERT INTO payout_years (
				run_id, year_index, age,
				gross_withdrawal, from_non_taxable, from_taxable,
				withdrawal_limit, taxable_within_limit, excess_withdrawal,
				pension_tax, penalty_tax, total_tax, after_tax,
				comprehensive_tax, separate_tax, mode, ending_balance
			) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			runID, row.YearIndex, row.Age,
			row.GrossWithdrawal.String(), row.FromNonTaxable.String(), row.FromTaxable.String(),
			row.WithdrawalLimit.String(), row.TaxableWithinLimit.String(), row.ExcessWithdrawal.String(),
			row.PensionTax.String(), row.PenaltyTax.String(), row.TotalTax.String(), row.AfterTax.String(),
			row.ComprehensiveTax.String(), row.SeparateTax.String(), string(row.Mode), row.EndingBalance.String()); err != nil {
			return 0, fmt.Errorf("failed to insert payout year %d: %w", row.YearIndex, err)
		}
	}

	for _, point := range result.AccumulationSeries {
		if _, err := tx.Exec(
			`INSERT INTO accumulation_points (run_id, age, balance) VALUES (?,?,?)`,
			runID, point.Age, point.Balance.String()); err != nil {
			return 0, fmt.Errorf("failed to insert accumulation point at age %d: %w", point.Age, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns saved runs, newest first.
func (d *DB) ListRuns() ([]RunSummary, error) {
	rows, err := d.db.Query(`SELECT r.id, r.name, r.created_at, r.ending_balance, r.total_after_tax,
			(SELECT COUNT(*) FROM payout_years p WHERE p.run_id = r.id)
		FROM runs r ORDER BY r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var createdAt, endingBalance, totalAfterTax string
		if err := rows.Scan(&s.ID, &s.Name, &createdAt, &endingBalance, &totalAfterTax, &s.PayoutYears); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if s.EndingBalance, err = decimal.NewFromString(endingBalance); err != nil {
			return nil, fmt.Errorf("failed to parse ending balance: %w", err)
		}
		if s.TotalAfterTax, err = decimal.NewFromString(totalAfterTax); err != nil {
			return nil, fmt.Errorf("failed to parse total after tax: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// LoadRun reconstructs a saved result, ledger and series included.
func (d *DB) LoadRun(id int64) (*domain.SimulationResult, error) {
	result := &domain.SimulationResult{}
	in := &result.Input

	dec := newDecimalScanner()
	var timing, limitBase, lumpStrategy string
	err := d.db.QueryRow(`SELECT
			name, start_age, payout_start_age, payout_end_age,
			pre_payout_return, post_payout_return, inflation_rate,
			annual_contribution, non_deductible_contribution, other_tax_free_principal,
			other_pension_income, other_comprehensive_income,
			contribution_timing, withdrawal_limit_base, lump_sum_strategy,
			ending_balance, first_year_after_tax, first_year_after_tax_pv,
			total_withdrawn, total_tax_paid, total_after_tax,
			lump_sum_taxable, lump_sum_tax, lump_sum_after_tax
		FROM runs WHERE id = ?`, id).Scan(
		&in.Name, &in.StartAge, &in.PayoutStartAge, &in.PayoutEndAge,
		dec.target(&in.PrePayoutReturn), dec.target(&in.PostPayoutReturn), dec.target(&in.InflationRate),
		dec.target(&in.AnnualContribution), dec.target(&in.NonDeductibleContribution), dec.target(&in.OtherTaxFreePrincipal),
		dec.target(&in.OtherPensionIncome), dec.target(&in.OtherComprehensiveIncome),
		&timing, &limitBase, &lumpStrategy,
		dec.target(&result.EndingAccumulationBalance), dec.target(&result.FirstYearAfterTax), dec.target(&result.FirstYearAfterTaxPV),
		dec.target(&result.TotalWithdrawn), dec.target(&result.TotalTaxPaid), dec.target(&result.TotalAfterTax),
		dec.target(&result.LumpSum.TaxableAmount), dec.target(&result.LumpSum.Tax), dec.target(&result.LumpSum.AfterTaxAmount))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}
	if err := dec.flush(); err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}
	in.ContributionTiming = domain.ContributionTiming(timing)
	in.WithdrawalLimitBase = domain.WithdrawalLimitBase(limitBase)
	in.LumpSumStrategy = domain.LumpSumStrategy(lumpStrategy)

	if result.PayoutLedger, err = d.loadLedger(id); err != nil {
		return nil, err
	}
	if result.AccumulationSeries, err = d.loadSeries(id); err != nil {
		return nil, err
	}
	return result, nil
}

func (d *DB) loadLedger(id int64) ([]domain.PayoutYearRecord, error) {
	rows, err := d.db.Query(`SELECT
			year_index, age,
			gross_withdrawal, from_non_taxable, from_taxable,
			withdrawal_limit, taxable_within_limit, excess_withdrawal,
			pension_tax, penalty_tax, total_tax, after_tax,
			comprehensive_tax, separate_tax, mode, ending_balance
		FROM payout_years WHERE run_id = ? ORDER BY year_index`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger for run %d: %w", id, err)
	}
	defer rows.Close()

	var ledger []domain.PayoutYearRecord
	for rows.Next() {
		var r domain.PayoutYearRecord
		var mode string
		dec := newDecimalScanner()
		if err := rows.Scan(&r.YearIndex, &r.Age,
			dec.target(&r.GrossWithdrawal), dec.target(&r.FromNonTaxable), dec.target(&r.FromTaxable),
			dec.target(&r.WithdrawalLimit), dec.target(&r.TaxableWithinLimit), dec.target(&r.ExcessWithdrawal),
			dec.target(&r.PensionTax), dec.target(&r.PenaltyTax), dec.target(&r.TotalTax), dec.target(&r.AfterTax),
			dec.target(&r.ComprehensiveTax), dec.target(&r.SeparateTax), &mode, dec.target(&r.EndingBalance)); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		if err := dec.flush(); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		r.Mode = domain.TaxMode(mode)
		ledger = append(ledger, r)
	}
	return ledger, rows.Err()
}

func (d *DB) loadSeries(id int64) ([]domain.AccumulationPoint, error) {
	rows, err := d.db.Query(
		`SELECT age, balance FROM accumulation_points WHERE run_id = ? ORDER BY age`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query series for run %d: %w", id, err)
	}
	defer rows.Close()

	var series []domain.AccumulationPoint
	for rows.Next() {
		var p domain.AccumulationPoint
		dec := newDecimalScanner()
		if err := rows.Scan(&p.Age, dec.target(&p.Balance)); err != nil {
			return nil, fmt.Errorf("failed to scan accumulation point: %w", err)
		}
		if err := dec.flush(); err != nil {
			return nil, fmt.Errorf("failed to scan accumulation point: %w", err)
		}
		series = append(series, p)
	}
	return series, rows.Err()
}

// decimalScanner collects string columns and converts them to decimals after
// a Scan completes, so scan destinations stay in declaration order.
type decimalScanner struct {
	raw  []*string
	dsts []*decimal.Decimal
}

func newDecimalScanner() *decimalScanner {
	return &decimalScanner{}
}

// target registers a decimal destination and returns the *string to scan
// into.
func (ds *decimalScanner) target(dst *decimal.Decimal) *string {
	s := new(string)
	ds.raw = append(ds.raw, s)
	ds.dsts = append(ds.dsts, dst)
	return s
}

// flush parses every scanned string into its decimal destination.
func (ds *decimalScanner) flush() error {
	for i, s := range ds.raw {
		d, err := decimal.NewFromString(*s)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", *s, err)
		}
		*ds.dsts[i] = d
	}
	return nil
}
