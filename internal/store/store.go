// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists records and computed snapshots in SQLite so
// downstream tooling can query the database without re-parsing the
// TSV export.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

// Store manages the SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the SQLite database at cfg.Path and ensures
// the schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = "tcrdb.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			cdr3_alpha TEXT,
			v_alpha TEXT,
			j_alpha TEXT,
			cdr3_beta TEXT,
			v_beta TEXT,
			j_beta TEXT,
			species TEXT NOT NULL,
			mhc_a TEXT,
			mhc_b TEXT,
			mhc_class TEXT,
			epitope TEXT,
			reference TEXT,
			chain TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_epitope ON records(epitope)`,
		`CREATE INDEX IF NOT EXISTS idx_records_species ON records(species)`,
		`CREATE INDEX IF NOT EXISTS idx_records_chain ON records(chain)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			cutoff_year INTEGER NOT NULL,
			chain TEXT NOT NULL,
			tcr_count INTEGER NOT NULL,
			epitope_count INTEGER NOT NULL,
			reference_count INTEGER NOT NULL,
			mhc_count INTEGER NOT NULL,
			PRIMARY KEY (cutoff_year, chain)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// InsertRecords upserts records inside one transaction and returns
// the number written. Re-running a build replaces rows in place.
func (s *Store) InsertRecords(ctx context.Context, records []types.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO records (
			key, cdr3_alpha, v_alpha, j_alpha, cdr3_beta, v_beta, j_beta,
			species, mhc_a, mhc_b, mhc_class, epitope, reference, chain
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.Key(), rec.CDR3Alpha, rec.VAlpha, rec.JAlpha,
			rec.CDR3Beta, rec.VBeta, rec.JBeta,
			rec.Species, rec.MHCA, rec.MHCB, string(rec.MHCClass()),
			rec.Epitope, rec.Reference, string(rec.Chain()),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing records: %w", err)
	}
	return len(records), nil
}

// InsertSnapshots replaces the snapshots table contents.
func (s *Store) InsertSnapshots(ctx context.Context, snapshots []types.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("clearing snapshots: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshots (cutoff_year, chain, tcr_count, epitope_count, reference_count, mhc_count)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snapshots {
		_, err := stmt.ExecContext(ctx,
			snap.CutoffYear, string(snap.Chain),
			snap.TCRCount, snap.EpitopeCount, snap.ReferenceCount, snap.MHCCount,
		)
		if err != nil {
			return fmt.Errorf("inserting snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// QueryOptions filters record queries. Zero values mean no filter.
type QueryOptions struct {
	Epitope string
	Species string
	Chain   types.ChainCategory
	Limit   int
}

// QueryRecords returns records matching the filters, capped at
// opts.Limit (or the store default when zero).
func (s *Store) QueryRecords(ctx context.Context, opts QueryOptions) ([]types.Record, error) {
	query := `SELECT cdr3_alpha, v_alpha, j_alpha, cdr3_beta, v_beta, j_beta,
		species, mhc_a, mhc_b, epitope, reference FROM records`
	var (
		conds []string
		args  []any
	)
	if opts.Epitope != "" {
		conds = append(conds, "epitope = ?")
		args = append(args, opts.Epitope)
	}
	if opts.Species != "" {
		conds = append(conds, "species = ?")
		args = append(args, opts.Species)
	}
	if opts.Chain != "" {
		conds = append(conds, "chain = ?")
		args = append(args, string(opts.Chain))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}
	query += " ORDER BY key LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var rec types.Record
		err := rows.Scan(
			&rec.CDR3Alpha, &rec.VAlpha, &rec.JAlpha,
			&rec.CDR3Beta, &rec.VBeta, &rec.JBeta,
			&rec.Species, &rec.MHCA, &rec.MHCB,
			&rec.Epitope, &rec.Reference,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Snapshots returns all stored snapshots ordered by year then chain
// category output order.
func (s *Store) Snapshots(ctx context.Context) ([]types.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cutoff_year, chain, tcr_count, epitope_count, reference_count, mhc_count
		 FROM snapshots
		 ORDER BY cutoff_year,
			CASE chain WHEN 'TRA' THEN 0 WHEN 'TRB' THEN 1 ELSE 2 END`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []types.Snapshot
	for rows.Next() {
		var (
			snap  types.Snapshot
			chain string
		)
		err := rows.Scan(&snap.CutoffYear, &chain,
			&snap.TCRCount, &snap.EpitopeCount, &snap.ReferenceCount, &snap.MHCCount)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snap.Chain = types.ChainCategory(chain)
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
