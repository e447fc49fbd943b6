// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store mirrors the canonical library into a SQLite database
// with an FTS5 index, giving the digest a structured query surface
// alongside the lexical artifacts. Syncing is incremental: a domain
// whose canonical file has not changed since the last sync is skipped.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pogo-digest/internal/dedup"
	"github.com/pdiddy/pogo-digest/internal/index"
	"github.com/pdiddy/pogo-digest/internal/library"
	"github.com/pdiddy/pogo-digest/pkg/types"
)

const dbFile = "digest.db"

// Store manages the digest SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the database at libraryDir/index/digest.db and
// ensures the schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.LibraryDir, "index")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
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
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			domain TEXT NOT NULL,
			key TEXT NOT NULL,
			title TEXT,
			date TEXT,
			text TEXT,
			payload TEXT NOT NULL,
			sources TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_domain ON records(domain)`,
		`CREATE INDEX IF NOT EXISTS idx_records_key ON records(domain, key)`,
		`CREATE TABLE IF NOT EXISTS sync_status (
			domain TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='records_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE records_fts USING fts5(text, content=records, content_rowid=rowid)`,
			`CREATE TRIGGER records_ai AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
			`CREATE TRIGGER records_ad AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, text) VALUES('delete', old.rowid, old.text);
			END`,
			`CREATE TRIGGER records_au AFTER UPDATE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, text) VALUES('delete', old.rowid, old.text);
				INSERT INTO records_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SyncSummary holds counts from a library sync run.
type SyncSummary struct {
	Synced  int
	Skipped int
	Failed  int
}

// Total returns the number of domains processed.
func (s SyncSummary) Total() int {
	return s.Synced + s.Skipped + s.Failed
}

// Sync mirrors every domain's canonical records into the database.
// A domain whose canonical file mod time matches the stored sync state
// is skipped; a changed domain is replaced wholesale in a transaction.
func (s *Store) Sync(ctx context.Context, lib *library.Library, w io.Writer) (SyncSummary, error) {
	var summary SyncSummary

	for _, domain := range types.Domains {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := os.Stat(lib.CanonicalPath(domain))
		if os.IsNotExist(err) {
			fmt.Fprintf(w, "skipped %s (no canonical file)\n", domain)
			summary.Skipped++
			continue
		}
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", domain, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM sync_status WHERE domain = ?`, string(domain),
		).Scan(&storedModTime)
		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", domain)
			summary.Skipped++
			continue
		}

		records, err := lib.Load(domain)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", domain, err)
			summary.Failed++
			continue
		}

		if err := s.syncDomain(ctx, domain, records, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", domain, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "synced  %s (%d records)\n", domain, len(records))
		summary.Synced++
	}

	fmt.Fprintf(w, "\nsynced: %d, skipped: %d, failed: %d\n",
		summary.Synced, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *Store) syncDomain(ctx context.Context, domain types.Domain, records []types.Record, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE domain = ?`, string(domain)); err != nil {
		return fmt.Errorf("clearing old records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (domain, key, title, date, text, payload, sources)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	keyFn := dedup.KeyFor(domain)
	docs := index.Docs(domain, records)
	for i, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		sources, _ := json.Marshal(rec.Sources())

		doc := index.Doc{}
		if i < len(docs) {
			doc = docs[i]
		}
		if _, err := stmt.ExecContext(ctx,
			string(domain), keyFn(rec), doc.Title, doc.Date,
			doc.Text, string(payload), string(sources),
		); err != nil {
			return fmt.Errorf("inserting record %q: %w", doc.Title, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sync_status (domain, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(domain) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		string(domain), modTime,
	); err != nil {
		return fmt.Errorf("updating sync status: %w", err)
	}

	return tx.Commit()
}
