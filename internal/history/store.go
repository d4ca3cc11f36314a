package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

// Run is one persisted analysis run: overall counts plus per-rule counts.
type Run struct {
	RunID           string
	Timestamp       time.Time
	FileCount       int
	DiagnosticCount int
	RuleCounts      map[string]int
}

// Store persists run history to sqlite so trends survive process restarts.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  run_id TEXT PRIMARY KEY,
  ts_utc TEXT NOT NULL,
  file_count INTEGER NOT NULL,
  diagnostic_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_rules (
  run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
  rule_id TEXT NOT NULL,
  count INTEGER NOT NULL,
  PRIMARY KEY (run_id, rule_id)
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts_utc);
`)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SaveRun(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.RunID == "" {
		return fmt.Errorf("run id must not be empty")
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	return s.withRetry("save run", func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		_, err = tx.Exec(
			`INSERT INTO runs (run_id, ts_utc, file_count, diagnostic_count) VALUES (?, ?, ?, ?)
			 ON CONFLICT(run_id) DO UPDATE SET
			   ts_utc=excluded.ts_utc,
			   file_count=excluded.file_count,
			   diagnostic_count=excluded.diagnostic_count`,
			run.RunID,
			run.Timestamp.UTC().Format(time.RFC3339Nano),
			run.FileCount,
			run.DiagnosticCount,
		)
		if err != nil {
			return err
		}

		for ruleID, count := range run.RuleCounts {
			_, err = tx.Exec(
				`INSERT INTO run_rules (run_id, rule_id, count) VALUES (?, ?, ?)
				 ON CONFLICT(run_id, rule_id) DO UPDATE SET count=excluded.count`,
				run.RunID, ruleID, count,
			)
			if err != nil {
				return err
			}
		}

		return tx.Commit()
	})
}

// LoadRuns returns up to limit runs, oldest first. limit <= 0 means all.
func (s *Store) LoadRuns(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT run_id, ts_utc, file_count, diagnostic_count FROM runs ORDER BY ts_utc ASC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query = `SELECT run_id, ts_utc, file_count, diagnostic_count FROM (
		  SELECT run_id, ts_utc, file_count, diagnostic_count FROM runs ORDER BY ts_utc DESC LIMIT ?
		) ORDER BY ts_utc ASC`
		args = append(args, limit)
	}

	var rows *sql.Rows
	err := s.withRetry("load runs", func() error {
		var qErr error
		rows, qErr = s.db.Query(query, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			tsRaw string
			run   Run
		)
		if err := rows.Scan(&run.RunID, &tsRaw, &run.FileCount, &run.DiagnosticCount); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, tsRaw)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", tsRaw, err)
		}
		run.Timestamp = ts.UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}

	for i := range runs {
		counts, err := s.loadRuleCounts(runs[i].RunID)
		if err != nil {
			return nil, err
		}
		runs[i].RuleCounts = counts
	}

	return runs, nil
}

func (s *Store) loadRuleCounts(runID string) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT rule_id, count FROM run_rules WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			ruleID string
			count  int
		)
		if err := rows.Scan(&ruleID, &count); err != nil {
			return nil, fmt.Errorf("scan rule count row: %w", err)
		}
		counts[ruleID] = count
	}
	return counts, rows.Err()
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}
