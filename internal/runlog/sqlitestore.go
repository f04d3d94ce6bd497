package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/miuchi/chaticons/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path, creates
// tables and indexes, and performs one-time migration from chaticons.log
// if it exists in the same directory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp   TEXT    NOT NULL,
    command     TEXT    NOT NULL DEFAULT '',
    dir         TEXT    NOT NULL DEFAULT '',
    files       INTEGER NOT NULL DEFAULT 0,
    ok          INTEGER NOT NULL DEFAULT 1,
    duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_files (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id   INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    file_num INTEGER NOT NULL,
    name     TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_runs_command   ON runs(command);
CREATE INDEX IF NOT EXISTS idx_run_files_name ON run_files(name);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	// One-time migration from flat file.
	logPath := filepath.Join(filepath.Dir(path), paths.LogFileName)
	if _, err := os.Stat(logPath); err == nil {
		if err := s.migrateFromFile(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "runlog: migration: %v\n", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Record(command, dir string, files []string, ok bool, d time.Duration) error {
	ts := time.Now().Format(time.RFC3339)

	okInt := 0
	if ok {
		okInt = 1
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (timestamp, command, dir, files, ok, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ts, command, dir, len(files), okInt, d.Milliseconds(),
	)
	if err != nil {
		return err
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, name := range files {
		if _, err := tx.Exec(
			`INSERT INTO run_files (run_id, file_num, name) VALUES (?, ?, ?)`,
			runID, i+1, name,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Runs(days int) ([]Run, error) {
	query := `SELECT timestamp, command, dir, files, ok, duration_ms FROM runs`
	var args []any
	if days > 0 {
		cutoff := DayCutoff(days).Format(time.RFC3339)
		query += ` WHERE timestamp >= ?`
		args = append(args, cutoff)
	}
	query += ` ORDER BY id`

	return s.queryRuns(query, args...)
}

func (s *SQLiteStore) RunsSince(cutoff time.Time) ([]Run, error) {
	query := `SELECT timestamp, command, dir, files, ok, duration_ms
		FROM runs WHERE timestamp >= ? ORDER BY id`
	return s.queryRuns(query, cutoff.Format(time.RFC3339))
}

func (s *SQLiteStore) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var tsStr, command, dir string
		var files, okInt int
		var durationMS int64
		if err := rows.Scan(&tsStr, &command, &dir, &files, &okInt, &durationMS); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		runs = append(runs, Run{
			Time:       ts,
			Command:    command,
			Dir:        dir,
			Files:      files,
			OK:         okInt != 0,
			DurationMS: durationMS,
		})
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) FileCounts(days int) ([]FileCount, error) {
	query := `SELECT rf.name, COUNT(*) as cnt
		FROM run_files rf
		JOIN runs r ON rf.run_id = r.id`
	var args []any
	if days > 0 {
		cutoff := DayCutoff(days).Format(time.RFC3339)
		query += ` WHERE r.timestamp >= ?`
		args = append(args, cutoff)
	}
	query += ` GROUP BY rf.name ORDER BY cnt DESC, rf.name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fcs []FileCount
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		fcs = append(fcs, FileCount{Name: name, Count: count})
	}
	return fcs, rows.Err()
}

func (s *SQLiteStore) ReadContent() (string, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, command, dir, files, ok, duration_ms
		 FROM runs ORDER BY id`)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	type runRow struct {
		id         int64
		ts         string
		command    string
		dir        string
		files      int
		ok         int
		durationMS int64
	}

	var runRows []runRow
	for rows.Next() {
		var rr runRow
		if err := rows.Scan(&rr.id, &rr.ts, &rr.command, &rr.dir, &rr.files, &rr.ok, &rr.durationMS); err != nil {
			return "", err
		}
		runRows = append(runRows, rr)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if len(runRows) == 0 {
		return "", nil
	}

	// Fetch all run_files keyed by run_id.
	type fileRow struct {
		num  int
		name string
	}
	filesByRun := map[int64][]fileRow{}

	frRows, err := s.db.Query(
		`SELECT run_id, file_num, name FROM run_files ORDER BY run_id, file_num`)
	if err != nil {
		return "", err
	}
	defer frRows.Close()

	for frRows.Next() {
		var runID int64
		var fr fileRow
		if err := frRows.Scan(&runID, &fr.num, &fr.name); err != nil {
			return "", err
		}
		filesByRun[runID] = append(filesByRun[runID], fr)
	}
	if err := frRows.Err(); err != nil {
		return "", err
	}

	// Reconstruct the flat-file text form.
	var b strings.Builder
	for _, rr := range runRows {
		fmt.Fprintf(&b, "%s  command=%s  files=%d  ok=%t  duration_ms=%d  dir=%q\n",
			rr.ts, rr.command, rr.files, rr.ok != 0, rr.durationMS, rr.dir)
		for _, fr := range filesByRun[rr.id] {
			fmt.Fprintf(&b, "%s    file[%d] %s\n", rr.ts, fr.num, fr.name)
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}

func (s *SQLiteStore) Clean(days int) (int, error) {
	cutoff := DayCutoff(days).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) RemoveCommand(name string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM runs WHERE command = ?`, name)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM runs`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// migrateFromFile reads an existing chaticons.log and imports its runs into
// the SQLite database. On success, renames the log to chaticons.log.migrated.
func (s *SQLiteStore) migrateFromFile(logPath string) error {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return err
	}
	content := strings.TrimRight(string(data), "\n\r ")
	if content == "" {
		return os.Rename(logPath, logPath+".migrated")
	}

	blocks := SplitBlocks(content)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	migrated := 0
	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		if len(lines) == 0 {
			continue
		}

		firstLine := lines[0]
		ts, ok := ExtractTimestamp(firstLine)
		if !ok {
			continue
		}

		command := extractField(firstLine, "command")
		if command == "" {
			continue
		}

		var files int
		fmt.Sscanf(extractField(firstLine, "files"), "%d", &files)
		var durationMS int64
		fmt.Sscanf(extractField(firstLine, "duration_ms"), "%d", &durationMS)

		okInt := 0
		if extractField(firstLine, "ok") == "true" {
			okInt = 1
		}

		res, err := tx.Exec(
			`INSERT INTO runs (timestamp, command, dir, files, ok, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			ts.Format(time.RFC3339), command, extractQuotedField(firstLine, "dir"),
			files, okInt, durationMS,
		)
		if err != nil {
			return fmt.Errorf("migrate run: %w", err)
		}

		runID, _ := res.LastInsertId()

		for _, line := range lines[1:] {
			num, name := parseFileLine(line)
			if name == "" {
				continue
			}
			if _, err := tx.Exec(
				`INSERT INTO run_files (run_id, file_num, name) VALUES (?, ?, ?)`,
				runID, num, name,
			); err != nil {
				return fmt.Errorf("migrate file: %w", err)
			}
		}

		migrated++
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "runlog: migrated %d runs from %s\n", migrated, paths.LogFileName)
	return os.Rename(logPath, logPath+".migrated")
}
