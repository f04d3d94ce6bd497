// Package runlog records generator runs and answers history queries over
// them. Two backends exist: a flat text log and a SQLite database.
package runlog

import (
	"path/filepath"
	"time"

	"github.com/miuchi/chaticons/internal/config"
	"github.com/miuchi/chaticons/internal/paths"
)

// Store abstracts run history storage.
type Store interface {
	// Record captures one generator run: the subcommand, the output
	// directory, the base names of the files written, whether the run
	// succeeded, and how long it took.
	Record(command, dir string, files []string, ok bool, d time.Duration) error

	// Read
	Runs(days int) ([]Run, error)              // parsed runs, 0 = all
	RunsSince(cutoff time.Time) ([]Run, error) // runs at or after cutoff
	FileCounts(days int) ([]FileCount, error)  // per-file generation frequency
	ReadContent() (string, error)              // raw log text

	// Maintenance
	Clean(days int) (int, error)            // remove old runs, return removed count
	RemoveCommand(name string) (int, error) // remove runs of one command, return removed count
	Clear() error                           // delete all data

	// Metadata
	Path() string
}

// LogPath returns the flat log location: DataDir()/chaticons.log.
func LogPath() string {
	return filepath.Join(paths.DataDir(), paths.LogFileName)
}

// DBPath returns the SQLite database location: DataDir()/chaticons.db.
func DBPath() string {
	return filepath.Join(paths.DataDir(), paths.DBFileName)
}

// Open returns the history store selected by cfg.Store.
func Open(cfg config.Config) (Store, error) {
	if cfg.Store == config.StoreSQLite {
		return NewSQLiteStore(DBPath())
	}
	return NewFileStore(LogPath()), nil
}
