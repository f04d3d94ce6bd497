package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/miuchi/chaticons/internal/paths"
)

// FileStore implements Store using a flat log file. Each run is a block:
// a summary line, one indented file line per generated file, then a blank
// line.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) Record(command, dir string, files []string, ok bool, d time.Duration) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()

	ts := time.Now().Format(time.RFC3339)

	// dir is %q-encoded: it is the one field that may contain spaces.
	fmt.Fprintf(file, "%s  command=%s  files=%d  ok=%t  duration_ms=%d  dir=%q\n",
		ts, command, len(files), ok, d.Milliseconds(), dir)

	for i, name := range files {
		fmt.Fprintf(file, "%s    file[%d] %s\n", ts, i+1, name)
	}

	// Blank line separates runs.
	fmt.Fprintln(file)
	return nil
}

func (f *FileStore) Runs(days int) ([]Run, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	runs := ParseRuns(string(data))
	if days <= 0 {
		return runs, nil
	}

	cutoff := DayCutoff(days)
	var filtered []Run
	for _, r := range runs {
		if !r.Time.Before(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (f *FileStore) RunsSince(cutoff time.Time) ([]Run, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var filtered []Run
	for _, r := range ParseRuns(string(data)) {
		if !r.Time.Before(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (f *FileStore) FileCounts(days int) ([]FileCount, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	content := string(data)
	if days > 0 {
		content = FilterBlocksByDays(content, days)
	}
	return ParseFileCounts(content), nil
}

func (f *FileStore) ReadContent() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (f *FileStore) Clean(days int) (int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	content := strings.TrimRight(string(data), "\n\r ")
	if content == "" {
		return 0, nil
	}

	origBlocks := len(SplitBlocks(content))
	filtered := FilterBlocksByDays(content, days)
	keptBlocks := 0
	if filtered != "" {
		keptBlocks = len(SplitBlocks(filtered))
	}
	removed := origBlocks - keptBlocks

	if filtered == "" {
		_ = os.Remove(f.path)
		return removed, nil
	}

	out := filtered + "\n\n"
	if err := os.WriteFile(f.path, []byte(out), paths.FilePerm); err != nil {
		return 0, err
	}
	return removed, nil
}

func (f *FileStore) RemoveCommand(name string) (int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	content := strings.TrimRight(string(data), "\n\r ")
	if content == "" {
		return 0, nil
	}

	filtered, removed := FilterBlocksByCommand(content, name)
	if removed == 0 {
		return 0, nil
	}

	if filtered == "" {
		_ = os.Remove(f.path)
		return removed, nil
	}

	out := filtered + "\n\n"
	if err := os.WriteFile(f.path, []byte(out), paths.FilePerm); err != nil {
		return 0, err
	}
	return removed, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}
