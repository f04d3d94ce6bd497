package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName     = "chaticons"
	ConfigFileName = "chaticons.json"
	LogFileName    = "chaticons.log"
	DBFileName     = "chaticons.db"
	DirPerm        = 0755
	FilePerm       = 0644
)

// DefaultOutputDir is where generated assets land when neither the config
// file nor --out says otherwise. Relative to the working directory so the
// tool drops icons straight into the frontend tree when run from the repo
// root.
var DefaultOutputDir = filepath.Join("frontend", "public", "icons")

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for chaticons:
//   - Windows: %APPDATA%\chaticons
//   - Unix:    ~/.config/chaticons
//
// Falls back to os.TempDir()/chaticons if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
