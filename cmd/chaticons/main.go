package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/miuchi/chaticons/internal/config"
	"github.com/miuchi/chaticons/internal/runlog"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// runOpts carries the flag values shared by the generation commands.
type runOpts struct {
	Out string // --out override; "" means use the config value
	Log bool   // --log forces run logging on
}

func main() {
	args := os.Args[1:]
	configPath := ""
	opts := runOpts{}

	// Parse flags
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--out", "-o":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --out requires a directory path\n")
				os.Exit(1)
			}
			opts.Out = args[i+1]
			i++
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Error: --config requires a file path\n")
				os.Exit(1)
			}
			configPath = args[i+1]
			i++
		case "--log":
			opts.Log = true
		default:
			filtered = append(filtered, args[i])
		}
	}

	// Bare invocation generates the icon set.
	if len(filtered) == 0 {
		iconsCmd(configPath, opts)
		return
	}

	switch filtered[0] {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "icons":
		iconsCmd(configPath, opts)
	case "all":
		allCmd(configPath, opts)
	case "manifest":
		manifestCmd(configPath, opts)
	case "favicon":
		faviconCmd(configPath, opts)
	case "list", "-l", "--list":
		listSizes()
	case "history":
		historyCmd(filtered[1:], configPath)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", filtered[0])
		fmt.Fprintf(os.Stderr, "Run 'chaticons help' for usage.\n")
		os.Exit(1)
	}
}

// fatal prints an error to stderr and exits with status 1.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the config or exits with the load error.
func loadConfig(configPath string) config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("%v", err)
	}
	return cfg
}

// resolveOut applies the flag > config priority for the output directory.
func resolveOut(out string, cfg config.Config) string {
	if out != "" {
		return out
	}
	return cfg.OutputDir
}

// shouldLog reports whether run logging is enabled via config or flag.
func shouldLog(cfg config.Config, flag bool) bool {
	return cfg.Log || flag
}

// openStore opens the run log store selected by the config.
func openStore(configPath string) runlog.Store {
	store, err := runlog.Open(loadConfig(configPath))
	if err != nil {
		fatal("%v", err)
	}
	return store
}

// closeStore releases backends that hold resources (the SQLite store).
func closeStore(s runlog.Store) {
	if c, ok := s.(io.Closer); ok {
		c.Close()
	}
}

func printVersion() {
	fmt.Printf("chaticons %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("chaticons %s - Generate the miuchi.chat PWA icon set\n", version)
	fmt.Println(`
Usage:
  chaticons [options] [command]

Running without a command generates the 8 manifest icons.

Commands:
  icons                  Generate the 8 manifest icons (the default)
  all                    Icons + favicon + touch icon + manifest.json
  manifest               Write manifest.json only
  favicon                Generate favicon PNGs and favicon.ico only
  list, -l, --list       Show the size list and per-size details
  history                Show and manage the generation run log
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Options:
  --out, -o <dir>        Output directory (default: config or frontend/public/icons)
  --config, -c <path>    Path to chaticons.json
  --log                  Record this run in the history log

History:
  history [n]            Show the last n runs (default 10)
  history summary [days] Per-command totals, last 7 days ("all" for everything)
  history files [days]   Per-file generation counts
  history watch          Live summary table, refreshed until 'x' is pressed
  history export [days]  Dump runs as JSON
  history clean [days]   Drop runs older than the given window
  history remove <cmd>   Drop all runs of one command
  history clear          Drop the entire history

Config resolution:
  1. --config <path>                          (explicit)
  2. chaticons.json next to binary            (portable)
  3. ~/.config/chaticons/chaticons.json       (user default)

Examples:
  chaticons                        Generate icons into frontend/public/icons
  chaticons -o build/icons         Generate into build/icons
  chaticons all --log              Full asset set, recorded in the run log
  chaticons history summary all    All-time per-command totals`)
}
