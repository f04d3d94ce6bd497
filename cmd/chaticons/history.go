package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/miuchi/chaticons/internal/runlog"
)

func historyCmd(args []string, configPath string) {
	if len(args) > 0 {
		switch args[0] {
		case "summary":
			historySummary(args[1:], configPath)
			return
		case "files":
			historyFiles(args[1:], configPath)
			return
		case "clear":
			historyClear(configPath)
			return
		case "clean":
			historyClean(args[1:], configPath)
			return
		case "remove":
			historyRemove(args[1:], configPath)
			return
		case "export":
			historyExport(args[1:], configPath)
			return
		case "watch":
			historyWatch(configPath)
			return
		}
	}

	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fatal("count must be a positive integer")
		}
		count = n
	}

	store := openStore(configPath)
	defer closeStore(store)

	content, err := store.ReadContent()
	if err != nil {
		fatal("%v", err)
	}
	if content == "" {
		fmt.Println("No runs recorded. Enable logging with --log or \"log\": true in config.")
		return
	}

	blocks := runlog.SplitBlocks(content)
	if len(blocks) > count {
		blocks = blocks[len(blocks)-count:]
	}
	for i, b := range blocks {
		fmt.Print(b)
		fmt.Println()
		if i < len(blocks)-1 {
			fmt.Println()
		}
	}
}

func historySummary(args []string, configPath string) {
	days := 7
	if len(args) > 0 {
		if args[0] == "all" {
			days = 0
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				fatal("days must be a positive integer or \"all\"")
			}
			days = n
		}
	}

	store := openStore(configPath)
	defer closeStore(store)

	runs, err := store.Runs(days)
	if err != nil {
		fatal("%v", err)
	}
	groups := runlog.SummarizeByDay(runs, days)

	if len(groups) == 0 {
		if days == 0 {
			fmt.Println("No runs found.")
		} else {
			fmt.Println("No runs in the last", days, "days.")
		}
		return
	}

	var out strings.Builder
	renderSummaryTable(&out, groups, nil)
	fmt.Print(out.String())
}

func historyFiles(args []string, configPath string) {
	days := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fatal("days must be a positive integer")
		}
		days = n
	}

	store := openStore(configPath)
	defer closeStore(store)

	fcs, err := store.FileCounts(days)
	if err != nil {
		fatal("%v", err)
	}
	if len(fcs) == 0 {
		fmt.Println("No files recorded.")
		return
	}

	var out strings.Builder
	renderFileTable(&out, fcs)
	fmt.Print(out.String())
}

// --- Table layout constants ---

const (
	colCommand = 16 // width of the command column
	colName    = 24 // width of the file name column
	colNumber  = 7  // width of numeric columns (Runs, Files, Failed, New)
	colGap     = 2  // gap between numeric columns
	colPct     = 5  // width of the percentage column (fits " 100%")
	// Base separator width covers the fixed columns: command, Runs, % and Files.
	sepBase       = colCommand + 1 + colNumber + colGap + colPct + colGap + colNumber // 40
	sepPerCol     = colGap + colNumber                                                // 9
	watchInterval = 2 * time.Second
)

// --- ANSI color helpers (disabled when NO_COLOR is set or stdout is not a terminal) ---

var noColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))

func ansi(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\033[0m"
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func bold(s string) string   { return ansi("\033[1m", s) }
func dim(s string) string    { return ansi("\033[2m", s) }
func cyan(s string) string   { return ansi("\033[36m", s) }
func green(s string) string  { return ansi("\033[32m", s) }
func yellow(s string) string { return ansi("\033[33m", s) }

// fmtNum formats an integer with dot as thousands separator (e.g. 1234 → "1.234").
func fmtNum(n int) string {
	neg := ""
	if n < 0 {
		neg = "-"
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return neg + s
	}
	var buf strings.Builder
	r := len(s) % 3
	if r > 0 {
		buf.WriteString(s[:r])
	}
	for i := r; i < len(s); i += 3 {
		if buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(s[i : i+3])
	}
	return neg + buf.String()
}

// fmtPct formats n as a percentage of total (e.g. "68%"), or "" if total is 0.
func fmtPct(n, total int) string {
	if total == 0 {
		return ""
	}
	return strconv.Itoa(n*100/total) + "%"
}

// padL pads s to width with spaces on the left.
func padL(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// padR pads s to width with spaces on the right.
func padR(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// colorPadL applies a color function to s, then left-pads to width
// (accounting for invisible ANSI escape bytes).
func colorPadL(colorFn func(string) string, s string, width int) string {
	colored := colorFn(s)
	return padL(colored, width+(len(colored)-len(s)))
}

// colorPadR applies a color function to s, then right-pads to width.
func colorPadR(colorFn func(string) string, s string, width int) string {
	colored := colorFn(s)
	return padR(colored, width+(len(colored)-len(s)))
}

// renderTableHeader writes the date line, column header, and separator.
func renderTableHeader(w *strings.Builder, groups []runlog.DayGroup, hasFailed, hasNew bool, sep string) {
	if len(groups) == 1 {
		dg := groups[0]
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("%s  (%s)", dg.Date.Format("2006-01-02"), dg.Date.Format("Monday"))))
	} else {
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("%s — %s",
			groups[len(groups)-1].Date.Format("2006-01-02"),
			groups[0].Date.Format("2006-01-02"))))
	}

	hdr := fmt.Sprintf("  %-*s %*s  %*s  %*s", colCommand, "", colNumber, "Runs", colPct, "%", colNumber, "Files")
	if hasFailed {
		hdr += fmt.Sprintf("  %*s", colNumber, "Failed")
	}
	if hasNew {
		hdr += fmt.Sprintf("  %*s", colNumber, "New")
	}
	w.WriteString(bold(hdr) + "\n")
	w.WriteString(sep + "\n")
}

// renderSummaryTable writes per-command run totals for the period covered
// by groups. When baseline is non-nil (watch mode), a "New" column shows
// run deltas since the baseline snapshot.
func renderSummaryTable(w *strings.Builder, groups []runlog.DayGroup, baseline map[string]int) {
	ad := runlog.AggregateGroups(groups)
	hasNew := baseline != nil

	grandRuns, grandFiles, grandFailed := 0, 0, 0
	for _, c := range ad.PerCommand {
		grandRuns += c.Runs
		grandFiles += c.Files
		grandFailed += c.Failed
	}

	sep := dim("  " + strings.Repeat("─", sepBase+sepPerCol*btoi(ad.HasFailed)+sepPerCol*btoi(hasNew)))

	renderTableHeader(w, groups, ad.HasFailed, hasNew, sep)

	totalNew := 0
	for _, command := range ad.CommandOrder {
		c := ad.PerCommand[command]
		w.WriteString("  " + colorPadR(cyan, command, colCommand))
		w.WriteString(" " + padL(fmtNum(c.Runs), colNumber))
		w.WriteString("  " + padL(fmtPct(c.Runs, grandRuns), colPct))
		w.WriteString("  " + padL(fmtNum(c.Files), colNumber))
		if ad.HasFailed {
			if c.Failed > 0 {
				w.WriteString("  " + colorPadL(yellow, fmtNum(c.Failed), colNumber))
			} else {
				w.WriteString(fmt.Sprintf("  %*s", colNumber, ""))
			}
		}
		if hasNew {
			n := c.Runs - baseline[command]
			if n > 0 {
				w.WriteString("  " + colorPadL(green, "+"+fmtNum(n), colNumber))
				totalNew += n
			} else {
				w.WriteString(fmt.Sprintf("  %*s", colNumber, ""))
			}
		}
		w.WriteString("\n")
	}

	w.WriteString(sep + "\n")
	w.WriteString(bold(fmt.Sprintf("  %-*s %*s  %*s  %*s", colCommand, "Total",
		colNumber, fmtNum(grandRuns), colPct, "", colNumber, fmtNum(grandFiles))))
	if ad.HasFailed {
		if grandFailed > 0 {
			w.WriteString("  " + colorPadL(yellow, fmtNum(grandFailed), colNumber))
		} else {
			w.WriteString(fmt.Sprintf("  %*s", colNumber, ""))
		}
	}
	if hasNew {
		if totalNew > 0 {
			w.WriteString("  " + colorPadL(green, "+"+fmtNum(totalNew), colNumber))
		} else {
			w.WriteString(fmt.Sprintf("  %*s", colNumber, ""))
		}
	}
	w.WriteString("\n")
}

// renderFileTable writes one row per generated file with its run count.
func renderFileTable(w *strings.Builder, fcs []runlog.FileCount) {
	sep := dim("  " + strings.Repeat("─", colName+1+colNumber))

	w.WriteString(bold(fmt.Sprintf("  %-*s %*s", colName, "File", colNumber, "Runs")) + "\n")
	w.WriteString(sep + "\n")

	total := 0
	for _, fc := range fcs {
		w.WriteString("  " + colorPadR(cyan, fc.Name, colName))
		w.WriteString(" " + padL(fmtNum(fc.Count), colNumber) + "\n")
		total += fc.Count
	}

	w.WriteString(sep + "\n")
	w.WriteString(bold(fmt.Sprintf("  %-*s %*s", colName, "Total", colNumber, fmtNum(total))) + "\n")
}

// buildBaseline snapshots per-command run totals for watch delta tracking.
func buildBaseline(groups []runlog.DayGroup) map[string]int {
	b := map[string]int{}
	for _, dg := range groups {
		for _, s := range dg.Summaries {
			b[s.Command] += s.Runs
		}
	}
	return b
}

func historyClear(configPath string) {
	store := openStore(configPath)
	defer closeStore(store)

	if err := store.Clear(); err != nil {
		fatal("%v", err)
	}
	fmt.Println("Run history cleared.")
}

func historyClean(args []string, configPath string) {
	if len(args) == 0 {
		// No days argument means clear everything.
		historyClear(configPath)
		return
	}

	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		fatal("days must be a positive integer")
	}

	store := openStore(configPath)
	defer closeStore(store)

	removed, err := store.Clean(days)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Removed %d runs (keeping the last %d days).\n", removed, days)
}

func historyRemove(args []string, configPath string) {
	if len(args) == 0 {
		fatal("remove requires a command name\nUsage: chaticons history remove <command>")
	}

	store := openStore(configPath)
	defer closeStore(store)

	removed, err := store.RemoveCommand(args[0])
	if err != nil {
		fatal("%v", err)
	}
	if removed == 0 {
		fmt.Printf("No runs found for command %q.\n", args[0])
		return
	}
	fmt.Printf("Removed %d runs for command %q.\n", removed, args[0])
}

func historyExport(args []string, configPath string) {
	days := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fatal("days must be a positive integer")
		}
		days = n
	}

	store := openStore(configPath)
	defer closeStore(store)

	runs, err := store.Runs(days)
	if err != nil {
		fatal("%v", err)
	}

	type exportRun struct {
		Time       string `json:"time"`
		Command    string `json:"command"`
		Dir        string `json:"dir"`
		Files      int    `json:"files"`
		OK         bool   `json:"ok"`
		DurationMS int64  `json:"duration_ms"`
	}
	out := make([]exportRun, len(runs))
	for i, r := range runs {
		out[i] = exportRun{
			Time:       r.Time.Format(time.RFC3339),
			Command:    r.Command,
			Dir:        r.Dir,
			Files:      r.Files,
			OK:         r.OK,
			DurationMS: r.DurationMS,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

func historyWatch(configPath string) {
	store := openStore(configPath)
	defer closeStore(store)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fatal("cannot enter raw mode: %v", err)
	}
	defer term.Restore(fd, oldState)

	keys := make(chan byte, 1)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				keys <- buf[0]
			}
			if err != nil {
				return
			}
		}
	}()

	var baseline map[string]int
	started := time.Now()
	for {
		elapsed := time.Since(started).Truncate(time.Second)
		var out strings.Builder
		out.WriteString("\033[2J\033[H")
		fmt.Fprintf(&out, "chaticons history watch  —  started %s (%s)  —  press x to exit\n\n",
			started.Format("15:04:05"), dim(elapsed.String()))

		runs, err := store.Runs(1)
		if err != nil {
			fmt.Fprintf(&out, "Error: %v\n", err)
		} else {
			groups := runlog.SummarizeByDay(runs, 1)
			if len(groups) == 0 {
				out.WriteString("No runs today.\n")
			} else {
				// Capture baseline on first render.
				if baseline == nil {
					baseline = buildBaseline(groups)
				}
				renderSummaryTable(&out, groups, baseline)
			}
		}

		// In raw mode \n doesn't include \r, so convert.
		os.Stdout.WriteString(strings.ReplaceAll(out.String(), "\n", "\r\n"))

		timer := time.NewTimer(watchInterval)
		select {
		case key := <-keys:
			timer.Stop()
			if key == 'x' || key == 'X' || key == 3 { // x, X, or Ctrl+C
				os.Stdout.WriteString("\033[2J\033[H")
				return
			}
		case <-timer.C:
		}
	}
}
