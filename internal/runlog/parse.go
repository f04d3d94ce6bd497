package runlog

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Run is a single parsed generator run.
type Run struct {
	Time       time.Time
	Command    string
	Dir        string
	Files      int
	OK         bool
	DurationMS int64
}

// FileCount holds a generated file name and how many runs produced it.
type FileCount struct {
	Name  string
	Count int
}

// DaySummary holds run totals for one command on one day.
type DaySummary struct {
	Command string
	Runs    int
	Files   int
	Failed  int
}

// DayGroup holds all summaries for a single calendar day.
type DayGroup struct {
	Date      time.Time
	Summaries []DaySummary
}

// ParseRuns splits log content on blank lines and parses summary lines
// into runs. File detail lines (indented, containing "file[") are skipped.
// Malformed lines are silently skipped.
func ParseRuns(content string) []Run {
	content = strings.TrimRight(content, "\n\r ")
	if content == "" {
		return nil
	}

	var runs []Run
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		for _, line := range strings.Split(block, "\n") {
			if strings.Contains(line, "file[") {
				continue
			}

			ts, ok := ExtractTimestamp(line)
			if !ok {
				continue
			}

			command := extractField(line, "command")
			if command == "" {
				continue
			}

			files, _ := strconv.Atoi(extractField(line, "files"))
			durationMS, _ := strconv.ParseInt(extractField(line, "duration_ms"), 10, 64)

			runs = append(runs, Run{
				Time:       ts,
				Command:    command,
				Dir:        extractQuotedField(line, "dir"),
				Files:      files,
				OK:         extractField(line, "ok") == "true",
				DurationMS: durationMS,
			})
		}
	}
	return runs
}

// ParseFileCounts scans log content for file detail lines and returns
// unique file names sorted by frequency (descending), then alphabetically.
func ParseFileCounts(content string) []FileCount {
	content = strings.TrimRight(content, "\n\r ")
	if content == "" {
		return nil
	}

	counts := map[string]int{}
	for _, line := range strings.Split(content, "\n") {
		_, name := parseFileLine(line)
		if name != "" {
			counts[name]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	fcs := make([]FileCount, 0, len(counts))
	for name, count := range counts {
		fcs = append(fcs, FileCount{Name: name, Count: count})
	}
	sort.Slice(fcs, func(i, j int) bool {
		if fcs[i].Count != fcs[j].Count {
			return fcs[i].Count > fcs[j].Count
		}
		return fcs[i].Name < fcs[j].Name
	})
	return fcs
}

// SummarizeByDay filters runs to the last N calendar days (local time),
// groups by date + command, and returns day groups sorted descending with
// summaries sorted alphabetically by command. Pass days=0 for all runs.
func SummarizeByDay(runs []Run, days int) []DayGroup {
	now := time.Now()
	var cutoff time.Time
	if days > 0 {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		cutoff = today.AddDate(0, 0, -(days - 1))
	}

	type key struct {
		date    string
		command string
	}
	grouped := map[key]*DaySummary{}
	dates := map[string]time.Time{}

	for _, r := range runs {
		local := r.Time.In(now.Location())
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, now.Location())
		if days > 0 && day.Before(cutoff) {
			continue
		}

		ds := day.Format("2006-01-02")
		k := key{date: ds, command: r.Command}
		s, ok := grouped[k]
		if !ok {
			s = &DaySummary{Command: r.Command}
			grouped[k] = s
			dates[ds] = day
		}

		s.Runs++
		s.Files += r.Files
		if !r.OK {
			s.Failed++
		}
	}

	dayMap := map[string]*DayGroup{}
	for k, s := range grouped {
		dg, ok := dayMap[k.date]
		if !ok {
			dg = &DayGroup{Date: dates[k.date]}
			dayMap[k.date] = dg
		}
		dg.Summaries = append(dg.Summaries, *s)
	}

	for _, dg := range dayMap {
		sort.Slice(dg.Summaries, func(i, j int) bool {
			return dg.Summaries[i].Command < dg.Summaries[j].Command
		})
	}

	groups := make([]DayGroup, 0, len(dayMap))
	for _, dg := range dayMap {
		groups = append(groups, *dg)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})

	return groups
}

// ExtractTimestamp parses the RFC3339 timestamp at the start of a log line
// (everything before the first "  " double-space separator). Returns the
// parsed time and true on success, or zero time and false on failure.
func ExtractTimestamp(line string) (time.Time, bool) {
	tsEnd := strings.Index(line, "  ")
	if tsEnd < 0 {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, line[:tsEnd])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// extractField returns the value after "key=" in a space-separated line.
// Returns "" if not found.
func extractField(line, key string) string {
	prefix := key + "="
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, prefix) {
			return field[len(prefix):]
		}
	}
	return ""
}

// extractQuotedField returns the %q-decoded value after "key=" in a line.
// Used for dir, whose value may contain spaces. Returns "" if the key is
// missing or the value is not quoted.
func extractQuotedField(line, key string) string {
	marker := " " + key + "="
	idx := strings.Index(line, marker)
	if idx < 0 {
		return ""
	}
	return extractQuoted(line[idx+len(marker):])
}

// extractQuoted extracts a Go %q-encoded string from the start of s.
// It finds the matching closing quote (respecting backslash escapes),
// then uses strconv.Unquote to decode the value. Returns "" on failure.
func extractQuoted(s string) string {
	if len(s) == 0 || s[0] != '"' {
		return ""
	}
	// Find closing quote (skip escaped quotes).
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++ // skip escaped character
			continue
		}
		if s[i] == '"' {
			text, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return ""
			}
			return text
		}
	}
	return ""
}

// parseFileLine extracts the file number and name from a detail line like:
//
//	2026-01-02T15:04:05Z    file[3] icon-128x128.png
func parseFileLine(line string) (num int, name string) {
	idx := strings.Index(line, "file[")
	if idx < 0 {
		return 0, ""
	}
	after := line[idx+len("file["):]
	bracket := strings.Index(after, "]")
	if bracket < 0 {
		return 0, ""
	}
	num, err := strconv.Atoi(after[:bracket])
	if err != nil {
		return 0, ""
	}
	return num, strings.TrimSpace(after[bracket+1:])
}
