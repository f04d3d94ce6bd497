package runlog

import (
	"testing"
	"time"
)

func TestParseRuns_Single(t *testing.T) {
	content := "2026-02-22T10:00:00+01:00  command=icons  files=8  ok=true  duration_ms=42  dir=\"public/icons\"\n" +
		"2026-02-22T10:00:00+01:00    file[1] icon-72x72.png\n" +
		"2026-02-22T10:00:00+01:00    file[2] icon-96x96.png\n"

	runs := ParseRuns(content)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.Command != "icons" {
		t.Errorf("command = %q, want %q", r.Command, "icons")
	}
	if r.Dir != "public/icons" {
		t.Errorf("dir = %q, want %q", r.Dir, "public/icons")
	}
	if r.Files != 8 {
		t.Errorf("files = %d, want 8", r.Files)
	}
	if !r.OK {
		t.Error("ok = false, want true")
	}
	if r.DurationMS != 42 {
		t.Errorf("duration_ms = %d, want 42", r.DurationMS)
	}
	want := time.Date(2026, 2, 22, 10, 0, 0, 0, time.FixedZone("", 3600))
	if !r.Time.Equal(want) {
		t.Errorf("time = %v, want %v", r.Time, want)
	}
}

func TestParseRuns_DirWithSpaces(t *testing.T) {
	content := "2026-02-22T10:00:00+01:00  command=icons  files=8  ok=true  duration_ms=42  dir=\"/tmp/My Projects/icons\"\n"

	runs := ParseRuns(content)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Dir != "/tmp/My Projects/icons" {
		t.Errorf("dir = %q, want %q", runs[0].Dir, "/tmp/My Projects/icons")
	}
	if runs[0].Files != 8 {
		t.Errorf("files = %d, want 8", runs[0].Files)
	}
}

func TestParseRuns_FailedRun(t *testing.T) {
	content := "2026-02-22T10:00:00+01:00  command=all  files=0  ok=false  duration_ms=7  dir=\"out\"\n"

	runs := ParseRuns(content)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].OK {
		t.Error("ok = true, want false")
	}
}

func TestParseRuns_MalformedTimestamp(t *testing.T) {
	content := "not-a-timestamp  command=icons  files=8  ok=true  duration_ms=42  dir=\"out\"\n"

	runs := ParseRuns(content)
	if len(runs) != 0 {
		t.Fatalf("expected 0 runs for malformed timestamp, got %d", len(runs))
	}
}

func TestParseRuns_MissingDoubleSpace(t *testing.T) {
	content := "2026-02-22T10:00:00+01:00 command=icons files=8 ok=true duration_ms=42 dir=\"out\"\n"

	runs := ParseRuns(content)
	if len(runs) != 0 {
		t.Fatalf("expected 0 runs for missing double-space separator, got %d", len(runs))
	}
}

func TestParseRuns_MissingCommand(t *testing.T) {
	content := "2026-02-22T10:00:00+01:00  files=8  ok=true  duration_ms=42  dir=\"out\"\n"

	runs := ParseRuns(content)
	if len(runs) != 0 {
		t.Fatalf("expected 0 runs without command field, got %d", len(runs))
	}
}

func TestParseRuns_Empty(t *testing.T) {
	runs := ParseRuns("")
	if runs != nil {
		t.Fatalf("expected nil for empty content, got %v", runs)
	}

	runs = ParseRuns("   \n\n  ")
	if runs != nil {
		t.Fatalf("expected nil for whitespace-only content, got %v", runs)
	}
}

func TestParseRuns_MultipleBlocks(t *testing.T) {
	content := "2026-02-22T10:00:00+01:00  command=icons  files=8  ok=true  duration_ms=40  dir=\"out\"\n" +
		"2026-02-22T10:00:00+01:00    file[1] icon-72x72.png\n" +
		"\n" +
		"2026-02-22T10:05:00+01:00  command=manifest  files=1  ok=true  duration_ms=2  dir=\"out\"\n" +
		"\n" +
		"2026-02-22T11:00:00+01:00  command=favicon  files=3  ok=false  duration_ms=12  dir=\"out\"\n"

	runs := ParseRuns(content)
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].Command != "icons" {
		t.Errorf("run[0] command = %q, want %q", runs[0].Command, "icons")
	}
	if runs[1].Command != "manifest" {
		t.Errorf("run[1] command = %q, want %q", runs[1].Command, "manifest")
	}
	if runs[2].Command != "favicon" || runs[2].OK {
		t.Errorf("run[2] = %+v, want failed favicon run", runs[2])
	}
}

func TestParseFileCounts_FrequencySort(t *testing.T) {
	content := "2026-02-22T10:00:00+01:00  command=icons  files=2  ok=true  duration_ms=40  dir=\"out\"\n" +
		"2026-02-22T10:00:00+01:00    file[1] icon-72x72.png\n" +
		"2026-02-22T10:00:00+01:00    file[2] icon-96x96.png\n" +
		"\n" +
		"2026-02-22T10:05:00+01:00  command=icons  files=1  ok=true  duration_ms=38  dir=\"out\"\n" +
		"2026-02-22T10:05:00+01:00    file[1] icon-96x96.png\n"

	fcs := ParseFileCounts(content)
	if len(fcs) != 2 {
		t.Fatalf("expected 2 file counts, got %d", len(fcs))
	}
	if fcs[0].Name != "icon-96x96.png" || fcs[0].Count != 2 {
		t.Errorf("fcs[0] = %+v, want icon-96x96.png count 2", fcs[0])
	}
	if fcs[1].Name != "icon-72x72.png" || fcs[1].Count != 1 {
		t.Errorf("fcs[1] = %+v, want icon-72x72.png count 1", fcs[1])
	}
}

func TestParseFileCounts_TieSortsAlphabetically(t *testing.T) {
	content := "2026-02-22T10:00:00+01:00  command=icons  files=2  ok=true  duration_ms=40  dir=\"out\"\n" +
		"2026-02-22T10:00:00+01:00    file[1] zebra.png\n" +
		"2026-02-22T10:00:00+01:00    file[2] apple.png\n"

	fcs := ParseFileCounts(content)
	if len(fcs) != 2 {
		t.Fatalf("expected 2 file counts, got %d", len(fcs))
	}
	if fcs[0].Name != "apple.png" {
		t.Errorf("fcs[0] name = %q, want %q", fcs[0].Name, "apple.png")
	}
}

func TestParseFileCounts_Empty(t *testing.T) {
	if fcs := ParseFileCounts(""); fcs != nil {
		t.Fatalf("expected nil for empty content, got %v", fcs)
	}

	// Summary lines without file details produce no counts.
	content := "2026-02-22T10:00:00+01:00  command=manifest  files=0  ok=true  duration_ms=2  dir=\"out\"\n"
	if fcs := ParseFileCounts(content); fcs != nil {
		t.Fatalf("expected nil without file lines, got %v", fcs)
	}
}

func TestSummarizeByDay_Grouping(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	runs := []Run{
		{Time: today, Command: "icons", Files: 8, OK: true},
		{Time: today, Command: "icons", Files: 8, OK: true},
		{Time: today, Command: "favicon", Files: 3, OK: false},
		{Time: yesterday, Command: "icons", Files: 8, OK: true},
	}

	groups := SummarizeByDay(runs, 7)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}

	// First group is today (descending order).
	todayGroup := groups[0]
	if len(todayGroup.Summaries) != 2 {
		t.Fatalf("today: expected 2 summaries, got %d", len(todayGroup.Summaries))
	}

	// Summaries are sorted alphabetically: favicon before icons.
	if todayGroup.Summaries[0].Command != "favicon" {
		t.Errorf("today[0] command = %q, want %q", todayGroup.Summaries[0].Command, "favicon")
	}
	if todayGroup.Summaries[0].Failed != 1 {
		t.Errorf("today[0] failed = %d, want 1", todayGroup.Summaries[0].Failed)
	}

	if todayGroup.Summaries[1].Command != "icons" {
		t.Errorf("today[1] command = %q, want %q", todayGroup.Summaries[1].Command, "icons")
	}
	if todayGroup.Summaries[1].Runs != 2 {
		t.Errorf("today[1] runs = %d, want 2", todayGroup.Summaries[1].Runs)
	}
	if todayGroup.Summaries[1].Files != 16 {
		t.Errorf("today[1] files = %d, want 16", todayGroup.Summaries[1].Files)
	}

	// Second group is yesterday.
	yesterdayGroup := groups[1]
	if len(yesterdayGroup.Summaries) != 1 {
		t.Fatalf("yesterday: expected 1 summary, got %d", len(yesterdayGroup.Summaries))
	}
	if yesterdayGroup.Summaries[0].Runs != 1 {
		t.Errorf("yesterday[0] runs = %d, want 1", yesterdayGroup.Summaries[0].Runs)
	}
}

func TestSummarizeByDay_DayFiltering(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, now.Location())
	old := today.AddDate(0, 0, -10)

	runs := []Run{
		{Time: today, Command: "icons", Files: 8, OK: true},
		{Time: old, Command: "icons", Files: 8, OK: true},
	}

	groups := SummarizeByDay(runs, 7)
	if len(groups) != 1 {
		t.Fatalf("expected 1 day group (old run filtered), got %d", len(groups))
	}
}

func TestSummarizeByDay_ZeroDaysKeepsAll(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, now.Location())
	old := today.AddDate(0, 0, -100)

	runs := []Run{
		{Time: today, Command: "icons", Files: 8, OK: true},
		{Time: old, Command: "icons", Files: 8, OK: true},
	}

	groups := SummarizeByDay(runs, 0)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups with days=0, got %d", len(groups))
	}
}

func TestSummarizeByDay_Empty(t *testing.T) {
	groups := SummarizeByDay(nil, 7)
	if len(groups) != 0 {
		t.Fatalf("expected 0 day groups for nil runs, got %d", len(groups))
	}
}

func TestExtractTimestamp(t *testing.T) {
	ts, ok := ExtractTimestamp("2026-02-22T10:00:00+01:00  command=icons  files=8")
	if !ok {
		t.Fatal("expected ok for valid timestamp")
	}
	want := time.Date(2026, 2, 22, 10, 0, 0, 0, time.FixedZone("", 3600))
	if !ts.Equal(want) {
		t.Errorf("timestamp = %v, want %v", ts, want)
	}

	if _, ok := ExtractTimestamp("garbage  command=icons"); ok {
		t.Error("expected !ok for malformed timestamp")
	}
	if _, ok := ExtractTimestamp("2026-02-22T10:00:00+01:00 single-space"); ok {
		t.Error("expected !ok without double-space separator")
	}
}

func TestExtractField(t *testing.T) {
	line := "2026-02-22T10:00:00+01:00  command=icons  files=8  ok=true  duration_ms=42  dir=\"public/icons\""

	tests := []struct {
		key, want string
	}{
		{"command", "icons"},
		{"files", "8"},
		{"ok", "true"},
		{"duration_ms", "42"},
		{"missing", ""},
	}

	for _, tt := range tests {
		got := extractField(line, tt.key)
		if got != tt.want {
			t.Errorf("extractField(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestExtractQuotedField(t *testing.T) {
	line := "2026-02-22T10:00:00+01:00  command=icons  files=8  ok=true  duration_ms=42  dir=\"My Projects/icons\""

	tests := []struct {
		key, want string
	}{
		{"dir", "My Projects/icons"},
		{"command", ""}, // unquoted value
		{"missing", ""},
	}

	for _, tt := range tests {
		got := extractQuotedField(line, tt.key)
		if got != tt.want {
			t.Errorf("extractQuotedField(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestExtractQuoted(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"out"`, "out"},
		{`"My Projects/icons"  trailing`, "My Projects/icons"},
		{`"with \"escaped\" quotes"`, `with "escaped" quotes`},
		{`"unterminated`, ""},
		{`unquoted`, ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := extractQuoted(tt.in)
		if got != tt.want {
			t.Errorf("extractQuoted(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFileLine(t *testing.T) {
	num, name := parseFileLine("2026-02-22T10:00:00+01:00    file[3] icon-128x128.png")
	if num != 3 {
		t.Errorf("num = %d, want 3", num)
	}
	if name != "icon-128x128.png" {
		t.Errorf("name = %q, want %q", name, "icon-128x128.png")
	}

	if _, name := parseFileLine("2026-02-22T10:00:00+01:00  command=icons"); name != "" {
		t.Errorf("expected empty name for summary line, got %q", name)
	}
	if _, name := parseFileLine("file[x] broken.png"); name != "" {
		t.Errorf("expected empty name for non-numeric index, got %q", name)
	}
	if _, name := parseFileLine("file[1 missing-bracket.png"); name != "" {
		t.Errorf("expected empty name for missing bracket, got %q", name)
	}
}
