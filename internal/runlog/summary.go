package runlog

import (
	"sort"
	"strings"
	"time"
)

// SplitBlocks splits log content on blank lines, trims whitespace from
// each block, and returns only non-empty blocks.
func SplitBlocks(content string) []string {
	raw := strings.Split(content, "\n\n")
	blocks := make([]string, 0, len(raw))
	for _, b := range raw {
		b = strings.TrimSpace(b)
		if b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// DayCutoff returns midnight N days ago (inclusive) in the local timezone.
// For days=1 it returns today at midnight, for days=7 it returns 6 days ago, etc.
func DayCutoff(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

// Counts holds run totals for one command.
type Counts struct{ Runs, Files, Failed int }

// AggregatedData holds the result of aggregating day groups into
// per-command totals.
type AggregatedData struct {
	PerCommand   map[string]*Counts
	CommandOrder []string
	HasFailed    bool
}

// AggregateGroups collects per-command totals from day groups.
func AggregateGroups(groups []DayGroup) AggregatedData {
	ad := AggregatedData{PerCommand: map[string]*Counts{}}
	seen := map[string]bool{}

	for _, dg := range groups {
		for _, s := range dg.Summaries {
			c, ok := ad.PerCommand[s.Command]
			if !ok {
				c = &Counts{}
				ad.PerCommand[s.Command] = c
			}
			c.Runs += s.Runs
			c.Files += s.Files
			c.Failed += s.Failed
			if c.Failed > 0 {
				ad.HasFailed = true
			}

			if !seen[s.Command] {
				seen[s.Command] = true
				ad.CommandOrder = append(ad.CommandOrder, s.Command)
			}
		}
	}
	sort.Strings(ad.CommandOrder)

	return ad
}

// FilterBlocksByCommand removes all log blocks belonging to the named
// command. Returns the filtered content and the number of removed blocks.
func FilterBlocksByCommand(content string, command string) (string, int) {
	blocks := SplitBlocks(content)
	var kept []string
	removed := 0
	for _, block := range blocks {
		firstLine := block
		if idx := strings.Index(block, "\n"); idx > 0 {
			firstLine = block[:idx]
		}
		if extractField(firstLine, "command") == command {
			removed++
		} else {
			kept = append(kept, block)
		}
	}
	return strings.Join(kept, "\n\n"), removed
}

// FilterBlocksByDays returns only log blocks whose timestamp falls within
// the last N calendar days. Each block is separated by a blank line.
func FilterBlocksByDays(content string, days int) string {
	cutoff := DayCutoff(days)

	var kept []string
	for _, block := range SplitBlocks(content) {
		firstLine := block
		if idx := strings.Index(block, "\n"); idx > 0 {
			firstLine = block[:idx]
		}
		ts, ok := ExtractTimestamp(firstLine)
		if !ok {
			continue
		}
		if !ts.Before(cutoff) {
			kept = append(kept, block)
		}
	}
	return strings.Join(kept, "\n\n")
}
