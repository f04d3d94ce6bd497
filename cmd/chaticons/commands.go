package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/miuchi/chaticons/internal/assets"
	"github.com/miuchi/chaticons/internal/config"
	"github.com/miuchi/chaticons/internal/icon"
	"github.com/miuchi/chaticons/internal/runlog"
)

func iconsCmd(configPath string, opts runOpts) {
	cfg := loadConfig(configPath)
	dir := resolveOut(opts.Out, cfg)

	start := time.Now()
	written, err := assets.GenerateIcons(dir, os.Stdout)
	recordRun(cfg, opts, "icons", dir, written, err == nil, time.Since(start))
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Generated %d PWA icons successfully!\n", len(written))
}

func allCmd(configPath string, opts runOpts) {
	cfg := loadConfig(configPath)
	dir := resolveOut(opts.Out, cfg)

	start := time.Now()
	written, err := assets.GenerateAll(dir, os.Stdout)
	recordRun(cfg, opts, "all", dir, written, err == nil, time.Since(start))
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Generated %d PWA assets successfully!\n", len(written))
}

func manifestCmd(configPath string, opts runOpts) {
	cfg := loadConfig(configPath)
	dir := resolveOut(opts.Out, cfg)

	start := time.Now()
	p, err := assets.WriteManifest(dir, os.Stdout)
	var written []string
	if err == nil {
		written = []string{p}
	}
	recordRun(cfg, opts, "manifest", dir, written, err == nil, time.Since(start))
	if err != nil {
		fatal("%v", err)
	}
}

func faviconCmd(configPath string, opts runOpts) {
	cfg := loadConfig(configPath)
	dir := resolveOut(opts.Out, cfg)

	start := time.Now()
	written, err := assets.GenerateFavicon(dir, os.Stdout)
	recordRun(cfg, opts, "favicon", dir, written, err == nil, time.Since(start))
	if err != nil {
		fatal("%v", err)
	}
}

func listSizes() {
	fmt.Println("Icon sizes:")
	for _, size := range assets.Sizes {
		fmt.Printf("  %-18s %s\n", assets.IconFileName(size), strings.Join(icon.Features(size), ", "))
	}
}

// recordRun appends a run to the history log when logging is enabled.
// Logging is best-effort: failures warn on stderr and never abort the run.
func recordRun(cfg config.Config, opts runOpts, command, dir string, written []string, ok bool, elapsed time.Duration) {
	if !shouldLog(cfg, opts.Log) {
		return
	}

	store, err := runlog.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run log unavailable: %v\n", err)
		return
	}
	defer closeStore(store)

	files := make([]string, len(written))
	for i, p := range written {
		files[i] = filepath.Base(p)
	}
	if err := store.Record(command, dir, files, ok, elapsed); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: record run: %v\n", err)
	}
}
