/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Log file management for bytefreq. Prunes old run logs, reports on the
log directory and summarizes profiler events recorded in past runs.
*/

package logging

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

var textFieldPattern = regexp.MustCompile(`(\w+)=("(?:[^"\\]|\\.)*"|\S+)`)

// LogManager prunes and inspects the log directory
type LogManager struct {
	logDir   string
	maxFiles int
}

// NewLogManager creates a new log manager
func NewLogManager(logDir string, maxFiles int) *LogManager {
	return &LogManager{
		logDir:   logDir,
		maxFiles: maxFiles,
	}
}

func (lm *LogManager) logFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(lm.logDir, LogFilePrefix+"*.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob log files: %w", err)
	}
	return files, nil
}

// CleanupOldLogs keeps the newest maxFiles logs and removes the rest
func (lm *LogManager) CleanupOldLogs() error {
	files, err := lm.logFiles()
	if err != nil {
		return err
	}

	if lm.maxFiles <= 0 || len(files) <= lm.maxFiles {
		return nil
	}

	// Sort files by modification time (oldest first), name as tie-break
	modTimes := make(map[string]time.Time, len(files))
	for _, f := range files {
		if stat, err := os.Stat(f); err == nil {
			modTimes[f] = stat.ModTime()
		}
	}
	sort.Slice(files, func(i, j int) bool {
		ti, tj := modTimes[files[i]], modTimes[files[j]]
		if ti.Equal(tj) {
			return files[i] < files[j]
		}
		return ti.Before(tj)
	})

	filesToRemove := len(files) - lm.maxFiles
	for i := 0; i < filesToRemove; i++ {
		if err := os.Remove(files[i]); err != nil {
			return fmt.Errorf("failed to remove file %s: %w", files[i], err)
		}
	}

	return nil
}

// GetLogStats returns statistics about log files
func (lm *LogManager) GetLogStats() (*LogStats, error) {
	files, err := lm.logFiles()
	if err != nil {
		return nil, err
	}

	stats := &LogStats{
		TotalFiles: len(files),
	}

	for _, file := range files {
		stat, err := os.Stat(file)
		if err != nil {
			continue
		}

		stats.TotalSize += stat.Size()

		if stats.OldestFile.IsZero() || stat.ModTime().Before(stats.OldestFile) {
			stats.OldestFile = stat.ModTime()
		}
		if stat.ModTime().After(stats.NewestFile) {
			stats.NewestFile = stat.ModTime()
		}
	}

	return stats, nil
}

// LogStats holds statistics about log files
type LogStats struct {
	TotalFiles int       `json:"total_files"`
	TotalSize  int64     `json:"total_size"`
	OldestFile time.Time `json:"oldest_file"`
	NewestFile time.Time `json:"newest_file"`
}

// LogAnalyzer counts profiler events across past run logs
type LogAnalyzer struct {
	logDir string
}

// NewLogAnalyzer creates a new log analyzer
func NewLogAnalyzer(logDir string) *LogAnalyzer {
	return &LogAnalyzer{
		logDir: logDir,
	}
}

// AnalyzeLogs analyzes log files for levels and profiler events
func (la *LogAnalyzer) AnalyzeLogs() (*LogAnalysis, error) {
	files, err := NewLogManager(la.logDir, 0).logFiles()
	if err != nil {
		return nil, err
	}

	analysis := &LogAnalysis{
		StartTime: time.Now(),
		LogFiles:  len(files),
	}

	for _, file := range files {
		if err := la.analyzeFile(file, analysis); err != nil {
			return nil, fmt.Errorf("failed to analyze file %s: %w", file, err)
		}
	}

	return analysis, nil
}

// analyzeFile analyzes a single log file
func (la *LogAnalyzer) analyzeFile(path string, analysis *LogAnalysis) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		la.analyzeLine(scanner.Text(), analysis)
	}

	return scanner.Err()
}

// analyzeLine counts the level and profiler event of a single log line
func (la *LogAnalyzer) analyzeLine(line string, analysis *LogAnalysis) {
	analysis.TotalLines++

	level, msg := parseLine(line)
	switch level {
	case "debug", "trace":
		analysis.DebugCount++
	case "info":
		analysis.InfoCount++
	case "warn", "warning":
		analysis.WarningCount++
	case "error", "fatal", "panic":
		analysis.ErrorCount++
	}

	switch eventPrefix(msg) {
	case "SUMMARY":
		analysis.RunCount++
	case "RAGGED":
		analysis.RaggedCount++
	case "SKIP":
		analysis.SkippedCount++
	case "PROGRESS":
		analysis.ProgressCount++
	}
}

// parseLine extracts the level and message from a line in any LogFormat
func parseLine(line string) (level, msg string) {
	if strings.HasPrefix(line, "{") {
		var entry struct {
			Level string `json:"level"`
			Msg   string `json:"msg"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err == nil {
			return strings.ToLower(entry.Level), entry.Msg
		}
	}

	// logrus text format
	if strings.Contains(line, "level=") {
		fields := textFieldPattern.FindAllStringSubmatch(line, -1)
		for _, f := range fields {
			switch f[1] {
			case "level":
				level = strings.Trim(f[2], `"`)
			case "msg":
				if unquoted, err := strconv.Unquote(f[2]); err == nil {
					msg = unquoted
				} else {
					msg = f[2]
				}
			}
		}
		if level != "" {
			return level, msg
		}
	}

	// custom and profiler formats: [timestamp] LEVEL [TAG] message fields
	at := -1
	for _, lvl := range []string{"DEBUG", "TRACE", "INFO", "WARNING", "WARN", "ERROR", "FATAL", "PANIC"} {
		if i := strings.Index(line, lvl+" "); i >= 0 && (at < 0 || i < at) {
			at, level = i, strings.ToLower(lvl)
			msg = line[i+len(lvl)+1:]
		}
	}
	for strings.HasPrefix(msg, "[") {
		end := strings.Index(msg, "] ")
		if end < 0 {
			break
		}
		msg = msg[end+2:]
	}
	for _, known := range []string{"Progress update", "Ragged column registered", "Line skipped", "Run summary"} {
		if strings.HasPrefix(msg, known) {
			return level, known
		}
	}
	return level, msg
}

// LogAnalysis holds the results of log analysis
type LogAnalysis struct {
	StartTime     time.Time `json:"start_time"`
	LogFiles      int       `json:"log_files"`
	TotalLines    int64     `json:"total_lines"`
	DebugCount    int64     `json:"debug_count"`
	InfoCount     int64     `json:"info_count"`
	WarningCount  int64     `json:"warning_count"`
	ErrorCount    int64     `json:"error_count"`
	RunCount      int64     `json:"run_count"`
	RaggedCount   int64     `json:"ragged_count"`
	SkippedCount  int64     `json:"skipped_count"`
	ProgressCount int64     `json:"progress_count"`
}

// GetLogSummary returns a summary of the log analysis
func (la *LogAnalysis) GetLogSummary() string {
	return fmt.Sprintf(
		"Log Analysis Summary:\n"+
			"  Files: %d\n"+
			"  Total Lines: %d\n"+
			"  Debug: %d\n"+
			"  Info: %d\n"+
			"  Warning: %d\n"+
			"  Error: %d\n"+
			"  Runs: %d\n"+
			"  Ragged Columns: %d\n"+
			"  Skipped Lines: %d\n"+
			"  Progress Updates: %d",
		la.LogFiles, la.TotalLines, la.DebugCount, la.InfoCount,
		la.WarningCount, la.ErrorCount, la.RunCount, la.RaggedCount,
		la.SkippedCount, la.ProgressCount,
	)
}
