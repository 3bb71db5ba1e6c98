/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system: config validation, console and file output,
profiler event helpers, formatters and log directory management.
*/

package logging_test

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kleascm/bytefreq/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T, format logging.LogFormat, dir string) (*logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    format,
		OutputDir: dir,
		MaxFiles:  3,
		Console:   &buf,
	})
	require.NoError(t, err)
	return logger, &buf
}

func TestLoggerDefaultConfig(t *testing.T) {
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	defer logger.Close()

	assert.Empty(t, logger.FilePath())
	assert.Equal(t, logrus.InfoLevel, logger.GetLogger().GetLevel())
}

func TestLoggerConfigValidate(t *testing.T) {
	valid := logging.DefaultConfig()
	assert.NoError(t, valid.Validate())

	badFormat := logging.DefaultConfig()
	badFormat.Format = "xml"
	assert.Error(t, badFormat.Validate())

	badLevel := logging.DefaultConfig()
	badLevel.Level = "loud"
	assert.Error(t, badLevel.Validate())

	badFiles := logging.DefaultConfig()
	badFiles.OutputDir = t.TempDir()
	badFiles.MaxFiles = 0
	assert.Error(t, badFiles.Validate())
}

func TestLoggerWritesProfilerEvents(t *testing.T) {
	logger, buf := newBufferedLogger(t, logging.LogFormatProfiler, "")

	logger.LogProgress("data.psv", 1000, 4, nil)
	logger.LogRaggedColumn("data.psv", "RaggedErr1", 5, nil)
	logger.LogSkippedLine("events.json", 7, "invalid json", nil)
	logger.LogRunSummary("data.psv", 1000, 4, 12, 2*time.Second, map[string]interface{}{"run_id": "0123456789abcdef"})
	require.NoError(t, logger.Close())

	out := buf.String()
	assert.Contains(t, out, "[PROGRESS] Progress update")
	assert.Contains(t, out, "[RAGGED] Ragged column registered")
	assert.Contains(t, out, "[SKIP] Line skipped")
	assert.Contains(t, out, "[SUMMARY] Run summary")
	assert.Contains(t, out, "records_per_sec=500/sec")
	assert.Contains(t, out, "run_id=01234567 ")
}

func TestLoggerAsyncQueueDrainsOnClose(t *testing.T) {
	logger, buf := newBufferedLogger(t, logging.LogFormatText, "")

	for i := 0; i < 50; i++ {
		logger.Info(fmt.Sprintf("message %d", i), nil)
	}
	require.NoError(t, logger.Close())

	assert.Contains(t, buf.String(), "message 0")
	assert.Contains(t, buf.String(), "message 49")
}

func TestLoggerCloseIsIdempotent(t *testing.T) {
	logger, _ := newBufferedLogger(t, logging.LogFormatCustom, "")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
}

func TestLoggerFileOutput(t *testing.T) {
	dir := t.TempDir()
	logger, _ := newBufferedLogger(t, logging.LogFormatJSON, dir)

	path := logger.FilePath()
	require.NotEmpty(t, path)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), logging.LogFilePrefix)

	logger.LogProgress("stdin", 10, 2, nil)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Progress update"`)
}

func TestCustomFormatterSortsFields(t *testing.T) {
	f := &logging.CustomFormatter{}
	entry := &logrus.Entry{
		Message: "hello",
		Level:   logrus.InfoLevel,
		Data:    logrus.Fields{"zeta": 1, "alpha": "x"},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "INFO hello alpha=x zeta=1\n", string(out))
}

func TestLogManagerCleanupKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%s%d.log", logging.LogFilePrefix, i))
		require.NoError(t, os.WriteFile(path, []byte("INFO Run summary\n"), 0644))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.log"), nil, 0644))

	manager := logging.NewLogManager(dir, 2)
	require.NoError(t, manager.CleanupOldLogs())

	stats, err := manager.GetLogStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalFiles)
	assert.FileExists(t, filepath.Join(dir, logging.LogFilePrefix+"4.log"))
	assert.FileExists(t, filepath.Join(dir, logging.LogFilePrefix+"3.log"))
	assert.FileExists(t, filepath.Join(dir, "unrelated.log"))
}

func TestLogAnalyzerCountsEvents(t *testing.T) {
	dir := t.TempDir()
	content := "INFO [SUMMARY] Run summary\nWARN [RAGGED] Ragged column registered\nDEBUG [SKIP] Line skipped\nDEBUG [SKIP] Line skipped\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, logging.LogFilePrefix+"a.log"), []byte(content), 0644))

	analysis, err := logging.NewLogAnalyzer(dir).AnalyzeLogs()
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.LogFiles)
	assert.Equal(t, int64(4), analysis.TotalLines)
	assert.Equal(t, int64(1), analysis.RunCount)
	assert.Equal(t, int64(1), analysis.RaggedCount)
	assert.Equal(t, int64(2), analysis.SkippedCount)
	assert.Equal(t, int64(2), analysis.DebugCount)
	assert.Contains(t, analysis.GetLogSummary(), "Runs: 1")
}

func TestLogAnalyzerReadsEveryFormat(t *testing.T) {
	dir := t.TempDir()
	formats := []logging.LogFormat{logging.LogFormatJSON, logging.LogFormatText, logging.LogFormatCustom, logging.LogFormatProfiler}
	for _, format := range formats {
		logger, err := logging.NewLogger(&logging.LoggerConfig{
			Level:     logging.LogLevelInfo,
			Format:    format,
			OutputDir: dir,
			MaxFiles:  10,
			Timestamp: true,
			Console:   io.Discard,
		})
		require.NoError(t, err)
		logger.LogProgress("in.psv", 10, 1, nil)
		logger.LogRaggedColumn("in.psv", "RaggedErr1", 3, nil)
		logger.LogRunSummary("in.psv", 10, 1, 1, time.Second, nil)
		logger.Error("failed to open input", nil)
		require.NoError(t, logger.Close())
	}

	analysis, err := logging.NewLogAnalyzer(dir).AnalyzeLogs()
	require.NoError(t, err)

	n := int64(len(formats))
	assert.Equal(t, n, analysis.ProgressCount)
	assert.Equal(t, n, analysis.RaggedCount)
	assert.Equal(t, n, analysis.RunCount)
	assert.Equal(t, 2*n, analysis.InfoCount)
	assert.Equal(t, n, analysis.WarningCount)
	assert.Equal(t, n, analysis.ErrorCount)
}

func TestLoggerLogsSynchronouslyAfterClose(t *testing.T) {
	logger, buf := newBufferedLogger(t, logging.LogFormatCustom, "")
	require.NoError(t, logger.Close())

	for i := 0; i < 20; i++ {
		logger.Info(fmt.Sprintf("late %d", i), nil)
	}
	for i := 0; i < 20; i++ {
		assert.Contains(t, buf.String(), fmt.Sprintf("late %d\n", i))
	}
}

func TestProfilerFormatterColorsTag(t *testing.T) {
	f := &logging.ProfilerFormatter{CustomFormatter: logging.CustomFormatter{Colors: true}}
	entry := &logrus.Entry{
		Message: "Run summary",
		Level:   logrus.InfoLevel,
		Data:    logrus.Fields{"records_per_sec": 12.4},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "\033[32mINFO\033[0m \033[35m[SUMMARY]\033[0m Run summary \033[34mrecords_per_sec\033[0m=\033[32m12/sec\033[0m\n", string(out))
}
