/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Log formatters for bytefreq. CustomFormatter renders compact coloured
lines; ProfilerFormatter adds an event prefix and profiler-aware field rendering.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter renders one line per entry with sorted fields
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.render(entry, "", formatValue), nil
}

// render writes timestamp, level, optional tag, caller, message and fields
func (f *CustomFormatter) render(entry *logrus.Entry, tag string, value func(string, interface{}) string) []byte {
	var out strings.Builder

	if f.Timestamp {
		out.WriteString(f.paint(36, entry.Time.Format("2006-01-02 15:04:05.000")))
		out.WriteByte(' ')
	}
	out.WriteString(f.paint(levelColor(entry.Level), strings.ToUpper(entry.Level.String())))
	out.WriteByte(' ')
	if tag != "" {
		out.WriteString(f.paint(35, "["+tag+"]"))
		out.WriteByte(' ')
	}
	if f.Caller && entry.HasCaller() {
		out.WriteString(f.paint(33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)))
		out.WriteByte(' ')
	}
	out.WriteString(entry.Message)

	for _, key := range sortedKeys(entry.Data) {
		out.WriteByte(' ')
		out.WriteString(f.paint(34, key))
		out.WriteByte('=')
		out.WriteString(f.paint(32, value(key, entry.Data[key])))
	}

	out.WriteByte('\n')
	return []byte(out.String())
}

func (f *CustomFormatter) paint(color int, s string) string {
	if !f.Colors {
		return s
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", color, s)
}

func levelColor(level logrus.Level) int {
	switch level {
	case logrus.InfoLevel:
		return 32
	case logrus.WarnLevel:
		return 33
	case logrus.ErrorLevel:
		return 31
	case logrus.FatalLevel, logrus.PanicLevel:
		return 35
	default:
		return 37
	}
}

func formatValue(_ string, value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case string:
		if len(v) > 50 {
			return v[:50] + "..."
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ProfilerFormatter tags profiler events with a short prefix
type ProfilerFormatter struct {
	CustomFormatter
}

// Format formats a log entry with its event prefix
func (f *ProfilerFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.render(entry, eventPrefix(entry.Message), formatProfilerValue), nil
}

// eventPrefix maps a profiler log message to its display prefix
func eventPrefix(message string) string {
	switch message {
	case "Progress update":
		return "PROGRESS"
	case "Ragged column registered":
		return "RAGGED"
	case "Line skipped":
		return "SKIP"
	case "Run summary":
		return "SUMMARY"
	default:
		return ""
	}
}

func sortedKeys(fields logrus.Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatProfilerValue renders rates and durations compactly
func formatProfilerValue(key string, value interface{}) string {
	switch key {
	case "duration", "elapsed":
		if d, ok := value.(time.Duration); ok {
			return d.Round(time.Millisecond).String()
		}
	case "records_per_sec":
		if v, ok := value.(float64); ok {
			return fmt.Sprintf("%.0f/sec", v)
		}
	case "run_id":
		if s, ok := value.(string); ok && len(s) > 8 {
			return s[:8]
		}
	}
	return formatValue(key, value)
}
