/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_writer.go
Description: Utility for archiving rendered reports. Files land in a per-kind
subdirectory with a timestamped name so repeated runs never overwrite each other.
*/

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Now is the clock used to stamp archived reports
var Now = time.Now

// ReportFileName returns the archive name for a report of kind: 2024-06-11_01-30-00_<kind>.<ext>
func ReportFileName(kind, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", at.Format("2006-01-02_15-04-05"), kind, strings.TrimPrefix(ext, "."))
}

// WriteReportFile writes data to <dir>/<kind>/<timestamp>_<kind>.<ext> and returns the path.
// A name collision within the same second gets a numeric suffix.
func WriteReportFile(dir, kind, ext string, data []byte) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("report directory must not be empty")
	}

	reportDir := filepath.Join(dir, kind)
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := ReportFileName(kind, ext, Now())
	filePath := filepath.Join(reportDir, name)
	for n := 2; ; n++ {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if os.IsExist(err) {
			base := strings.TrimSuffix(name, filepath.Ext(name))
			filePath = filepath.Join(reportDir, fmt.Sprintf("%s_%d%s", base, n, filepath.Ext(name)))
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create report file: %w", err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write report file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close report file: %w", err)
		}
		return filePath, nil
	}
}
