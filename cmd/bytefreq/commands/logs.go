/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logs.go
Description: The logs command. Summarizes the run logs kept under the log directory.
*/

package commands

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/kleascm/bytefreq/pkg/logging"
	"github.com/kleascm/bytefreq/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LogsSummary is the JSON form of the logs command output
type LogsSummary struct {
	Directory string               `json:"directory"`
	Files     *logging.LogStats    `json:"files"`
	Events    *logging.LogAnalysis `json:"events"`
}

// RunLogs runs the logs command
func RunLogs(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}

	dir := viper.GetString("log_dir")
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no log directory given; pass one or set --log-dir")
	}

	format, err := report.ParseFormat(viper.GetString("output"))
	if err != nil {
		return err
	}
	if format == report.FormatXLSX {
		return fmt.Errorf("log summaries support text and json output only")
	}

	stats, err := logging.NewLogManager(dir, viper.GetInt("log_max_files")).GetLogStats()
	if err != nil {
		return err
	}
	analysis, err := logging.NewLogAnalyzer(dir).AnalyzeLogs()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == report.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(LogsSummary{Directory: dir, Files: stats, Events: analysis})
	}

	fmt.Fprintf(out, "Log directory: %s\n", dir)
	fmt.Fprintf(out, "  Size: %d bytes\n", stats.TotalSize)
	if stats.TotalFiles > 0 {
		fmt.Fprintf(out, "  Oldest: %s\n", stats.OldestFile.Format(report.TimestampLayout))
		fmt.Fprintf(out, "  Newest: %s\n", stats.NewestFile.Format(report.TimestampLayout))
	}
	fmt.Fprintln(out, analysis.GetLogSummary())
	return nil
}
