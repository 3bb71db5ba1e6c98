/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for bytefreq. Profiles delimited or JSON-lines data
by masking every value into a character-class pattern and reporting pattern frequencies
with a sampled example of each.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kleascm/bytefreq/cmd/bytefreq/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bytefreq",
		Short: "bytefreq - mask based data profiler",
		Long: `bytefreq profiles a stream of delimited or JSON-lines records. Every value is
masked into a pattern of character classes and the report lists, per column, how often
each pattern occurs together with one example value drawn uniformly at random.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Configuration and logging
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "profiler", "Log format (text, json, custom, profiler)")
	rootCmd.PersistentFlags().String("log-dir", "", "Also write logs to a timestamped file in this directory")
	rootCmd.PersistentFlags().Int("log-max-files", 10, "Maximum number of log files to keep")

	// Input decoding and report output, shared by profile and chars
	rootCmd.PersistentFlags().String("encoding", "utf-8", "Input character encoding (utf-8, latin1, windows-1252, ...)")
	rootCmd.PersistentFlags().String("compression", "", "Input compression (gzip, bzip2, none); detected from the extension when empty")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Report output format (text, json, xlsx)")
	rootCmd.PersistentFlags().String("out-file", "", "Write the report to this file instead of stdout")
	rootCmd.PersistentFlags().String("save-dir", "", "Also archive the report under this directory with a timestamped name")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("encoding", rootCmd.PersistentFlags().Lookup("encoding"))
	viper.BindPFlag("compression", rootCmd.PersistentFlags().Lookup("compression"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("out_file", rootCmd.PersistentFlags().Lookup("out-file"))
	viper.BindPFlag("save_dir", rootCmd.PersistentFlags().Lookup("save-dir"))

	profileCmd := &cobra.Command{
		Use:   "profile [files...]",
		Short: "Profile delimited or JSON-lines data",
		Long: `Read each file (or stdin when no file is given) line by line and report the
pattern frequencies of every column. Tabular input takes its column names from the first
line; rows with more fields than the header spill into RaggedErr columns. JSON input is
flattened into dotted paths up to --pathdepth levels of object nesting.`,
		RunE: commands.RunProfile,
	}

	profileCmd.Flags().StringP("grain", "g", "LU", "Mask grain (H, L, U, LU)")
	profileCmd.Flags().StringP("delimiter", "d", "|", "Tabular field delimiter (literal, may be several characters)")
	profileCmd.Flags().StringP("format", "f", "tabular", "Input format (tabular, json)")
	profileCmd.Flags().StringP("report", "r", "DQ", "Report type (DQ data quality, CP character profile)")
	profileCmd.Flags().IntP("pathdepth", "p", 2, "JSON object nesting depth to flatten")
	profileCmd.Flags().BoolP("remove-array-numbers", "a", false, "Drop array indices from JSON paths")
	profileCmd.Flags().Int64("seed", 0, "Seed for example sampling (0 seeds from the clock)")
	profileCmd.Flags().Uint64("progress-every", 0, "Log progress every N records (0 disables)")
	profileCmd.Flags().Int("workers", 0, "Files profiled in parallel (0 = number of CPUs)")

	viper.BindPFlag("grain", profileCmd.Flags().Lookup("grain"))
	viper.BindPFlag("delimiter", profileCmd.Flags().Lookup("delimiter"))
	viper.BindPFlag("format", profileCmd.Flags().Lookup("format"))
	viper.BindPFlag("report", profileCmd.Flags().Lookup("report"))
	viper.BindPFlag("pathdepth", profileCmd.Flags().Lookup("pathdepth"))
	viper.BindPFlag("remove_array_numbers", profileCmd.Flags().Lookup("remove-array-numbers"))
	viper.BindPFlag("seed", profileCmd.Flags().Lookup("seed"))
	viper.BindPFlag("progress_every", profileCmd.Flags().Lookup("progress-every"))
	viper.BindPFlag("workers", profileCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(profileCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "chars [files...]",
		Short: "Profile the characters of the input",
		Long: `Count every character of the decoded input, line terminators included, and list
them by code point with their Unicode names. Control characters without a name are
described from a built-in table.`,
		RunE: commands.RunChars,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "grains",
		Short: "List the available mask grains",
		Long:  `List every mask grain with a description and a worked example.`,
		Run:   commands.ListGrains,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "logs [dir]",
		Short: "Summarize past run logs",
		Long: `Report the size and age of the run logs under the log directory (--log-dir, or
the given directory) and count the levels and profiler events recorded in them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: commands.RunLogs,
	})

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
