/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the bytefreq commands. Configuration loading,
logging setup, input opening and report output used by every command.
*/

package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kleascm/bytefreq/pkg/input"
	"github.com/kleascm/bytefreq/pkg/logging"
	"github.com/kleascm/bytefreq/pkg/mask"
	"github.com/kleascm/bytefreq/pkg/profile"
	"github.com/kleascm/bytefreq/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SetDefaults registers the defaults of every configuration key
func SetDefaults() {
	viper.SetDefault("grain", string(mask.DefaultGrain))
	viper.SetDefault("delimiter", "|")
	viper.SetDefault("format", string(profile.FormatTabular))
	viper.SetDefault("report", ReportDQ)
	viper.SetDefault("pathdepth", 2)
	viper.SetDefault("remove_array_numbers", false)
	viper.SetDefault("output", "text")
	viper.SetDefault("encoding", "utf-8")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", string(logging.LogFormatProfiler))
	viper.SetDefault("log_max_files", 10)
}

// LoadConfig loads configuration from .env, an optional config file and the environment
func LoadConfig() error {
	// .env is optional
	_ = godotenv.Load()

	SetDefaults()

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("BYTEFREQ")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging builds the logger from the log_* keys. Logs go to stderr.
func SetupLogging(stderr io.Writer) (*logging.Logger, error) {
	config := &logging.LoggerConfig{
		Level:     logging.LogLevel(strings.ToLower(viper.GetString("log_level"))),
		Format:    logging.LogFormat(strings.ToLower(viper.GetString("log_format"))),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		Timestamp: true,
		Console:   stderr,
	}

	logger, err := logging.NewLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// BuildProfileConfig assembles and validates the profiler settings.
// known is false when the grain was not recognised; such grains mask as U.
func BuildProfileConfig() (cfg profile.Config, known bool, err error) {
	cfg = profile.DefaultConfig()

	cfg.Grain, known = mask.ParseGrain(viper.GetString("grain"))
	if cfg.Format, err = profile.ParseFormat(viper.GetString("format")); err != nil {
		return cfg, known, err
	}
	cfg.Delimiter = viper.GetString("delimiter")
	cfg.PathDepth = viper.GetInt("pathdepth")
	cfg.RemoveArrayNumbers = viper.GetBool("remove_array_numbers")
	cfg.Seed = viper.GetInt64("seed")
	cfg.ProgressEvery = viper.GetUint64("progress_every")

	if err := cfg.Validate(); err != nil {
		return cfg, known, err
	}
	return cfg, known, nil
}

// inputPaths returns the inputs to read; stdin when none are given
func inputPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{input.Stdin}, nil
	}
	stdin := 0
	for _, a := range args {
		if a == input.Stdin {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, fmt.Errorf("stdin can only be read once")
	}
	return args, nil
}

// openInput opens path with the configured compression and encoding
func openInput(cmd *cobra.Command, path string) (*input.Source, error) {
	return input.Open(input.Options{
		Path:        path,
		Compression: viper.GetString("compression"),
		Encoding:    viper.GetString("encoding"),
		Stdin:       cmd.InOrStdin(),
	})
}

// emitReport writes a rendered report to --out-file or stdout and archives it under --save-dir
func emitReport(cmd *cobra.Command, logger *logging.Logger, kind, ext string, data []byte) error {
	if outFile := viper.GetString("out_file"); outFile != "" {
		if err := os.WriteFile(outFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Report written", map[string]interface{}{"path": outFile, "bytes": len(data)})
	} else if _, err := io.Copy(cmd.OutOrStdout(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if dir := viper.GetString("save_dir"); dir != "" {
		path, err := utils.WriteReportFile(dir, kind, ext, data)
		if err != nil {
			return err
		}
		logger.Info("Report archived", map[string]interface{}{"path": path})
	}
	return nil
}
