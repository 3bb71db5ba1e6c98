/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: profile.go
Description: The profile command. Profiles every input with its own Profiler, running
files in parallel, and renders the results in argument order.
*/

package commands

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/kleascm/bytefreq/pkg/logging"
	"github.com/kleascm/bytefreq/pkg/profile"
	"github.com/kleascm/bytefreq/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Report types
const (
	ReportDQ = "DQ"
	ReportCP = "CP"
)

// RunProfile runs the profile command
func RunProfile(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}

	switch strings.ToUpper(viper.GetString("report")) {
	case ReportDQ:
	case ReportCP:
		return RunChars(cmd, args)
	default:
		return fmt.Errorf("unsupported report type: %s", viper.GetString("report"))
	}

	logger, err := SetupLogging(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	cfg, known, err := BuildProfileConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !known {
		logger.Warning("Unknown grain, masking with U", map[string]interface{}{"grain": viper.GetString("grain")})
	}

	format, err := report.ParseFormat(viper.GetString("output"))
	if err != nil {
		return err
	}
	renderer, err := report.NewRenderer(format)
	if err != nil {
		return err
	}

	paths, err := inputPaths(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := profileAll(ctx, cmd, logger, cfg, paths)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, results); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return emitReport(cmd, logger, "dq", format.Extension(), buf.Bytes())
}

// profileAll profiles every path concurrently. Each input gets its own
// Profiler, so registries and aggregates never mix across files.
func profileAll(ctx context.Context, cmd *cobra.Command, logger *logging.Logger, cfg profile.Config, paths []string) ([]*profile.Result, error) {
	workers := viper.GetInt("workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*profile.Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := openInput(cmd, path)
			if err != nil {
				return err
			}
			defer src.Close()

			logger.Debug("Profiling input", map[string]interface{}{
				"source":      src.Name,
				"compression": src.Compression,
				"encoding":    src.Encoding,
			})

			p, err := profile.New(cfg,
				profile.WithLogger(logger.GetLogger()),
				profile.WithReporter(profile.NewLoggerReporter(logger)),
				profile.WithSource(src.Name),
			)
			if err != nil {
				return err
			}

			res, err := p.Run(ctx, src)
			if err != nil {
				return fmt.Errorf("failed to profile %s: %w", src.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
