/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: chars.go
Description: The chars command. Builds one character profile across all inputs.
*/

package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/kleascm/bytefreq/pkg/charprofile"
	"github.com/kleascm/bytefreq/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunChars runs the chars command
func RunChars(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return err
	}

	logger, err := SetupLogging(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	format, err := report.ParseFormat(viper.GetString("output"))
	if err != nil {
		return err
	}
	if format == report.FormatXLSX {
		return fmt.Errorf("character profiles support text and json output only")
	}

	paths, err := inputPaths(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cp := charprofile.New()
	for _, path := range paths {
		src, err := openInput(cmd, path)
		if err != nil {
			return err
		}
		err = cp.ReadFrom(ctx, src)
		src.Close()
		if err != nil {
			return fmt.Errorf("failed to profile %s: %w", src.Name, err)
		}
	}

	var buf bytes.Buffer
	switch format {
	case report.FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(cp.Rows()); err != nil {
			return fmt.Errorf("failed to encode character profile: %w", err)
		}
	default:
		if err := cp.Render(&buf); err != nil {
			return err
		}
	}

	logger.Info("Character profile complete", map[string]interface{}{
		"characters": cp.Total(),
		"distinct":   len(cp.Rows()),
	})
	return emitReport(cmd, logger, "cp", format.Extension(), buf.Bytes())
}
