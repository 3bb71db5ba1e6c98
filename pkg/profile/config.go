/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Configuration for a profiling run: grain, input format, tabular delimiter,
JSON flattening options and sampling seed, with defaults and validation.
*/

package profile

import (
	"fmt"
	"strings"

	"github.com/kleascm/bytefreq/pkg/mask"
	"github.com/kleascm/bytefreq/pkg/normalize"
)

// Format selects the normalizer
type Format string

const (
	FormatTabular Format = "tabular"
	FormatJSON    Format = "json"
)

// ParseFormat maps a configuration string to a Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTabular, FormatJSON:
		return f, nil
	case "":
		return FormatTabular, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Config holds the settings consumed by a Profiler
type Config struct {
	Grain              mask.Grain `json:"grain" mapstructure:"grain"`
	Delimiter          string     `json:"delimiter" mapstructure:"delimiter"`
	Format             Format     `json:"format" mapstructure:"format"`
	PathDepth          int        `json:"pathdepth" mapstructure:"pathdepth"`
	RemoveArrayNumbers bool       `json:"remove_array_numbers" mapstructure:"remove_array_numbers"`
	// Seed fixes the reservoir sampling source; 0 seeds from the clock
	Seed int64 `json:"seed" mapstructure:"seed"`
	// ProgressEvery logs progress every N records; 0 disables it
	ProgressEvery uint64 `json:"progress_every" mapstructure:"progress_every"`
}

// DefaultConfig returns the defaults of the command line surface
func DefaultConfig() Config {
	return Config{
		Grain:     mask.DefaultGrain,
		Delimiter: normalize.DefaultDelimiter,
		Format:    FormatTabular,
		PathDepth: normalize.DefaultPathDepth,
	}
}

// Validate checks the Config for invalid values
func (c *Config) Validate() error {
	if c.Format != FormatTabular && c.Format != FormatJSON {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if c.Format == FormatTabular && c.Delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	if c.PathDepth < 0 {
		return fmt.Errorf("pathdepth must not be negative")
	}
	return nil
}
