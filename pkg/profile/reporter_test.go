/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter_test.go
Description: Tests for the logger-backed run reporter.
*/

package profile_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kleascm/bytefreq/pkg/logging"
	"github.com/kleascm/bytefreq/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerReporterLogsRunEvents(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:   logging.LogLevelDebug,
		Format:  logging.LogFormatProfiler,
		Console: &buf,
	})
	require.NoError(t, err)

	cfg := profile.DefaultConfig()
	cfg.ProgressEvery = 1
	p, err := profile.New(cfg,
		profile.WithReporter(profile.NewLoggerReporter(logger)),
		profile.WithSource("orders.psv"),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), strings.NewReader("id|sku\n1|A|x\n"))
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	out := buf.String()
	assert.Contains(t, out, "[PROGRESS]")
	assert.Contains(t, out, "[RAGGED]")
	assert.Contains(t, out, "column=RaggedErr1")
	assert.Contains(t, out, "[SUMMARY]")
	assert.Contains(t, out, "source=orders.psv")
	assert.Contains(t, out, "ragged_rows=1")
}
