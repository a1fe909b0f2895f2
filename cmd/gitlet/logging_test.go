package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "x", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().String(logLevelFlag, "", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLogLevel_Precedence(t *testing.T) {
	t.Setenv(logLevelEnv, "")
	assert.Equal(t, "warn", logLevel(newFlagCmd(t), "warn"))

	t.Setenv(logLevelEnv, "info")
	assert.Equal(t, "info", logLevel(newFlagCmd(t), "warn"))

	assert.Equal(t, "debug", logLevel(newFlagCmd(t, "--log-level", "debug"), "warn"))
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "error")
	logger.Warn("hidden")
	logger.Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_UnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "loud")
	assert.Contains(t, buf.String(), "unknown log level")

	buf.Reset()
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
