package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelFlag = "log-level"
	logLevelEnv  = "GITLET_LOG_LEVEL"
)

// logLevel picks the first level that is set: the --log-level flag, the
// GITLET_LOG_LEVEL environment variable, then configured.
func logLevel(cmd *cobra.Command, configured string) string {
	if f := cmd.Flag(logLevelFlag); f != nil && f.Changed {
		return f.Value.String()
	}
	if v := strings.TrimSpace(os.Getenv(logLevelEnv)); v != "" {
		return v
	}
	return configured
}

// newLogger builds a console logger writing to w. Unknown level names fall
// back to warn, and the fallback itself is logged.
func newLogger(w io.Writer, level string) *zap.Logger {
	lvl := zapcore.WarnLevel
	parseErr := lvl.UnmarshalText([]byte(strings.ToLower(level)))
	if parseErr != nil {
		lvl = zapcore.WarnLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	logger := zap.New(core)

	if parseErr != nil && level != "" {
		logger.Warn("unknown log level, using warn", zap.String("level", level))
	}
	return logger
}
