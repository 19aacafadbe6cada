package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/config"
	"github.com/rshade/pokedex/internal/logging"
)

// setupLogging configures logging from the loaded config and the --debug flag
// and stores the logger and a trace id in the command context.
//
// With --debug, non-interactive commands log to stderr. The viewer owns the
// terminal, so when viewer is set --debug only raises the level and logs keep
// going to the configured file.
func setupLogging(cmd *cobra.Command, cfg *config.Config, debug, viewer bool) logging.LogPathResult {
	loggingCfg := cfg.Logging
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Caller = true
		if !viewer {
			loggingCfg.Format = "console"
			loggingCfg.File = ""
		}
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := cfg.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	} else if result.UsingFile && logging.ParseLevel(loggingCfg.Level) <= zerolog.DebugLevel {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	logger.Debug().Ctx(cmd.Context()).Str("command", cmd.Name()).Msg("command finished")
	return logResult.Close()
}
