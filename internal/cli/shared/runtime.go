package shared

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ariel-frischer/madlibs/internal/config"
	clierrors "github.com/ariel-frischer/madlibs/internal/errors"
)

type loggerKey struct{}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger stored on the command's context, or a no-op logger.
func Logger(cmd *cobra.Command) *zap.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

// LoadConfig loads configuration using the global --config flag.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, clierrors.ConfigParseError(path, err)
	}
	return cfg, nil
}

// ExactArgs is cobra.ExactArgs with an Argument error that prints usage.
func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("%s accepts %d argument(s), received %d", cmd.Name(), n, len(args)),
				cmd.UseLine(),
				fmt.Sprintf("Run 'madlibs %s --help' for details", cmd.Name()),
			)
		}
		return nil
	}
}

// MinimumNArgs is cobra.MinimumNArgs with an Argument error that prints usage.
func MinimumNArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("%s requires at least %d argument(s), received %d", cmd.Name(), n, len(args)),
				cmd.UseLine(),
				fmt.Sprintf("Run 'madlibs %s --help' for details", cmd.Name()),
			)
		}
		return nil
	}
}

// NoArgs is cobra.NoArgs with an Argument error that prints usage.
func NoArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unknown command or argument %q for %s", args[0], cmd.CommandPath()),
			cmd.UseLine(),
			"Run 'madlibs --help' to list commands",
		)
	}
	return nil
}
