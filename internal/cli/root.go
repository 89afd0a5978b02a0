// madlibs - Mad Libs from a generative model
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/madlibs

// Package cli provides Cobra-based CLI commands for madlibs.
// It defines the game commands (play, render), template tooling (validate,
// prompt), configuration management (config) and version.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/madlibs/internal/cli/config"
	"github.com/ariel-frischer/madlibs/internal/cli/game"
	"github.com/ariel-frischer/madlibs/internal/cli/shared"
	"github.com/ariel-frischer/madlibs/internal/cli/templates"
	clierrors "github.com/ariel-frischer/madlibs/internal/errors"
	"github.com/ariel-frischer/madlibs/internal/logging"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupPlay          = shared.GroupPlay
	GroupTemplates     = shared.GroupTemplates
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "madlibs",
		Short: "Mad Libs generated by Gemini",
		Long: `madlibs - Mad Libs generated by Gemini

Asks Gemini for a story template with named blanks, checks the template
against a strict contract, prompts you for each blank, and prints the
completed story. Saved templates can be validated and rendered offline.

Source: https://github.com/ariel-frischer/madlibs`,
		Example: `  # Play a round (same as 'madlibs play')
  madlibs

  # Themed round with eight blanks
  madlibs play --theme "office party" --blanks 8

  # Check a saved template and render it with prepared answers
  madlibs validate story.json
  madlibs render story.json --answers answers.json`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogger,
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = shared.Logger(cmd).Sync()
		},
	}

	cmd.AddGroup(&cobra.Group{ID: GroupPlay, Title: "Play:"})
	cmd.AddGroup(&cobra.Group{ID: GroupTemplates, Title: "Templates:"})
	cmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
	cmd.SetHelpCommandGroupID(GroupConfiguration)
	cmd.SetCompletionCommandGroupID(GroupConfiguration)

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine(),
			"Run '"+c.CommandPath()+" --help' for valid flags")
	})

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a config file (JSON)")
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging on stderr")

	// Register commands from subpackages
	game.Register(cmd)
	templates.Register(cmd)
	config.Register(cmd)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := logging.New(debug)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(shared.WithLogger(ctx, logger))
	return nil
}

// Execute runs the root command, prints any error and returns the exit code.
func Execute(ctx context.Context) int {
	return run(ctx, rootCmd)
}

func run(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	code, cliErr := shared.Classify(err)
	switch {
	case code == shared.ExitAborted:
		cmd.PrintErrln("\nGame cancelled by user.")
	case cliErr != nil:
		clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
	}
	return code
}
