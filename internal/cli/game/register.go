// Package game provides the commands that turn a template into a story:
// play (generate and fill in interactively) and render (fill in from a file).
package game

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/madlibs/internal/cli/shared"
)

// Register adds the game commands to the root command and makes play the
// root command's default action.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newRenderCmd())

	addPlayFlags(rootCmd)
	rootCmd.Args = shared.NoArgs
	rootCmd.RunE = runPlay
}
