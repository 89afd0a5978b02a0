// Package templates provides commands for working with template payloads
// without playing: validate saved payloads and print the generation request.
package templates

import (
	"github.com/spf13/cobra"
)

// Register adds the template commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newPromptCmd())
}
