package templates

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/madlibs/internal/cli/shared"
	clierrors "github.com/ariel-frischer/madlibs/internal/errors"
	"github.com/ariel-frischer/madlibs/internal/prompt"
)

func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the request sent to Gemini",
		Long: `Print the generation request for the configured blank bounds, theme and
story length. Useful for saving a template from another tool and checking it
with 'madlibs validate'.`,
		Example: `  madlibs prompt --blanks 8 --theme "space pirates"`,
		Args:    shared.NoArgs,
		GroupID: shared.GroupTemplates,
		RunE:    runPrompt,
	}
	cmd.Flags().IntP("blanks", "b", 0, "Exact number of blanks to request (default: configured blanks)")
	cmd.Flags().StringP("theme", "t", "", "Story theme")
	return cmd
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("blanks") {
		n, _ := cmd.Flags().GetInt("blanks")
		if !cfg.Bounds().Contains(n) {
			return clierrors.InvalidBlankCount(n, cfg.Bounds().String())
		}
		cfg.Blanks = n
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme, _ = cmd.Flags().GetString("theme")
	}

	request, err := prompt.Build(cfg.PromptRequest())
	if err != nil {
		return clierrors.NewConfigError(err.Error(), "Run 'madlibs config show' to check the blank and word bounds")
	}
	fmt.Fprintln(cmd.OutOrStdout(), request)
	return nil
}
