package game

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/madlibs/internal/cli/shared"
	clierrors "github.com/ariel-frischer/madlibs/internal/errors"
	"github.com/ariel-frischer/madlibs/internal/pipeline"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render FILE --answers PATH",
		Short: "Fill in a saved template from an answers file",
		Long: `Validate a saved template payload and render it with answers read from a
flat JSON or YAML file. Every blank needs exactly one answer, and every
answer must be used by the story.`,
		Example: `  madlibs render story.json --answers answers.json`,
		Args:    shared.ExactArgs(1),
		GroupID: shared.GroupPlay,
		RunE:    runRender,
	}
	cmd.Flags().String("answers", "", "Answers file (JSON or YAML object of key: answer)")
	cmd.Flags().Bool("show-template", false, "Print the validated template as JSON first")
	cmd.Flags().Bool("strict", false, "Reject templates with unknown top-level fields")
	cmd.Flags().String("format", "", "Payload format of FILE: json or yaml")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	answersPath, _ := cmd.Flags().GetString("answers")
	if answersPath == "" {
		return clierrors.NewArgumentErrorWithUsage(
			"render needs an answers file",
			"madlibs render FILE --answers PATH",
			"Use 'madlibs play --from-file FILE' to answer interactively",
		)
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyPlayFlags(cmd, cfg); err != nil {
		return err
	}

	opts := shared.PipelineOptions(cfg)
	opts.Logger = shared.Logger(cmd)

	raw, err := shared.ReadPayload(args[0])
	if err != nil {
		return err
	}
	res, err := pipeline.FromText(raw, opts)
	if err != nil {
		return shared.TemplateError(args[0], err)
	}

	return play(cmd, res.Template, cfg.ShowTemplate, answersPath)
}
