package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/madlibs/internal/answers"
	"github.com/ariel-frischer/madlibs/internal/cli/shared"
	"github.com/ariel-frischer/madlibs/internal/config"
	"github.com/ariel-frischer/madlibs/internal/contract"
	clierrors "github.com/ariel-frischer/madlibs/internal/errors"
	"github.com/ariel-frischer/madlibs/internal/madlib"
	"github.com/ariel-frischer/madlibs/internal/payload"
	"github.com/ariel-frischer/madlibs/internal/pipeline"
	"github.com/ariel-frischer/madlibs/internal/progress"
	"github.com/ariel-frischer/madlibs/internal/render"
	"github.com/ariel-frischer/madlibs/internal/source"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Generate a Mad Lib and fill in the blanks",
		Long: `Ask Gemini for a fresh Mad Lib template, validate it, prompt for each blank,
and print the completed story.

Running madlibs with no command is the same as madlibs play.`,
		Example: `  # Play with the defaults (9 blanks, any theme)
  madlibs play

  # Pick a theme and blank count, and show the template first
  madlibs play --theme "haunted lighthouse" --blanks 8 --show-template

  # Play offline with a saved template and prepared answers
  madlibs play --from-file story.json --answers answers.json`,
		Args:    shared.NoArgs,
		GroupID: shared.GroupPlay,
		RunE:    runPlay,
	}
	addPlayFlags(cmd)
	return cmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("blanks", "b", config.DefaultBlanks, "Number of blanks to request (must lie within min_blanks..max_blanks)")
	cmd.Flags().StringP("theme", "t", "", "Story theme (default: surprise me)")
	cmd.Flags().StringP("model", "m", source.DefaultModel, "Gemini model to use")
	cmd.Flags().Bool("show-template", false, "Print the validated template as JSON before playing")
	cmd.Flags().String("from-file", "", "Play a saved template payload instead of calling Gemini")
	cmd.Flags().String("answers", "", "Read answers from a JSON/YAML file instead of prompting")
	cmd.Flags().Bool("strict", false, "Reject templates with unknown top-level fields")
	cmd.Flags().String("format", "", "Payload format to request: json or yaml")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyPlayFlags(cmd, cfg); err != nil {
		return err
	}

	opts := shared.PipelineOptions(cfg)
	opts.Logger = shared.Logger(cmd)

	res, err := loadTemplate(cmd, cfg, opts)
	if err != nil {
		return err
	}

	answersPath, _ := cmd.Flags().GetString("answers")
	return play(cmd, res.Template, cfg.ShowTemplate, answersPath)
}

// applyPlayFlags overrides configuration with flags the user set explicitly.
func applyPlayFlags(cmd *cobra.Command, cfg *config.Configuration) error {
	flags := cmd.Flags()

	if flags.Changed("blanks") {
		n, _ := flags.GetInt("blanks")
		if !cfg.Bounds().Contains(n) {
			return clierrors.InvalidBlankCount(n, cfg.Bounds().String())
		}
		cfg.Blanks = n
	}
	if flags.Changed("theme") {
		cfg.Theme, _ = flags.GetString("theme")
	}
	if flags.Changed("model") {
		fromFile, _ := flags.GetString("from-file")
		if fromFile != "" {
			return clierrors.InvalidFlagCombination("--model --from-file", "a saved template is not generated by a model")
		}
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("show-template") {
		cfg.ShowTemplate, _ = flags.GetBool("show-template")
	}
	if flags.Changed("strict") {
		cfg.StrictFields, _ = flags.GetBool("strict")
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		if !payload.ValidFormat(format) {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("unknown payload format %q", format),
				"madlibs play --format json|yaml",
			)
		}
		cfg.Format = format
	}
	return nil
}

// loadTemplate fetches and validates a template from Gemini or --from-file.
func loadTemplate(cmd *cobra.Command, cfg *config.Configuration, opts pipeline.Options) (*pipeline.Result, error) {
	ctx := cmd.Context()
	fromFile, _ := cmd.Flags().GetString("from-file")

	if fromFile != "" {
		raw, err := shared.ReadPayload(fromFile)
		if err != nil {
			return nil, err
		}
		res, err := pipeline.FromText(raw, opts)
		if err != nil {
			return nil, shared.TemplateError(fromFile, err)
		}
		return res, nil
	}

	gemini, err := source.NewGemini(ctx, source.GeminiConfig{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		JSONMode: cfg.PayloadFormat() == payload.FormatJSON,
	})
	if err != nil {
		return nil, clierrors.SourceSetupFailed(err)
	}

	timeout := cfg.TimeoutDuration()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	display := progress.NewDisplay(cmd.ErrOrStderr(), progress.CapabilitiesFor(cmd.ErrOrStderr()))
	display.Start(fmt.Sprintf("Asking %s for a Mad Lib...", gemini.Model()))
	res, err := pipeline.Load(ctx, gemini, opts)
	display.Stop()

	return res, generationError(gemini.Model(), timeout.String(), err)
}

func generationError(model, timeout string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return clierrors.TimeoutError(timeout, model, err)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, source.ErrEmptyResponse):
		return clierrors.EmptyResponse(model, err)
	case shared.IsTemplateError(err):
		return shared.TemplateError(model+" response", err)
	default:
		return clierrors.SourceFailed(model, err)
	}
}

// play prints the title, collects answers and prints the story.
func play(cmd *cobra.Command, tmpl *madlib.Template, showTemplate bool, answersPath string) error {
	out := cmd.OutOrStdout()

	if showTemplate {
		dump, err := tmpl.Dump()
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		fmt.Fprintln(out, dump)
	}

	if finding, ok := contract.FirstBlocking(contract.Lint(tmpl)); ok {
		return clierrors.TemplateUnplayable(finding.String())
	}

	fmt.Fprintf(out, "\n🎲 Title: %s\n\n", tmpl.Title())

	collector, err := newCollector(answersPath)
	if err != nil {
		return err
	}
	values, err := collector.Collect(cmd.Context(), tmpl.Blanks())
	if err != nil {
		if errors.Is(err, answers.ErrMissingAnswer) {
			return clierrors.MissingAnswer(answersPath, err)
		}
		return err
	}

	story, err := render.Render(tmpl, values)
	if err != nil {
		return clierrors.RenderFailed(err)
	}

	fmt.Fprintf(out, "\nHere is your completed Mad Lib:\n\n%s\n\n", story)
	return nil
}

func newCollector(answersPath string) (answers.Collector, error) {
	if answersPath == "" {
		return answers.NewSurvey(false), nil
	}
	static, err := answers.LoadFile(answersPath)
	if err != nil {
		return nil, clierrors.AnswersFileError(answersPath, err)
	}
	return static, nil
}
