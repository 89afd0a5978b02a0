package templates

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ariel-frischer/madlibs/internal/cli/shared"
	"github.com/ariel-frischer/madlibs/internal/config"
	"github.com/ariel-frischer/madlibs/internal/contract"
	clierrors "github.com/ariel-frischer/madlibs/internal/errors"
	"github.com/ariel-frischer/madlibs/internal/payload"
	"github.com/ariel-frischer/madlibs/internal/pipeline"
	"github.com/ariel-frischer/madlibs/internal/progress"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check saved template payloads against the template contract",
		Long: `Sanitize, parse and validate each FILE as a template payload, then report
lint findings such as unused keys or undeclared placeholders.

Files are checked concurrently. The exit code is that of the first failing
file in argument order: 2 for a malformed payload, 1 for a contract violation.`,
		Example: `  madlibs validate story.json
  madlibs validate --strict saved/*.json`,
		Args:    shared.MinimumNArgs(1),
		GroupID: shared.GroupTemplates,
		RunE:    runValidate,
	}
	cmd.Flags().Bool("strict", false, "Reject templates with unknown top-level fields")
	cmd.Flags().String("format", "", "Payload format of each FILE: json or yaml")
	return cmd
}

type fileResult struct {
	path   string
	result *pipeline.Result
	err    error
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyTemplateFlags(cmd, cfg); err != nil {
		return err
	}

	opts := shared.PipelineOptions(cfg)
	opts.Logger = shared.Logger(cmd)

	results := make([]fileResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = validateFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	marks := progress.NewMarks(progress.CapabilitiesFor(cmd.OutOrStdout()))
	failed, code := 0, shared.ExitSuccess
	for _, r := range results {
		printResult(cmd.OutOrStdout(), marks, r)
		if r.err != nil {
			if failed == 0 {
				code, _ = shared.Classify(r.err)
			}
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d template(s) failed validation\n", failed, len(results))
		return shared.NewExitError(code)
	}
	return nil
}

func validateFile(path string, opts pipeline.Options) fileResult {
	raw, err := shared.ReadPayload(path)
	if err != nil {
		return fileResult{path: path, err: err}
	}
	res, err := pipeline.FromText(raw, opts)
	return fileResult{path: path, result: res, err: err}
}

func printResult(w io.Writer, marks progress.Marks, r fileResult) {
	if r.err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", marks.Fail(), r.path, r.err)
		var violation *contract.Violation
		if errors.As(r.err, &violation) && violation.Hint != "" {
			fmt.Fprintf(w, "    Hint: %s\n", violation.Hint)
		}
		return
	}

	tmpl := r.result.Template
	fmt.Fprintf(w, "%s %s: %q (%d blanks: %s)\n", marks.OK(), r.path, tmpl.Title(), tmpl.Len(), strings.Join(tmpl.Keys(), ", "))
	for _, f := range r.result.Findings {
		fmt.Fprintf(w, "    %s %s\n", marks.Warn(), f)
	}
}

func applyTemplateFlags(cmd *cobra.Command, cfg *config.Configuration) error {
	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.StrictFields, _ = flags.GetBool("strict")
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		if !payload.ValidFormat(format) {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("unknown payload format %q", format),
				cmd.Name()+" --format json|yaml",
			)
		}
		cfg.Format = format
	}
	return nil
}
