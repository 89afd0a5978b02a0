// Package pipeline wires the generative source to the template contract:
// request shaping, generation, sanitizing, parsing, validation and lint.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ariel-frischer/madlibs/internal/contract"
	"github.com/ariel-frischer/madlibs/internal/madlib"
	"github.com/ariel-frischer/madlibs/internal/payload"
	"github.com/ariel-frischer/madlibs/internal/prompt"
	"github.com/ariel-frischer/madlibs/internal/sanitize"
	"github.com/ariel-frischer/madlibs/internal/source"
)

// Options controls a pipeline run.
type Options struct {
	// Request shapes the generation request. Its Bounds are ignored;
	// Bounds below is used for both the request and validation.
	Request prompt.Request
	Bounds  contract.Bounds
	// Format is the payload format expected from the source. Empty means JSON.
	Format payload.Format
	// Strict rejects unknown top-level fields.
	Strict bool
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) format() payload.Format {
	if o.Format == "" {
		return payload.FormatJSON
	}
	return o.Format
}

// Result is a validated template plus its non-failing lint findings.
type Result struct {
	Template *madlib.Template
	Findings []contract.Finding
}

// Load requests a template from src and validates it.
func Load(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	log := opts.logger()

	req := opts.Request
	req.Bounds = opts.Bounds
	request, err := prompt.Build(req)
	if err != nil {
		return nil, fmt.Errorf("building generation request: %w", err)
	}
	log.Debug("built generation request",
		zap.Int("chars", len(request)),
		zap.Stringer("bounds", opts.Bounds),
		zap.Int("count", req.Count),
	)

	raw, err := src.Generate(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("generating template: %w", err)
	}
	log.Debug("received response", zap.Int("chars", len(raw)))

	if err := source.CheckResponse(raw); err != nil {
		return nil, err
	}

	return FromText(raw, opts)
}

// FromText validates raw source text without calling a source.
func FromText(raw string, opts Options) (*Result, error) {
	log := opts.logger()

	text := sanitize.Sanitize(raw)
	if len(text) != len(raw) {
		log.Debug("sanitized response", zap.Int("before", len(raw)), zap.Int("after", len(text)))
	}

	root, err := payload.ParseAs(text, opts.format())
	if err != nil {
		log.Debug("payload rejected", zap.Error(err))
		return nil, err
	}

	tmpl, err := contract.ValidateWithOptions(root, opts.Bounds, contract.Options{
		DisallowUnknownFields: opts.Strict,
	})
	if err != nil {
		log.Debug("contract rejected", zap.Error(err))
		return nil, err
	}
	log.Debug("template validated",
		zap.String("title", tmpl.Title()),
		zap.Int("blanks", tmpl.Len()),
	)

	findings := contract.Lint(tmpl)
	for _, f := range findings {
		log.Warn("template lint", zap.String("code", string(f.Code)), zap.String("key", f.Key), zap.String("message", f.Message))
	}

	return &Result{Template: tmpl, Findings: findings}, nil
}
