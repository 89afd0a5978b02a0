package answers

import (
	"context"
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/ariel-frischer/madlibs/internal/madlib"
	"github.com/ariel-frischer/madlibs/internal/render"
)

// askFunc asks one question and returns the raw reply.
type askFunc func(message string, required bool) (string, error)

// Survey asks for each blank on the terminal.
type Survey struct {
	// Required rejects empty replies and asks again.
	Required bool

	ask askFunc
}

// NewSurvey returns a terminal collector.
func NewSurvey(required bool) *Survey {
	return &Survey{Required: required, ask: surveyAsk}
}

// Collect prompts with each blank's instruction in order. Replies are trimmed.
func (s *Survey) Collect(ctx context.Context, blanks []madlib.Blank) (render.Answers, error) {
	ask := s.ask
	if ask == nil {
		ask = surveyAsk
	}

	out := make(render.Answers, len(blanks))
	for _, b := range blanks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reply, err := ask(b.Prompt, s.Required)
		if err != nil {
			return nil, translateSurveyErr(err)
		}
		out[b.Key] = strings.TrimSpace(reply)
	}
	return out, nil
}

func surveyAsk(message string, required bool) (string, error) {
	var out string
	var opts []survey.AskOpt
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(&survey.Input{Message: strings.TrimSpace(message)}, &out, opts...); err != nil {
		return "", err
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
