package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgRed, color.Bold)
	usageColor   = color.New(color.FgCyan)
	fixColor     = color.New(color.FgYellow, color.Bold)
	stepColor    = color.New(color.FgYellow)
)

// FormatError renders err with colors for terminal output.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return format(err, true)
}

// FormatErrorPlain renders err without ANSI escapes.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return format(err, false)
}

func format(err *CLIError, colored bool) string {
	paint := func(c *color.Color, s string) string {
		if !colored {
			return s
		}
		return c.Sprint(s)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", paint(headingColor, err.Category.String()), err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s\n  %s\n", paint(usageColor, "Usage:"), err.Usage)
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", paint(fixColor, "To fix this:"))
		for i, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", paint(stepColor, fmt.Sprintf("%d.", i+1)), step)
		}
	}

	return sb.String()
}

// FormatSimpleError renders a plain error under the given category heading.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return FormatError(cliErr)
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}

// PrintError writes err to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes err to w. Colors follow fatih/color's terminal detection.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
