package progress

import (
	"github.com/fatih/color"
)

// Marks renders the pass, fail and warning symbols for a terminal.
type Marks struct {
	symbols ProgressSymbols
	color   bool
}

// NewMarks returns marks matching caps.
func NewMarks(caps TerminalCapabilities) Marks {
	return Marks{symbols: SelectSymbols(caps), color: caps.SupportsColor}
}

// OK returns the success mark.
func (m Marks) OK() string {
	return m.paint(color.FgGreen, m.symbols.Checkmark)
}

// Fail returns the failure mark.
func (m Marks) Fail() string {
	return m.paint(color.FgRed, m.symbols.Failure)
}

// Warn returns the warning mark.
func (m Marks) Warn() string {
	return m.paint(color.FgYellow, m.symbols.Warning)
}

func (m Marks) paint(attr color.Attribute, s string) string {
	if !m.color {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
