// Package progress provides terminal feedback while the generator works:
// capability detection, a spinner on stderr, and pass/fail marks.
package progress

// TerminalCapabilities describes what the output writer can display.
type TerminalCapabilities struct {
	IsTTY           bool // writer is a terminal, not a pipe, file or buffer
	SupportsColor   bool
	SupportsUnicode bool
}

// ProgressSymbols is the mark set for one capability level.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	Warning    string // non-failing lint finding
	SpinnerSet int    // index into spinner.CharSets
}
