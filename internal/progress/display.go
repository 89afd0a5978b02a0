package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Display shows a spinner while a blocking call runs. On a terminal the
// spinner animates on w; elsewhere the message is printed once.
type Display struct {
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	marks        Marks
	w            io.Writer
	spinner      *spinner.Spinner
}

// NewDisplay creates a display writing to w, normally os.Stderr.
func NewDisplay(w io.Writer, caps TerminalCapabilities) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		marks:        NewMarks(caps),
		w:            w,
	}
}

// Start begins showing msg.
func (d *Display) Start(msg string) {
	d.Stop()
	if !d.capabilities.IsTTY {
		fmt.Fprintln(d.w, msg)
		return
	}
	opt := spinner.WithWriter(d.w)
	if f, ok := d.w.(*os.File); ok {
		opt = spinner.WithWriterFile(f)
	}
	d.spinner = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond, opt)
	d.spinner.Suffix = " " + msg
	d.spinner.Start()
}

// Succeed stops the spinner and prints msg with a success mark.
func (d *Display) Succeed(msg string) {
	d.Stop()
	fmt.Fprintf(d.w, "%s %s\n", d.marks.OK(), msg)
}

// Fail stops the spinner and prints msg with a failure mark.
func (d *Display) Fail(msg string) {
	d.Stop()
	fmt.Fprintf(d.w, "%s %s\n", d.marks.Fail(), msg)
}

// Stop stops the spinner without printing anything.
func (d *Display) Stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
