package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

var (
	unicodeSymbols = ProgressSymbols{Checkmark: "✓", Failure: "✗", Warning: "!", SpinnerSet: 14}
	asciiSymbols   = ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", Warning: "[WARN]", SpinnerSet: 9}
)

// CapabilitiesFor reports what w can display. Only a terminal gets color or
// Unicode marks; NO_COLOR, TERM=dumb and MADLIBS_ASCII=1 narrow that further.
// Writers that are not files, such as buffers in tests, are plain text.
func CapabilitiesFor(w io.Writer) TerminalCapabilities {
	f, ok := w.(interface{ Fd() uintptr })
	return capabilities(ok && term.IsTerminal(int(f.Fd())), os.Getenv)
}

func capabilities(tty bool, getenv func(string) string) TerminalCapabilities {
	if !tty {
		return TerminalCapabilities{}
	}
	dumb := getenv("TERM") == "dumb"
	return TerminalCapabilities{
		IsTTY:           true,
		SupportsColor:   !dumb && getenv("NO_COLOR") == "",
		SupportsUnicode: !dumb && getenv("MADLIBS_ASCII") != "1",
	}
}

// SelectSymbols returns Unicode marks when caps allow them, ASCII otherwise.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return unicodeSymbols
	}
	return asciiSymbols
}
