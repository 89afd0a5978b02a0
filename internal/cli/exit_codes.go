package cli

import (
	"github.com/ariel-frischer/madlibs/internal/cli/shared"
)

// Exit codes for the madlibs CLI (re-exported from shared)
// These codes let scripts tell a bad template from a bad flag or a network failure.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitFailed indicates a contract violation or a render failure
	ExitFailed = shared.ExitFailed

	// ExitMalformedPayload indicates the template text could not be parsed
	ExitMalformedPayload = shared.ExitMalformedPayload

	// ExitInvalidArguments indicates invalid arguments, flags or config
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitSourceFailed indicates the generator failed or returned nothing
	ExitSourceFailed = shared.ExitSourceFailed

	// ExitTimeout indicates the generator did not answer in time
	ExitTimeout = shared.ExitTimeout

	// ExitAborted indicates the user cancelled with Ctrl-C
	ExitAborted = shared.ExitAborted
)
