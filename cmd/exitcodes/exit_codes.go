package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeAnalysisFailed indicates the storage layout of the target contract could
	// not be safely computed (unresolvable reference, unknown type construct, missing
	// contract definition). Mutually exclusive with ExitCodeGeneralError so callers can
	// distinguish "cannot analyze" from environmental failures.
	ExitCodeAnalysisFailed = 6

	// ExitCodeHandledError indicates an error occurred that was already logged by the
	// command that produced it, so the top-level handler should not print it again.
	ExitCodeHandledError = 7
)
