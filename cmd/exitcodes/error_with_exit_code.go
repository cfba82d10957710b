package exitcodes

// ErrorWithExitCode pairs an error with the process exit code the application should
// terminate with if the error reaches the top level. Commands use it to signal
// outcomes the shell needs to distinguish, such as analysis failures.
type ErrorWithExitCode struct {
	err      error
	exitCode int
}

// NewErrorWithExitCode wraps the provided error (which may be nil if the command
// already reported it) with the given exit code.
func NewErrorWithExitCode(err error, exitCode int) *ErrorWithExitCode {
	return &ErrorWithExitCode{
		err:      err,
		exitCode: exitCode,
	}
}

// Error returns the wrapped error's message, implementing the `error` interface.
func (e *ErrorWithExitCode) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// GetInnerErrorAndExitCode resolves an error bubbled up to the top level into the
// error to report and the exit code to terminate with: a nil error maps to
// ExitCodeSuccess, an ErrorWithExitCode is unwrapped into its inner error and recorded
// code, and any other error maps to ExitCodeGeneralError.
func GetInnerErrorAndExitCode(err error) (error, int) {
	if err == nil {
		return nil, ExitCodeSuccess
	} else if unwrappedErr, ok := err.(*ErrorWithExitCode); ok {
		return unwrappedErr.err, unwrappedErr.exitCode
	} else {
		return err, ExitCodeGeneralError
	}
}
