package hypocontext

import "errors"

// ErrClosedWhileTasksRunning is returned by Close when the worker pool
// still had in-flight tasks. The pool is shut down forcibly regardless
// (spec §5: cancellation is cooperative only at task boundaries); this
// error exists so a caller that does this by accident finds out (spec
// §4.D: "closing a context with running tasks" is a Precondition error).
var ErrClosedWhileTasksRunning = errors.New("hypocontext: context closed while tasks were still running")

func errClosedWhileTasksRunningWith(providerErr error) error {
	return errors.Join(ErrClosedWhileTasksRunning, providerErr)
}
