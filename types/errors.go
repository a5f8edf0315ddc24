package types

// ErrorClass is the closed classification of a release-call failure. The
// mapping from provider error codes lives with the AWS provider so its
// vocabulary never reaches the reconciler.
type ErrorClass string

const (
	// ErrorRecoverable - attributed to one address (throttling, invalid
	// state); counted and the run continues.
	ErrorRecoverable ErrorClass = "recoverable"
	// ErrorFatal - systemic auth/credential breakdown; every subsequent call
	// would fail the same way, so the run aborts.
	ErrorFatal ErrorClass = "fatal"
	// ErrorUnclassified - not a recognized provider error shape. Treated as
	// fatal rather than guessed at.
	ErrorUnclassified ErrorClass = "unclassified"
)

// Fatal reports whether the class aborts the run.
func (c ErrorClass) Fatal() bool {
	return c == ErrorFatal || c == ErrorUnclassified
}
