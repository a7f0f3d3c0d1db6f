// Package verifyhelper provides public constants for tools that run the
// verify-helper CLI, for example CI wrappers.
package verifyhelper

// Exit codes returned by the verify-helper CLI.
// Verification failures are recorded in the result document and do not
// change the exit code.
const (
	// ExitSuccess indicates the command completed, whatever the verification outcomes.
	ExitSuccess = 0

	// ExitFailure indicates an unexpected runtime failure, such as a failing
	// pre-command or an interrupted run.
	ExitFailure = 1

	// ExitConfigError indicates invalid arguments, configuration or input documents.
	ExitConfigError = 2

	// ExitEnvError indicates a missing tool (git, oj) or an unusable environment.
	ExitEnvError = 3
)
