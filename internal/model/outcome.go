package model

// FailureReason classifies why a download did not complete.
type FailureReason string

const (
	// ReasonCancelled means the user requested cancellation. It is never
	// conflated with a process failure even when termination makes the
	// process exit nonzero.
	ReasonCancelled FailureReason = "cancelled"

	// ReasonFailed means yt-dlp exited with a nonzero code.
	ReasonFailed FailureReason = "failed"

	// ReasonMissingDependency means the yt-dlp binary could not be found.
	ReasonMissingDependency FailureReason = "missing_dependency"

	// ReasonError covers any other launch or streaming error.
	ReasonError FailureReason = "error"
)

// Outcome is the terminal result of a download attempt.
type Outcome struct {
	Success    bool
	Files      []string // resolved destination paths, on success
	OutputPath string   // output directory, on success
	Request    *Request // snapshot of the request, on success
	Reason     FailureReason
	ExitCode   int    // process exit code when Reason is ReasonFailed
	Err        string // human-readable error text when Reason is ReasonError
}
