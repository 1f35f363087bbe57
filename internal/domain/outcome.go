package domain

import "time"

// Outcome is the result of invoking the description gateway for one asset.
type Outcome struct {
	OK      bool
	Text    string        // description or transcript, set on success
	Backend string        // backend that produced the result (or last to fail)
	Elapsed time.Duration
	Reason  FailureReason // set on failure
	Detail  string        // human-readable failure detail
}

func Succeed(text, backend string, elapsed time.Duration) Outcome {
	return Outcome{OK: true, Text: text, Backend: backend, Elapsed: elapsed}
}

func Fail(reason FailureReason, detail string, elapsed time.Duration) Outcome {
	return Outcome{Reason: reason, Detail: detail, Elapsed: elapsed}
}
