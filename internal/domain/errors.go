package domain

import (
	"errors"
	"fmt"
)

// Structural failures. These abort a run entirely; everything else degrades
// per message or per media item.
var (
	ErrNotFound      = errors.New("input directory not found")
	ErrNotADirectory = errors.New("input path is not a directory")
	ErrNoTranscript  = errors.New("no chat transcript found")
)

// FailureReason is the closed taxonomy for media processing failures.
// Callers branch on the reason; the detail string is for humans.
type FailureReason string

const (
	ReasonUnsupported        FailureReason = "unsupported"
	ReasonTooLarge           FailureReason = "too_large"
	ReasonInvalidFormat      FailureReason = "invalid_format"
	ReasonTransient          FailureReason = "transient"
	ReasonConversionFailed   FailureReason = "conversion_failed"
	ReasonBackendUnavailable FailureReason = "backend_unavailable"
	ReasonTimeout            FailureReason = "timeout"
)

// Retryable reports whether another attempt against the same backend can
// possibly succeed. Format and size violations are deterministic rejections.
func (r FailureReason) Retryable() bool {
	switch r {
	case ReasonUnsupported, ReasonTooLarge, ReasonInvalidFormat:
		return false
	default:
		return true
	}
}

// Failure is an error with a FailureReason attached.
type Failure struct {
	Reason FailureReason
	Detail string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Reason, f.Detail)
}

func NewFailure(reason FailureReason, format string, args ...any) *Failure {
	return &Failure{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// ReasonOf extracts the FailureReason from an error chain.
// Unclassified errors default to transient.
func ReasonOf(err error) FailureReason {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ReasonTransient
}
