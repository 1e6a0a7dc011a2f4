package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrUnavailable marks transient transport failures: retried on the
	// next tick after a backoff, never fatal.
	ErrUnavailable = errors.New("service unavailable")
	// ErrRejected marks server-side validation failures (fatigue limit,
	// cooldown, zone restriction, blocked movement). Never retried
	// verbatim within the same tick.
	ErrRejected = errors.New("action rejected")
)

// RejectedError carries the server's stated reason and any cooldown it
// asked the client to mirror locally.
type RejectedError struct {
	Reason        string
	CooldownTicks int64
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return ErrRejected.Error()
	}
	return ErrRejected.Error() + ": " + e.Reason
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}
