package registry

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNotFound means the registry answered but had no such statute or precedent.
var ErrNotFound = errors.New("registry: not found")

// TransientError marks an upstream fault worth retrying: timeouts, 5xx,
// connection resets. Anything else (4xx, malformed response) is permanent and
// propagates immediately.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("registry: transient %s failure: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err should be retried at the fetch boundary.
func IsTransient(err error) bool {
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
