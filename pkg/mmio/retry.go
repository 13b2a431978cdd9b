package mmio

import (
	"errors"
	"syscall"

	"github.com/cenkalti/backoff/v4"
)

const defaultOpenRetries = 5

// OpenWithRetry opens a region, retrying construction under the given
// backoff policy while the device open fails with a transient errno
// (EAGAIN, EBUSY, EINTR). A nil policy picks exponential backoff with
// defaultOpenRetries attempts.
//
// Only construction is ever retried. Register accesses are not idempotent
// in general and this package never retries them.
func OpenWithRetry(base, size uint64, opts Options, policy backoff.BackOff) (*MMIO, error) {
	if policy == nil {
		policy = backoff.WithMaxRetries(backoff.NewExponentialBackOff(), defaultOpenRetries)
	}
	var m *MMIO
	op := func() error {
		var err error
		m, err = OpenWithOptions(base, size, opts)
		if err == nil {
			return nil
		}
		if !transientOpenError(err) {
			return backoff.Permanent(err)
		}
		internalLogger.debugf("open base=%#x retrying: %v", base, err)
		return err
	}
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return m, nil
}

// transientOpenError reports whether the construction failure is one worth
// retrying. Anything without a transient errno (bad address, permissions,
// missing device) is permanent.
func transientOpenError(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case syscall.EAGAIN, syscall.EBUSY, syscall.EINTR:
		return true
	}
	return false
}
