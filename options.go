// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import (
	"log/slog"
	"time"
)

// DefaultPageSize is the allocation granule used when a constructor's
// pageSize argument is zero.
const DefaultPageSize = 64 * 1024

// ClosePolicy selects whether Close waits for an in-flight close future
// before returning.
type ClosePolicy uint8

const (
	// DontWait fires the close and returns without waiting for it to
	// finish; failures are reported via the configured logger instead of
	// being returned to the caller.
	DontWait ClosePolicy = iota
	// Wait blocks until the close future resolves and returns its error.
	Wait
)

// config collects constructor-time options. It is unexported; callers only
// ever see the Option functions below.
type config struct {
	pageSize    int
	retryDelay  time.Duration
	readLimit   int64
	closePolicy ClosePolicy
	logger      *slog.Logger
}

var defaultConfig = config{
	pageSize:    DefaultPageSize,
	retryDelay:  0, // cooperative yield-and-retry
	readLimit:   0, // unlimited
	closePolicy: DontWait,
	logger:      slog.Default(),
}

// Option configures a constructor (UnsafeMemory, MemoryInput,
// MappedFileInput, FileInput, AsyncInput).
type Option func(*config)

// WithPageSize sets the allocation granule for sources that refill in
// pages (BufferedFile, AsyncDevice) and the copy granule for MemoryInput.
// Zero or negative leaves DefaultPageSize in effect.
func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithRetryDelay controls how a synchronous source's refill loop waits
// after a zero-progress attempt:
//   - negative: nonblocking — give up immediately: Readable/ReadableN
//     report false and ReadIntoEx returns ErrWouldBlock
//   - zero: cooperative — yield the scheduler and retry (default)
//   - positive: sleep for the duration and retry
func WithRetryDelay(d time.Duration) Option {
	return func(c *config) { c.retryDelay = d }
}

// WithNonblock is shorthand for WithRetryDelay(-1): refill attempts that
// would block give up immediately instead of retrying (ReadIntoEx returns
// ErrWouldBlock; Readable/ReadableN report false).
func WithNonblock() Option {
	return func(c *config) { c.retryDelay = -1 }
}

// WithReadLimit caps the total number of bytes a stream will ever expose
// from its source over its lifetime, across every refill. Zero (the
// default) means unlimited. Once a refill would pull the stream past the
// limit, it disconnects from its source and Err reports ErrTooLong; bytes
// up to the limit remain readable, bytes beyond it never become visible.
func WithReadLimit(n int64) Option {
	return func(c *config) {
		if n >= 0 {
			c.readLimit = n
		}
	}
}

// WithClosePolicy sets the default policy used by InputStream.Close.
// Handle.Close and CloseWithPolicy take their policy explicitly, and a
// Handle's finalizer always closes with DontWait.
func WithClosePolicy(p ClosePolicy) Option {
	return func(c *config) { c.closePolicy = p }
}

// WithCloseLogger sets the logger used to report close failures that are
// suppressed during automatic (drop-time) cleanup rather than propagated to
// a caller. The default is slog.Default().
func WithCloseLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func buildConfig(opts []Option) config {
	c := defaultConfig
	for _, fn := range opts {
		fn(&c)
	}
	return c
}
