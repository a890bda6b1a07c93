// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import "errors"

var (
	// ErrWouldBlock means "no further progress without waiting". It is an
	// expected, non-failure control-flow signal from a non-blocking source.
	// Any returned byte count still represents real progress.
	//
	// Caller action: stop the current attempt and retry later, or configure
	// a Waiter that suspends until the source is ready.
	ErrWouldBlock = errors.New("pagestream: would block")

	// ErrMore means "this completion is usable and more will follow". It is
	// not EOF and not "try later": the refill remains active and additional
	// bytes are expected from the same in-flight operation.
	ErrMore = errors.New("pagestream: more data pending")

	// ErrInvalidOffset reports a construction offset that is not page-aligned
	// (mappedFileInput) or otherwise out of range.
	ErrInvalidOffset = errors.New("pagestream: invalid offset")

	// ErrFileNotFound reports a construction path that does not exist.
	ErrFileNotFound = errors.New("pagestream: file not found")

	// ErrClosed reports an operation attempted on a closed stream.
	ErrClosed = errors.New("pagestream: stream closed")

	// ErrInvalidArgument reports a nil or otherwise invalid constructor
	// argument.
	ErrInvalidArgument = errors.New("pagestream: invalid argument")

	// ErrTooLong reports that a stream configured with WithReadLimit has
	// pulled more bytes from its source, in total, than that limit allows.
	// The stream disconnects from its source once this is raised. Bytes up
	// to the configured limit remain readable; any excess already pulled
	// into a page beyond the limit is never exposed to the caller.
	ErrTooLong = errors.New("pagestream: read limit exceeded")
)

// ProgrammerError is the panic value raised for precondition violations the
// spec calls hard faults: peek/read/advance without a preceding true
// readable, peekAt beyond the current span, or read(n) exceeding the
// consumable remainder. These are non-recoverable by design; a panic of
// this type at a call site means the caller skipped a required readability
// check, not that bad input was seen.
type ProgrammerError struct {
	// Op names the operation that faulted, e.g. "PeekByte", "PeekAt", "ReadN".
	Op string
	// Msg describes the violated precondition.
	Msg string
}

func (e *ProgrammerError) Error() string {
	return "pagestream: programmer error in " + e.Op + ": " + e.Msg
}

func faultf(op, msg string) {
	panic(&ProgrammerError{Op: op, Msg: msg})
}
