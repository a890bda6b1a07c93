// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

// PageSource is the capability table an InputStream drives to refill pages.
// It is a struct of function values rather than an interface so the hot
// path (Readable/Peek/Read/Advance) never has to dispatch through it at
// all — only the refill slow path in stream.go touches these fields. A
// source fills in whichever capabilities it actually has; the rest are
// left nil and the stream checks for that before calling them.
type PageSource struct {
	// ReadSync performs a blocking read. Call convention: dst == nil asks
	// the source to append a fresh page to the stream's PageBuffers and fill
	// it (this is how the stream refills); dst != nil reads straight into
	// dst, bypassing pages. Returns the number of bytes produced plus:
	//   - nil: the source made progress; n may be less than requested.
	//   - io.EOF: the source is exhausted; n is the final partial count.
	//   - ErrWouldBlock: never returned here; synchronous sources either
	//     block or spin according to config, they do not report
	//     ErrWouldBlock (that is ReadAsync's contract).
	ReadSync func(dst []byte) (n int, err error)

	// ReadAsync drives a non-blocking, possibly multi-step fill.
	// Call convention: dst == nil asks for a fresh page to be appended to
	// the stream's PageBuffers, starting a refill or polling the one already
	// in flight (at most one is in flight at a time per PageSource;
	// AsyncInput enforces this with a semaphore — see source_async.go);
	// dst != nil reads straight into dst, bypassing pages. Returns:
	//   - nil: the operation completed; n bytes were produced.
	//   - io.EOF: the source is exhausted; n is the final partial count.
	//   - ErrMore: the operation is still running; n bytes written so far
	//     are valid and the caller should poll again later.
	//   - ErrWouldBlock: no progress is possible right now; retry later.
	ReadAsync func(dst []byte) (n int, err error)

	// CloseSync blocks until the source is released.
	CloseSync func() error

	// CloseAsync starts (dst call convention does not apply here) or polls
	// a non-blocking close. Returns ErrMore while the close is still in
	// flight, nil once it has completed.
	CloseAsync func() error

	// GetLen reports how many bytes remain readable from the consumer's
	// current position when that is known (a file or byte slice of known
	// size), or (0, false) when it is not (a streaming device with no
	// fixed end).
	GetLen func() (int64, bool)
}

// CanReadSync reports whether the source supports synchronous reads.
func (s PageSource) CanReadSync() bool { return s.ReadSync != nil }

// CanReadAsync reports whether the source supports non-blocking reads.
func (s PageSource) CanReadAsync() bool { return s.ReadAsync != nil }

// CanCloseSync reports whether the source supports a blocking close.
func (s PageSource) CanCloseSync() bool { return s.CloseSync != nil }

// CanCloseAsync reports whether the source supports a non-blocking close.
func (s PageSource) CanCloseAsync() bool { return s.CloseAsync != nil }

// Len returns the source's remaining length and whether it is known.
func (s PageSource) Len() (int64, bool) {
	if s.GetLen == nil {
		return 0, false
	}
	return s.GetLen()
}
