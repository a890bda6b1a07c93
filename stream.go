// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"go.pagestream.dev/pagestream/internal/waiter"
)

// InputStream is the consumer-facing object: the current readable PageSpan,
// an optional PageBuffers queue, an optional PageSource, and the running
// count of bytes consumed so far. It implements the readability protocol
// and every read primitive. Not safe for concurrent use — at most one
// consumer interacts with a given stream at a time (see Handle for an
// owning wrapper).
type InputStream struct {
	cfg     config
	source  PageSource
	buffers *PageBuffers // nil for UnsafeMemory/MappedFile: a single fixed span
	span    PageSpan
	waiter  waiter.Waiter

	pos           int64
	rangeLimit    *int64 // remaining WithReadableRange budget; nil when unset
	totalProduced int64  // lifetime bytes pulled from source, for WithReadLimit
	closed        bool
	err           error
}

func newInputStream(cfg config, source PageSource) *InputStream {
	return &InputStream{
		cfg:     cfg,
		source:  source,
		buffers: NewPageBuffers(cfg.pageSize),
		waiter:  waiter.FromRetryDelay(cfg.retryDelay),
	}
}

func newFixedSpanStream(cfg config, source PageSource, data []byte) *InputStream {
	return &InputStream{
		cfg:    cfg,
		source: source,
		span:   spanOf(data, 0, len(data)),
	}
}

// sourceGone reports whether the source capability table is entirely
// empty — either the stream never had one (UnsafeMemory, a fixed span with
// no close/len ops) or it has been disconnected after EOF or Close.
func (s *InputStream) sourceGone() bool {
	return s.source.ReadSync == nil && s.source.ReadAsync == nil &&
		s.source.CloseSync == nil && s.source.CloseAsync == nil && s.source.GetLen == nil
}

// disconnectSource clears the source so no further device interaction is
// attempted, first releasing whatever it holds through its close operation
// (without waiting for an async close); a close failure here is logged
// rather than returned.
func (s *InputStream) disconnectSource() {
	var err error
	switch {
	case s.source.CloseAsync != nil:
		err = s.closeAsync(DontWait)
	case s.source.CloseSync != nil:
		err = s.source.CloseSync()
	}
	s.source = PageSource{}
	if err != nil {
		s.cfg.logger.Warn("pagestream: close on disconnect failed", "error", err)
	}
}

// recordProduced folds n newly produced bytes into the stream's lifetime
// total and reports whether cfg.readLimit, if any, still permits more.
func (s *InputStream) recordProduced(n int) bool {
	s.totalProduced += int64(n)
	return s.cfg.readLimit <= 0 || s.totalProduced <= s.cfg.readLimit
}

// runway is the real, unclamped count of immediately consumable bytes:
// the active span plus whatever PageBuffers has queued behind it.
func (s *InputStream) runway() int64 {
	r := int64(s.span.Len())
	if s.buffers != nil {
		r += s.buffers.TotalBufferedBytes()
	}
	return r
}

// limitedRunway intersects runway with any active WithReadableRange budget
// and, if configured, the stream's remaining WithReadLimit lifetime budget.
func (s *InputStream) limitedRunway() int64 {
	r := s.runway()
	if s.rangeLimit != nil && *s.rangeLimit < r {
		r = *s.rangeLimit
	}
	if s.cfg.readLimit > 0 {
		if remaining := s.cfg.readLimit - s.pos; remaining < r {
			r = remaining
		}
	}
	return r
}

func (s *InputStream) underLimit(n int64) bool {
	if s.rangeLimit != nil && n > *s.rangeLimit {
		return false
	}
	if s.cfg.readLimit > 0 && n > s.cfg.readLimit-s.pos {
		return false
	}
	return true
}

// consume records n bytes as having left the stream, advancing pos() and
// decrementing any active range budget. It does not touch span or buffers;
// callers move those cursors themselves.
func (s *InputStream) consume(n int) {
	s.pos += int64(n)
	if s.rangeLimit != nil {
		*s.rangeLimit -= int64(n)
	}
}

// flipIfQueued retires the current span and adopts the next queued page as
// the new active span. Returns false if nothing is queued.
func (s *InputStream) flipIfQueued() bool {
	if s.buffers == nil {
		return false
	}
	span, ok := s.buffers.AdvanceToNextReadableSpan()
	if !ok {
		return false
	}
	s.span = span
	return true
}

// refillOnce drives one source capability call to completion, retrying
// through the waiter on ErrMore/ErrWouldBlock. It always pushes progress
// (if any) into buffers via the source's own dst==nil contract (source.go).
func (s *InputStream) refillOnce(ctx context.Context) int {
	call := s.source.ReadSync
	if call == nil {
		call = s.source.ReadAsync
	}
	if call == nil {
		return 0
	}
	produced := 0
	for {
		n, err := call(nil)
		produced += n
		if !s.recordProduced(n) {
			s.err = ErrTooLong
			s.disconnectSource()
			return produced
		}
		switch err {
		case nil:
			return produced
		case io.EOF:
			s.buffers.MarkEOF()
			return produced
		case ErrMore, ErrWouldBlock:
			if s.waiter == nil {
				return produced
			}
			if wErr := s.waiter.Wait(ctx); wErr != nil {
				s.err = wErr
				return produced
			}
			continue
		default:
			s.err = errors.Wrap(err, "pagestream: source read")
			return produced
		}
	}
}

// refillUntil drives refillOnce until runway() reaches n, the source is
// exhausted, or no further progress is possible.
func (s *InputStream) refillUntil(ctx context.Context, n int64) bool {
	if s.span.Empty() {
		s.flipIfQueued()
	}
	for s.runway() < n {
		if s.buffers == nil || (s.source.ReadSync == nil && s.source.ReadAsync == nil) {
			return false
		}
		before := s.runway()
		produced := s.refillOnce(ctx)
		if s.span.Empty() {
			s.flipIfQueued()
		}
		if s.buffers.EOFReached() {
			s.disconnectSource()
			break
		}
		if produced == 0 && s.runway() == before {
			return false
		}
	}
	return s.runway() >= n
}

// Readable is the hot-path predicate: on the fast path it inspects only the
// current span (one comparison). On exhaustion it falls to the slow path:
// flip to a queued page, or refill from the source.
func (s *InputStream) Readable() bool {
	if s.span.HasRunway() {
		return s.underLimit(1)
	}
	if !s.underLimit(1) {
		return false
	}
	if s.flipIfQueued() {
		return true
	}
	if s.buffers == nil || (s.source.ReadSync == nil && s.source.ReadAsync == nil) {
		return false
	}
	produced := s.refillOnce(context.Background())
	if s.buffers.EOFReached() {
		s.disconnectSource()
	}
	if produced == 0 {
		return false
	}
	return s.flipIfQueued()
}

// ReadableN guarantees that, if it returns true, the next n bytes may be
// consumed (possibly straddling pages) without further device interaction.
func (s *InputStream) ReadableN(n int) bool {
	if n <= 0 {
		return true
	}
	if !s.underLimit(int64(n)) {
		return false
	}
	if int64(n) <= s.runway() {
		if s.span.Empty() {
			s.flipIfQueued()
		}
		return true
	}
	if s.rangeLimit != nil {
		// source is hidden for the duration of a scoped range: a deficit
		// beyond what is already buffered can never be satisfied.
		return false
	}
	return s.refillUntil(context.Background(), int64(n))
}

// ReadableNow reports current readability without ever invoking the
// source — the non-blocking truthiness check.
func (s *InputStream) ReadableNow() bool {
	return s.limitedRunway() > 0
}

// TotalUnconsumedBytes equals the number of bytes producible without
// invoking the source: the active span plus whatever is already queued,
// clamped to any active WithReadableRange budget.
func (s *InputStream) TotalUnconsumedBytes() int64 {
	return s.limitedRunway()
}

// PeekByte returns the next byte without consuming it. Calling it without a
// preceding true Readable/ReadableN is a programmer error.
func (s *InputStream) PeekByte() byte {
	if s.span.Empty() {
		if !s.flipIfQueued() {
			faultf("PeekByte", "called without a preceding true Readable")
		}
	}
	return s.span.at(0)
}

// ReadByte returns and consumes the next byte. Same precondition as
// PeekByte.
func (s *InputStream) ReadByte() byte {
	b := s.PeekByte()
	s.span.start++
	s.consume(1)
	return b
}

// Advance consumes one byte without returning it.
func (s *InputStream) Advance() { s.AdvanceN(1) }

// AdvanceN consumes n bytes, flipping pages as needed. Equivalent to n
// repetitions of Advance, but crosses whole buffered pages in bulk instead
// of looping byte by byte.
func (s *InputStream) AdvanceN(n int) {
	if n < 0 {
		faultf("AdvanceN", "negative n")
	}
	for n > 0 {
		if s.span.Empty() {
			if !s.flipIfQueued() {
				faultf("AdvanceN", "advanced past the verified readable count")
			}
		}
		take := n
		if take > s.span.Len() {
			take = s.span.Len()
		}
		s.span.start += take
		s.consume(take)
		n -= take
	}
}

// PeekAt returns the byte at offset k from the current position, confined
// to the current span — no cross-page lookahead. Hard fault if k is beyond
// the span.
func (s *InputStream) PeekAt(k int) byte {
	if k < 0 || k >= s.span.Len() {
		faultf("PeekAt", "k beyond the current span")
	}
	return s.span.at(k)
}

// LookAheadMatch compares pattern against the next len(pattern) bytes via
// PeekAt. Presupposes the caller already verified ReadableN(len(pattern))
// and that the window lies in one span; PeekAt's own hard fault enforces
// this rather than a duplicate check here.
func (s *InputStream) LookAheadMatch(pattern []byte) bool {
	for i, want := range pattern {
		if s.PeekAt(i) != want {
			return false
		}
	}
	return true
}

// ReadIntoEx drains the current span into dst, then whole buffered pages,
// then the source directly (bypassing pages) until dst is full or EOF.
// Returns the number of bytes actually produced. A short count (less than
// len(dst)) with a nil error means the stream has nothing more to give: EOF
// was reached, or dst was cut to what is left of an active
// WithReadableRange or WithReadLimit budget. In nonblocking mode (see
// WithNonblock) a short count can instead come with ErrWouldBlock.
func (s *InputStream) ReadIntoEx(dst []byte) (int, error) {
	if s.rangeLimit != nil && int64(len(dst)) > *s.rangeLimit {
		dst = dst[:max(*s.rangeLimit, 0)]
	}
	if s.cfg.readLimit > 0 && int64(len(dst)) > s.cfg.readLimit-s.pos {
		dst = dst[:max(s.cfg.readLimit-s.pos, 0)]
	}
	total := 0
	if s.span.HasRunway() {
		n := copy(dst, s.span.Bytes())
		s.span.start += n
		s.consume(n)
		total += n
	}
	for total < len(dst) && s.span.Empty() && s.flipIfQueued() {
		n := copy(dst[total:], s.span.Bytes())
		s.span.start += n
		s.consume(n)
		total += n
	}
	for total < len(dst) {
		if s.rangeLimit != nil {
			break
		}
		call := s.source.ReadSync
		if call == nil {
			call = s.source.ReadAsync
		}
		if call == nil {
			break
		}
		n, err := call(dst[total:])
		total += n
		s.consume(n)
		if !s.recordProduced(n) {
			s.err = ErrTooLong
			s.disconnectSource()
			return total, ErrTooLong
		}
		switch err {
		case nil:
			continue
		case io.EOF:
			if s.buffers != nil {
				s.buffers.MarkEOF()
			}
			s.disconnectSource()
			return total, nil
		case ErrMore, ErrWouldBlock:
			if s.waiter == nil {
				return total, ErrWouldBlock
			}
			if wErr := s.waiter.Wait(context.Background()); wErr != nil {
				s.err = wErr
				return total, wErr
			}
			continue
		default:
			s.err = errors.Wrap(err, "pagestream: source read")
			return total, s.err
		}
	}
	return total, nil
}

// ReadInto reports whether dst was filled completely.
func (s *InputStream) ReadInto(dst []byte) (bool, error) {
	n, err := s.ReadIntoEx(dst)
	return n == len(dst), err
}

// ReadN returns a view of the next n bytes. If the current span alone
// already holds n bytes, the view aliases the span directly — zero copy.
// Otherwise it allocates a buffer and drains into it via ReadIntoEx (Go's
// escape analysis decides stack vs heap; there is no manual placement
// control). The returned view is valid only until the stream's next
// mutating call.
func (s *InputStream) ReadN(n int) []byte {
	if n < 0 {
		faultf("ReadN", "negative n")
	}
	if n == 0 {
		return nil
	}
	if s.span.Len() >= n {
		v := s.span.Bytes()[:n]
		s.span.start += n
		s.consume(n)
		return v
	}
	buf := make([]byte, n)
	got, _ := s.ReadIntoEx(buf)
	if got < n {
		faultf("ReadN", "n exceeds the consumable remainder")
	}
	return buf
}

// Next returns the next byte, or ok == false at EOF.
func (s *InputStream) Next() (b byte, ok bool) {
	if !s.Readable() {
		return 0, false
	}
	return s.ReadByte(), true
}

// Pos returns the logical byte index of the next byte to be read.
func (s *InputStream) Pos() int64 { return s.pos }

// Len returns the bytes still available, if known. With no source at all
// it is whatever remains buffered (or the fixed span); otherwise it
// delegates to the source's GetLen, which may be absent.
func (s *InputStream) Len() (int64, bool) {
	if s.source.GetLen != nil {
		return s.source.GetLen()
	}
	if s.source.ReadSync == nil && s.source.ReadAsync == nil {
		// No capability will ever add more bytes beyond what is already
		// spanned or queued, so the remaining length is just the runway.
		return s.limitedRunway(), true
	}
	return 0, false
}

// Err returns the last non-EOF, non-ErrWouldBlock error observed by a
// refill or bypass read, or nil.
func (s *InputStream) Err() error { return s.err }

func (s *InputStream) String() string {
	state := "open"
	switch {
	case s.closed:
		state = "closed"
	case s.sourceGone():
		state = "draining"
	}
	return fmt.Sprintf("InputStream{pos=%s, unconsumed=%s, state=%s}",
		humanize.Comma(s.pos), humanize.Bytes(uint64(s.limitedRunway())), state)
}

// TimeoutToNextByte races a refill against deadline. If a byte is already
// available it returns true immediately without touching the source.
func (s *InputStream) TimeoutToNextByte(deadline time.Time) bool {
	if s.ReadableNow() {
		return true
	}
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()
	return s.refillUntil(ctx, 1)
}

// Close releases the page source using this stream's configured
// ClosePolicy. Idempotent: calling it again is a no-op.
func (s *InputStream) Close() error {
	return s.close(s.cfg.closePolicy)
}

// CloseWithPolicy releases the page source using an explicit policy,
// overriding the stream's configured default for this call.
func (s *InputStream) CloseWithPolicy(p ClosePolicy) error {
	return s.close(p)
}

func (s *InputStream) close(policy ClosePolicy) error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	switch {
	case s.source.CloseAsync != nil:
		err = s.closeAsync(policy)
	case s.source.CloseSync != nil:
		err = s.source.CloseSync()
	}
	s.source = PageSource{}
	s.span = PageSpan{}
	s.buffers = nil
	if err == nil {
		return nil
	}
	if policy == DontWait {
		s.cfg.logger.Warn("pagestream: close failed", "error", err)
		return nil
	}
	return errors.Wrap(err, "pagestream: close")
}

func (s *InputStream) closeAsync(policy ClosePolicy) error {
	if policy == DontWait {
		closeFn := s.source.CloseAsync
		go func() {
			for {
				err := closeFn()
				if err == nil {
					return
				}
				if err != ErrMore {
					s.cfg.logger.Warn("pagestream: async close failed", "error", err)
					return
				}
				runtime.Gosched()
			}
		}()
		return nil
	}
	for {
		err := s.source.CloseAsync()
		if err == nil {
			return nil
		}
		if err != ErrMore {
			return err
		}
		runtime.Gosched()
	}
}

// WithReadableRange confines body to a budget of n bytes: it hides the
// source capability (so body cannot trigger a refill) and caps readability
// to whatever is left of n as body consumes bytes. The source and any
// outer range are restored on return, normal or panicking.
func (s *InputStream) WithReadableRange(n int, body func(*InputStream) error) error {
	if !s.ReadableN(n) {
		faultf("WithReadableRange", "n exceeds the consumable remainder")
	}
	savedSource := s.source
	savedLimit := s.rangeLimit
	limit := int64(n)
	s.source = PageSource{}
	s.rangeLimit = &limit
	defer func() {
		// limit was decremented in place by every consume() inside body;
		// fold that consumption back into the outer budget before it is
		// restored, or a nested range's reads would never count against it.
		if savedLimit != nil {
			*savedLimit -= int64(n) - limit
		}
		s.source = savedSource
		s.rangeLimit = savedLimit
	}()
	return body(s)
}
