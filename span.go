// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

// PageSpan is a contiguous, non-owning window of readable bytes backed by
// either a Page's buffer or an immutable external byte slice (unsafe-memory
// or a memory-mapped file). The invariant start <= end always holds.
type PageSpan struct {
	data       []byte
	start, end int
}

// spanOf builds a PageSpan over data[start:end]. Callers own the invariant
// start <= end <= len(data); it is not re-checked here since every call
// site already derives start/end from a trusted length.
func spanOf(data []byte, start, end int) PageSpan {
	return PageSpan{data: data, start: start, end: end}
}

// Len returns end - start: the number of bytes immediately consumable from
// this span without any refill or page flip — the stream's "runway".
func (s PageSpan) Len() int { return s.end - s.start }

// Empty reports whether the span has no runway.
func (s PageSpan) Empty() bool { return s.start == s.end }

// HasRunway is the single hot-path predicate: one comparison of two
// integers, no function calls, no dereferences beyond the span value
// itself.
func (s PageSpan) HasRunway() bool { return s.end > s.start }

// Bytes returns the readable window as a slice. The slice aliases the
// span's backing storage and is invalidated by the next mutating operation
// on the owning InputStream (advance, refill, flip, close).
func (s PageSpan) Bytes() []byte { return s.data[s.start:s.end] }

// at returns the byte at offset k from the start of the span without
// bounds checking beyond a hard fault; callers must have verified
// k < s.Len().
func (s PageSpan) at(k int) byte { return s.data[s.start+k] }
