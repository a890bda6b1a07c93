// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// PageBuffers is the FIFO queue of pages buffered ahead of the stream's
// currently active span. The page backing the active span has already left
// the queue (see AdvanceToNextReadableSpan); TotalBufferedBytes therefore
// never double-counts it, which is what lets InputStream compute its
// "runway" as span.Len() + buffers.TotalBufferedBytes() without any extra
// synchronization on the hot path.
type PageBuffers struct {
	pageSize           int
	head, tail         *Page
	count              int
	totalBufferedBytes int64
	eofReached         bool
}

// NewPageBuffers creates an empty queue whose pages are allocated with the
// given capacity. A non-positive pageSize falls back to DefaultPageSize.
func NewPageBuffers(pageSize int) *PageBuffers {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PageBuffers{pageSize: pageSize}
}

// PageSize returns the allocation granule new pages are created with.
func (b *PageBuffers) PageSize() int { return b.pageSize }

// PushWritablePage allocates a fresh page, appends it to the tail of the
// queue, and returns it so a PageSource can fill it. It is a hard fault to
// push once MarkEOF has been called: EOF means no further data will ever
// arrive, so a subsequent push can only be a caller bug.
func (b *PageBuffers) PushWritablePage() *Page {
	if b.eofReached {
		faultf("PageBuffers.PushWritablePage", "cannot push a page after MarkEOF")
	}
	p := newPage(b.pageSize)
	if b.tail == nil {
		b.head, b.tail = p, p
	} else {
		b.tail.next = p
		b.tail = p
	}
	b.count++
	return p
}

// CommitPage records that n bytes were written into p (normally the most
// recently pushed page) and folds them into TotalBufferedBytes.
func (b *PageBuffers) CommitPage(p *Page, n int) {
	p.CommitWrite(n)
	b.totalBufferedBytes += int64(n)
}

// Front returns the current head page, or nil if the queue is empty.
func (b *PageBuffers) Front() *Page { return b.head }

// Len returns the number of pages currently queued.
func (b *PageBuffers) Len() int { return b.count }

// HasQueuedPage reports whether a page beyond the active span is already
// buffered, i.e. whether a flip can proceed without touching the source.
func (b *PageBuffers) HasQueuedPage() bool { return b.head != nil }

// TotalBufferedBytes returns the sum of unconsumed bytes across queued
// pages, excluding whatever page currently backs the stream's active span.
func (b *PageBuffers) TotalBufferedBytes() int64 { return b.totalBufferedBytes }

// EOFReached reports whether MarkEOF has been called.
func (b *PageBuffers) EOFReached() bool { return b.eofReached }

// MarkEOF records that the source will never produce another byte. It is
// idempotent.
func (b *PageBuffers) MarkEOF() { b.eofReached = true }

// popFront unlinks and returns the current head page, adjusting
// totalBufferedBytes by whatever unconsumed remainder it carried.
func (b *PageBuffers) popFront() *Page {
	p := b.head
	if p == nil {
		return nil
	}
	b.head = p.next
	if b.head == nil {
		b.tail = nil
	}
	p.next = nil
	b.count--
	b.totalBufferedBytes -= int64(p.remaining())
	return p
}

// PopFirst unlinks and returns the front queued page without adopting it as
// the stream's span; its unconsumed bytes are dropped from
// TotalBufferedBytes.
func (b *PageBuffers) PopFirst() *Page { return b.popFront() }

// ReadableSpanOfFront returns the readable region of the front page without
// removing it from the queue, or an empty span if the queue is empty.
func (b *PageBuffers) ReadableSpanOfFront() PageSpan {
	if b.head == nil {
		return PageSpan{}
	}
	return b.head.Readable()
}

// AdvanceToNextReadableSpan implements the stream's page flip: it removes
// the front page from the queue entirely and hands its readable region back
// as the stream's next active span. The spent page the stream was
// previously reading from is not queue state at all — once a page is
// adopted as the active span it already left the queue (see the type doc)
// — so a flip is a single pop, not a pop-the-old-plus-pop-the-new pair.
// This same operation also adopts the very first page a refill produces
// when the stream started out with an empty span and an empty queue.
//
// Returns (PageSpan{}, false) if no page is queued; the caller must then
// refill from the source instead of flipping.
func (b *PageBuffers) AdvanceToNextReadableSpan() (PageSpan, bool) {
	next := b.popFront()
	if next == nil {
		return PageSpan{}, false
	}
	return next.Readable(), true
}

func (b *PageBuffers) String() string {
	return "PageBuffers{pages=" + strconv.Itoa(b.count) + ", buffered=" +
		humanize.Bytes(uint64(b.totalBufferedBytes)) + "}"
}
