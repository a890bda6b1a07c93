// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

// Page is a fixed-capacity owned byte buffer that a PageSource fills and
// PageBuffers queues as the FIFO unit of buffered data. Invariant:
// 0 <= consumedTo <= writtenTo <= len(data). The readable region is
// data[consumedTo:writtenTo].
type Page struct {
	data       []byte
	consumedTo int
	writtenTo  int
	next       *Page // intrusive FIFO link, owned exclusively by PageBuffers
}

func newPage(capacity int) *Page {
	return &Page{data: make([]byte, capacity)}
}

// Capacity returns the page's fixed allocation size.
func (p *Page) Capacity() int { return len(p.data) }

// Readable returns the page's current readable span.
func (p *Page) Readable() PageSpan {
	return spanOf(p.data, p.consumedTo, p.writtenTo)
}

// WritableTail returns the unwritten suffix of the page's buffer, for a
// PageSource to fill via a direct read call.
func (p *Page) WritableTail() []byte { return p.data[p.writtenTo:] }

// CommitWrite records that n bytes were written into WritableTail by the
// source. It is a hard fault to commit past the page's capacity.
func (p *Page) CommitWrite(n int) {
	if n < 0 || p.writtenTo+n > len(p.data) {
		faultf("Page.CommitWrite", "n exceeds remaining capacity")
	}
	p.writtenTo += n
}

// Exhausted reports whether every written byte has been consumed.
func (p *Page) Exhausted() bool { return p.consumedTo >= p.writtenTo }

func (p *Page) remaining() int { return p.writtenTo - p.consumedTo }
