// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import "io"

// UnsafeMemory returns a zero-copy stream over data: the caller guarantees
// data outlives the stream and is never mutated while it is in use. The
// whole slice becomes the stream's single fixed span; buffers is nil and
// no refill is ever attempted.
func UnsafeMemory(data []byte, opts ...Option) *InputStream {
	cfg := buildConfig(opts)
	return newFixedSpanStream(cfg, PageSource{}, data)
}

// MemoryInput copies data into stream-owned pages of cfg.pageSize bytes,
// exercising the same page/buffer/refill machinery a file or device source
// would. Useful for deterministic tests of the paged path without real I/O.
func MemoryInput(data []byte, opts ...Option) *InputStream {
	cfg := buildConfig(opts)
	pos := 0
	s := newInputStream(cfg, PageSource{})
	s.source.ReadSync = func(dst []byte) (int, error) {
		if dst != nil {
			if pos >= len(data) {
				return 0, io.EOF
			}
			n := copy(dst, data[pos:])
			pos += n
			if pos >= len(data) {
				return n, io.EOF
			}
			return n, nil
		}
		if pos >= len(data) {
			return 0, io.EOF
		}
		page := s.buffers.PushWritablePage()
		n := copy(page.WritableTail(), data[pos:])
		s.buffers.CommitPage(page, n)
		pos += n
		if pos >= len(data) {
			return n, io.EOF
		}
		return n, nil
	}
	// pos tracks how much of data the source has pulled into pages or handed
	// straight to a bypass reader; s.runway() covers what has been pulled
	// but not yet consumed, so the two together give the consumer's true
	// remaining count rather than the source's.
	s.source.GetLen = func() (int64, bool) {
		return int64(len(data)-pos) + s.runway(), true
	}
	return s
}
