// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// FileInput opens path for buffered, synchronous reading. pageSize (via
// WithPageSize) is the allocation granule each refill reads into. offset
// seeks to a starting position before the first read.
//
// Construction errors: ErrFileNotFound if path does not exist, or a wrapped
// I/O error for anything else os.Open/Seek report.
func FileInput(path string, offset int64, opts ...Option) (*InputStream, error) {
	cfg := buildConfig(opts)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, errors.Wrap(err, "pagestream: open")
	}
	if offset != 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "pagestream: seek")
		}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "pagestream: stat")
	}
	readPos := offset

	s := newInputStream(cfg, PageSource{CloseSync: f.Close})
	var scratch []byte
	s.source.ReadSync = func(dst []byte) (int, error) {
		if dst != nil {
			n, err := f.Read(dst)
			readPos += int64(n)
			return n, mapReadErr(err)
		}
		if scratch == nil {
			scratch = make([]byte, s.buffers.PageSize())
		}
		n, err := io.ReadFull(f, scratch)
		// io.ReadFull on a short final read returns ErrUnexpectedEOF; a
		// buffered file's last page is legitimately partial, so treat both
		// EOF flavors as a clean end of file.
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		// A page is pushed only once bytes arrive, so reaching EOF never
		// leaves an empty page queued.
		if n > 0 {
			page := s.buffers.PushWritablePage()
			s.buffers.CommitPage(page, copy(page.WritableTail(), scratch[:n]))
		}
		readPos += int64(n)
		return n, mapReadErr(err)
	}
	// readPos tracks how much of the file has been pulled into pages or
	// handed straight to a bypass reader; s.runway() covers what has been
	// pulled but not yet consumed, so the two together give the consumer's
	// true remaining count, not the file descriptor's.
	s.source.GetLen = func() (int64, bool) {
		return info.Size() - readPos + s.runway(), true
	}
	return s, nil
}

func mapReadErr(err error) error {
	switch err {
	case nil, io.EOF:
		return err
	default:
		return errors.Wrap(err, "pagestream: read")
	}
}
