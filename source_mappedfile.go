// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import (
	"os"

	"github.com/pkg/errors"

	"go.pagestream.dev/pagestream/internal/bo"
	"go.pagestream.dev/pagestream/internal/mmapsrc"
)

// MappedFileInput memory-maps path read-only starting at offset, which must
// be a multiple of the host's page size, for mappedSize bytes (0 means "to
// end of file"). No refill is ever needed: the mapping itself is the
// stream's single fixed span. An empty file, or an offset landing exactly
// at end of file, yields a permanently-empty stream rather than an error.
func MappedFileInput(path string, offset int64, mappedSize int64, opts ...Option) (*InputStream, error) {
	cfg := buildConfig(opts)
	if offset%int64(bo.Default()) != 0 {
		return nil, ErrInvalidOffset
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, errors.Wrap(err, "pagestream: open")
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "pagestream: stat")
	}
	available := info.Size() - offset
	if available < 0 {
		f.Close()
		return nil, ErrInvalidOffset
	}
	if mappedSize <= 0 || mappedSize > available {
		mappedSize = available
	}
	if mappedSize == 0 {
		f.Close()
		return newFixedSpanStream(cfg, PageSource{}, nil), nil
	}
	mapping, err := mmapsrc.Map(f, offset, int(mappedSize))
	if err != nil {
		f.Close()
		return nil, err
	}
	closed := false
	src := PageSource{
		CloseSync: func() error {
			if closed {
				return nil
			}
			closed = true
			err := mapping.Close()
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}
	s := newFixedSpanStream(cfg, src, mapping.Bytes())
	s.source.GetLen = func() (int64, bool) { return int64(s.span.Len()), true }
	return s, nil
}
