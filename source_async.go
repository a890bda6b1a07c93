// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"go.pagestream.dev/pagestream/internal/waiter"
)

// AsyncReader is an externally-supplied device capable of a blocking read
// and a close. AsyncInput runs the Read calls that refill pages on a
// background goroutine, one call at a time, so the stream does not block on
// them. A bypass read (ReadIntoEx draining past the buffered data) calls
// Read directly on the caller's goroutine and blocks until it returns.
type AsyncReader interface {
	Read(dst []byte) (int, error)
	Close() error
}

type asyncResult struct {
	n   int
	err error
}

// AsyncInput wraps device as a non-blocking page source. At most one
// background read is ever in flight, enforced by a weight-1 semaphore; the
// background goroutine fills a private buffer and hands it to the stream
// only once the stream itself polls for it, so PageBuffers is never touched
// outside the stream's own goroutine.
func AsyncInput(device AsyncReader, opts ...Option) *InputStream {
	cfg := buildConfig(opts)
	sem := semaphore.NewWeighted(1)
	sig := waiter.NewSignal()

	var (
		pending chan asyncResult
		scratch []byte
	)

	s := newInputStream(cfg, PageSource{})
	s.waiter = sig

	s.source.ReadAsync = func(dst []byte) (int, error) {
		if dst != nil {
			if !sem.TryAcquire(1) {
				return 0, ErrMore
			}
			defer sem.Release(1)
			n, err := device.Read(dst)
			if err != nil && err != io.EOF {
				return n, errors.Wrap(err, "pagestream: async read")
			}
			return n, err
		}

		if pending == nil {
			if !sem.TryAcquire(1) {
				return 0, ErrMore
			}
			scratch = make([]byte, s.buffers.PageSize())
			pending = make(chan asyncResult, 1)
			ch := pending
			buf := scratch
			go func() {
				n, err := device.Read(buf)
				ch <- asyncResult{n: n, err: err}
				sig.Notify()
			}()
			return 0, ErrMore
		}

		select {
		case res := <-pending:
			pending = nil
			sem.Release(1)
			if res.err != nil && res.err != io.EOF {
				return 0, errors.Wrap(res.err, "pagestream: async read")
			}
			if res.n > 0 {
				page := s.buffers.PushWritablePage()
				copy(page.WritableTail(), scratch[:res.n])
				s.buffers.CommitPage(page, res.n)
			}
			if res.err == io.EOF {
				return res.n, io.EOF
			}
			return res.n, nil
		default:
			return 0, ErrMore
		}
	}

	s.source.CloseAsync = func() error {
		return device.Close()
	}
	return s
}
