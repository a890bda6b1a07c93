// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import (
	"log/slog"
	"runtime"

	"github.com/google/uuid"
)

// Handle is a move-only owner of an *InputStream. Go has no destructors and
// no move semantics, so Handle approximates both: NewHandle tags the stream
// with a diagnostic id and arms a finalizer that warns if the handle is
// garbage collected while still open, and Close (or Take, which hands the
// stream to a new owner) disarms it. Copying a Handle by value and using
// both copies is a programmer error the type cannot prevent; treat it like
// a *sync.Mutex and pass it by pointer or move it by reassignment only.
type Handle struct {
	id     uuid.UUID
	stream *InputStream
	logger *slog.Logger
	taken  bool
}

// NewHandle wraps s under a fresh diagnostic id.
func NewHandle(s *InputStream) *Handle {
	h := &Handle{id: uuid.New(), stream: s, logger: s.cfg.logger}
	runtime.SetFinalizer(h, (*Handle).finalize)
	return h
}

// ID returns the handle's diagnostic identifier, stable for its lifetime.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Stream returns the owned stream. Panics if the handle has already been
// closed or its ownership taken.
func (h *Handle) Stream() *InputStream {
	if h.stream == nil {
		faultf("handle.stream", "use after close or take")
	}
	return h.stream
}

// Take transfers ownership out of h, which becomes unusable. The caller is
// responsible for eventually closing the returned stream.
func (h *Handle) Take() *InputStream {
	s := h.Stream()
	h.taken = true
	h.stream = nil
	runtime.SetFinalizer(h, nil)
	return s
}

// Close releases the owned stream with policy and disarms the leak
// finalizer. Calling Close after Take, or calling it twice, is a no-op.
func (h *Handle) Close(policy ClosePolicy) error {
	if h.stream == nil {
		return nil
	}
	s := h.stream
	h.stream = nil
	runtime.SetFinalizer(h, nil)
	return s.CloseWithPolicy(policy)
}

func (h *Handle) finalize() {
	if h.stream == nil || h.taken {
		return
	}
	h.logger.Warn("pagestream: handle garbage collected while still open",
		"handle_id", h.id.String())
	_ = h.stream.CloseWithPolicy(DontWait)
}
