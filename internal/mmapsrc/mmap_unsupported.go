// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !unix && !windows

package mmapsrc

import (
	"os"

	"github.com/pkg/errors"
)

// Mapping is a read-only memory-mapped view of part of a file.
type Mapping struct{}

// Map always fails: no mmap implementation exists for this platform.
func Map(f *os.File, offset int64, length int) (*Mapping, error) {
	return nil, errors.New("mmapsrc: unsupported platform")
}

// Bytes always returns nil on this platform.
func (m *Mapping) Bytes() []byte { return nil }

// Close is a no-op on this platform.
func (m *Mapping) Close() error { return nil }
