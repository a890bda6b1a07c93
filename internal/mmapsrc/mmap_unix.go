// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package mmapsrc

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Mapping is a read-only memory-mapped view of part of a file.
type Mapping struct {
	data []byte
}

// Map memory-maps length bytes of f starting at offset, which must be a
// multiple of os.Getpagesize().
func Map(f *os.File, offset int64, length int) (*Mapping, error) {
	data, err := unix.Mmap(int(f.Fd()), offset, length, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, "mmapsrc: mmap")
	}
	return &Mapping{data: data}, nil
}

// Bytes returns the mapped region. Valid until Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Close unmaps the region. Idempotent.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	if err != nil {
		return errors.Wrap(err, "mmapsrc: munmap")
	}
	return nil
}
