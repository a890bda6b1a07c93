// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package mmapsrc

import (
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// Mapping is a read-only memory-mapped view of part of a file.
type Mapping struct {
	data   []byte
	handle windows.Handle
}

// Map memory-maps length bytes of f starting at offset, which must be a
// multiple of the system allocation granularity.
func Map(f *os.File, offset int64, length int) (*Mapping, error) {
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, errors.Wrap(err, "mmapsrc: CreateFileMapping")
	}
	hi := uint32(offset >> 32)
	lo := uint32(offset & 0xffffffff)
	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, hi, lo, uintptr(length))
	if err != nil {
		windows.CloseHandle(h)
		return nil, errors.Wrap(err, "mmapsrc: MapViewOfFile")
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
	return &Mapping{data: data, handle: h}, nil
}

// Bytes returns the mapped region. Valid until Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Close unmaps the region. Idempotent.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&m.data[0]))
	err := windows.UnmapViewOfFile(addr)
	windows.CloseHandle(m.handle)
	m.data = nil
	if err != nil {
		return errors.Wrap(err, "mmapsrc: UnmapViewOfFile")
	}
	return nil
}
