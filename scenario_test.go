// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

var scenarioPageSizes = []int{DefaultPageSize, 10, 1}

// countLines consumes only Readable/ReadByte, proving the core byte API is
// sufficient for line-oriented scans without a dedicated line-reader type.
func countLines(s *InputStream) int {
	n := 0
	for s.Readable() {
		if s.ReadByte() == '\n' {
			n++
		}
	}
	return n
}

func TestScenario_LineCount(t *testing.T) {
	for _, ps := range scenarioPageSizes {
		t.Run(psName(ps), func(t *testing.T) {
			s, err := FileInput("testdata/ascii_table.txt", 0, WithPageSize(ps))
			if err != nil {
				t.Fatalf("FileInput: %v", err)
			}
			defer s.Close()
			if got, want := countLines(s), 34; got != want {
				t.Fatalf("countLines() = %d, want %d", got, want)
			}
		})
	}
}

func TestScenario_EmptySources(t *testing.T) {
	dir := t.TempDir()
	emptyPath := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(emptyPath, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	for _, ps := range scenarioPageSizes {
		t.Run(psName(ps)+"/file", func(t *testing.T) {
			s, err := FileInput(emptyPath, 0, WithPageSize(ps))
			if err != nil {
				t.Fatalf("FileInput: %v", err)
			}
			defer s.Close()
			assertEmptySource(t, s)
		})
		t.Run(psName(ps)+"/memory", func(t *testing.T) {
			s := MemoryInput(nil, WithPageSize(ps))
			defer s.Close()
			assertEmptySource(t, s)
		})
	}
}

func assertEmptySource(t *testing.T, s *InputStream) {
	t.Helper()
	if s.Readable() {
		t.Fatalf("Readable() = true on an empty source")
	}
	if s.ReadableN(10) {
		t.Fatalf("ReadableN(10) = true on an empty source")
	}
	if _, ok := s.Next(); ok {
		t.Fatalf("Next() ok = true on an empty source")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("ReadByte on an empty source did not panic")
		}
	}()
	s.ReadByte()
}

func TestScenario_MissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.txt")

	_, err := FileInput(path, 0)
	if err != ErrFileNotFound {
		t.Fatalf("FileInput error = %v, want ErrFileNotFound", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("FileInput on a missing path created a file")
	}
}

func TestScenario_MixedRandomReads(t *testing.T) {
	rng := rand.New(rand.NewSource(10000))
	want := make([]byte, 5000)
	for i := range want {
		want[i] = byte(rng.Intn(256))
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "random.bin")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	for _, ps := range scenarioPageSizes {
		t.Run(psName(ps), func(t *testing.T) {
			s, err := FileInput(path, 0, WithPageSize(ps))
			if err != nil {
				t.Fatalf("FileInput: %v", err)
			}
			defer s.Close()

			var got []byte
			ops := rand.New(rand.NewSource(10000))
			for s.Readable() {
				switch roll := ops.Intn(100); {
				case roll < 20:
					n := 1 + ops.Intn(11)
					buf := make([]byte, n)
					m, _ := s.ReadIntoEx(buf)
					got = append(got, buf[:m]...)
				case roll < 50:
					n := 6 + ops.Intn(11)
					if s.ReadableN(n) {
						got = append(got, s.ReadN(n)...)
					}
				default:
					if b, ok := s.Next(); ok {
						got = append(got, b)
					}
				}
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("concatenation mismatch: got %d bytes, want %d bytes", len(got), len(want))
			}
		})
	}
}

func TestScenario_ZeroCopyHead(t *testing.T) {
	data := []byte(strings.Repeat("1234 5678 90AB CDEF\n", 1000))
	s := MemoryInput(data, WithPageSize(DefaultPageSize))
	defer s.Close()

	if !s.ReadableN(4) {
		t.Fatalf("ReadableN(4) = false")
	}
	view := s.ReadN(4)
	if string(view) != "1234" {
		t.Fatalf("ReadN(4) = %q, want %q", view, "1234")
	}
}

func TestScenario_ScopedRange(t *testing.T) {
	data := bytes.Repeat([]byte{'x'}, 100)
	s := MemoryInput(data, WithPageSize(16))
	defer s.Close()

	if !s.ReadableN(100) {
		t.Fatalf("ReadableN(100) = false")
	}

	err := s.WithReadableRange(5, func(inner *InputStream) error {
		if !inner.ReadableN(5) {
			t.Fatalf("inner.ReadableN(5) = false")
		}
		if inner.ReadableN(6) {
			t.Fatalf("inner.ReadableN(6) = true, want false")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithReadableRange: %v", err)
	}
}

func psName(n int) string {
	if n == DefaultPageSize {
		return "pageSize=default"
	}
	return "pageSize=" + strconv.Itoa(n)
}
