// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileInput_LenAccountsForPrefetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	want := []byte("0123456789")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := FileInput(path, 0, WithPageSize(4))
	if err != nil {
		t.Fatalf("FileInput: %v", err)
	}
	defer s.Close()

	if !s.ReadableN(10) {
		t.Fatalf("ReadableN(10) = false")
	}
	n, ok := s.Len()
	if !ok || n != 10 {
		t.Fatalf("Len() after prefetch = (%d, %v), want (10, true)", n, ok)
	}
	s.AdvanceN(4)
	n, ok = s.Len()
	if !ok || n != 6 {
		t.Fatalf("Len() after consuming 4 = (%d, %v), want (6, true)", n, ok)
	}
}

func TestFileInput_WithOffset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := FileInput(path, 3, WithPageSize(4))
	if err != nil {
		t.Fatalf("FileInput: %v", err)
	}
	defer s.Close()

	got := s.ReadN(len("3456789"))
	if string(got) != "3456789" {
		t.Fatalf("ReadN = %q, want %q", got, "3456789")
	}
}
