// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import "testing"

func TestUnsafeMemory_LenShrinksAsConsumed(t *testing.T) {
	s := UnsafeMemory([]byte("abcdef"))
	n, ok := s.Len()
	if !ok || n != 6 {
		t.Fatalf("Len() = (%d, %v), want (6, true)", n, ok)
	}
	s.AdvanceN(4)
	n, ok = s.Len()
	if !ok || n != 2 {
		t.Fatalf("Len() after consuming 4 = (%d, %v), want (2, true)", n, ok)
	}
}

func TestMemoryInput_RoundTripsViaPages(t *testing.T) {
	data := []byte("a paged read-back through MemoryInput's own pages")
	s := MemoryInput(data, WithPageSize(7))
	defer s.Close()

	var got []byte
	for {
		b, ok := s.Next()
		if !ok {
			break
		}
		got = append(got, b)
	}
	if string(got) != string(data) {
		t.Fatalf("round trip = %q, want %q", got, data)
	}
}

func TestMemoryInput_LenShrinksAsConsumed(t *testing.T) {
	s := MemoryInput([]byte("abcdef"), WithPageSize(2))
	defer s.Close()

	// ReadableN(6) prefetches every page ahead of any actual consumption;
	// Len() must still report the consumer's remaining count, not the
	// source's already-exhausted one.
	if !s.ReadableN(6) {
		t.Fatalf("ReadableN(6) = false")
	}
	n, ok := s.Len()
	if !ok || n != 6 {
		t.Fatalf("Len() after a full prefetch = (%d, %v), want (6, true)", n, ok)
	}
	s.AdvanceN(3)
	n, ok = s.Len()
	if !ok || n != 3 {
		t.Fatalf("Len() after consuming 3 = (%d, %v), want (3, true)", n, ok)
	}
}
