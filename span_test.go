// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import "testing"

func TestPageSpan_LenEmptyHasRunway(t *testing.T) {
	data := []byte("hello world")
	s := spanOf(data, 2, 7)

	if got, want := s.Len(), 5; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if s.Empty() {
		t.Fatalf("Empty() = true, want false")
	}
	if !s.HasRunway() {
		t.Fatalf("HasRunway() = false, want true")
	}
	if got, want := string(s.Bytes()), "llo w"; got != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestPageSpan_EmptySpan(t *testing.T) {
	s := spanOf([]byte("x"), 1, 1)
	if !s.Empty() {
		t.Fatalf("Empty() = false, want true")
	}
	if s.HasRunway() {
		t.Fatalf("HasRunway() = true, want false")
	}
	if got := s.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
}

func TestPageSpan_At(t *testing.T) {
	s := spanOf([]byte("abcdef"), 2, 5)
	if got, want := s.at(0), byte('c'); got != want {
		t.Fatalf("at(0) = %q, want %q", got, want)
	}
	if got, want := s.at(2), byte('e'); got != want {
		t.Fatalf("at(2) = %q, want %q", got, want)
	}
}

func TestPageSpan_ZeroValue(t *testing.T) {
	var s PageSpan
	if s.HasRunway() {
		t.Fatalf("zero-value PageSpan reports runway")
	}
	if !s.Empty() {
		t.Fatalf("zero-value PageSpan is not reported empty")
	}
}
