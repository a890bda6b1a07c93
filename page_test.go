// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pagestream

import "testing"

func TestPage_WriteThenConsume(t *testing.T) {
	p := newPage(8)
	if got, want := p.Capacity(), 8; got != want {
		t.Fatalf("Capacity() = %d, want %d", got, want)
	}
	if !p.Readable().Empty() {
		t.Fatalf("fresh page reports a non-empty readable span")
	}

	n := copy(p.WritableTail(), []byte("abcd"))
	p.CommitWrite(n)

	span := p.Readable()
	if got, want := string(span.Bytes()), "abcd"; got != want {
		t.Fatalf("Readable().Bytes() = %q, want %q", got, want)
	}
	if p.Exhausted() {
		t.Fatalf("Exhausted() = true before any consumption")
	}

	p.consumedTo += span.Len()
	if !p.Exhausted() {
		t.Fatalf("Exhausted() = false after consuming the whole written region")
	}
}

func TestPage_CommitWriteFaultsPastCapacity(t *testing.T) {
	p := newPage(4)
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("CommitWrite past capacity did not panic")
		} else if _, ok := r.(*ProgrammerError); !ok {
			t.Fatalf("panic value = %#v, want *ProgrammerError", r)
		}
	}()
	p.CommitWrite(5)
}

func TestPage_Remaining(t *testing.T) {
	p := newPage(8)
	p.CommitWrite(6)
	p.consumedTo = 2
	if got, want := p.remaining(), 4; got != want {
		t.Fatalf("remaining() = %d, want %d", got, want)
	}
}
