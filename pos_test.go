package textsync

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCharByteConversions(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	text := FromString("héllo") // h(1) é(2) l(1) l(1) o(1)
	byteForChar := []uint64{0, 1, 3, 4, 5, 6}
	for chars, want := range byteForChar {
		got, err := text.ByteForChar(uint64(chars))
		if err != nil {
			t.Fatalf("ByteForChar(%d) failed: %v", chars, err)
		}
		if got != want {
			t.Errorf("ByteForChar(%d) = %d, want %d", chars, got, want)
		}
		back, err := text.CharForByte(want)
		if err != nil {
			t.Fatalf("CharForByte(%d) failed: %v", want, err)
		}
		if back != uint64(chars) {
			t.Errorf("CharForByte(%d) = %d, want %d", want, back, chars)
		}
	}
	if _, err := text.ByteForChar(6); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if _, err := text.CharForByte(2); !errors.Is(err, ErrMisalignedBoundary) {
		t.Errorf("expected ErrMisalignedBoundary for mid-scalar offset, got %v", err)
	}
}

func TestUTF16ByteConversions(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	text := FromString("a\U0001F600b") // a(1 unit) emoji(2 units) b(1 unit)
	type tc struct {
		units uint64
		b     uint64
		split bool
	}
	cases := []tc{
		{units: 0, b: 0},
		{units: 1, b: 1},
		{units: 2, b: 1, split: true}, // between the surrogate halves
		{units: 3, b: 5},
		{units: 4, b: 6},
	}
	for _, c := range cases {
		b, split, err := text.ByteForUTF16(c.units)
		if err != nil {
			t.Fatalf("ByteForUTF16(%d) failed: %v", c.units, err)
		}
		if b != c.b || split != c.split {
			t.Errorf("ByteForUTF16(%d) = (%d, %v), want (%d, %v)",
				c.units, b, split, c.b, c.split)
		}
	}
	units, err := text.UTF16ForByte(5)
	if err != nil || units != 3 {
		t.Errorf("UTF16ForByte(5) = %d, %v, want 3", units, err)
	}
	if _, _, err := text.ByteForUTF16(5); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestConversionsCrossFragments(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	// Mixed-width content spanning many chunks.
	s := strings.Repeat("ä\U0001F600z", 100) // each repeat: 7 bytes, 3 scalars, 4 utf16
	text := FromString(s)
	if text.Len() != 700 || text.CharCount() != 300 || text.UTF16Count() != 400 {
		t.Fatalf("unexpected counts: %d/%d/%d", text.Len(), text.CharCount(), text.UTF16Count())
	}
	for i := uint64(0); i < 100; i += 7 {
		b, err := text.ByteForChar(i * 3)
		if err != nil || b != i*7 {
			t.Fatalf("ByteForChar(%d) = %d, %v, want %d", i*3, b, err, i*7)
		}
		u, err := text.UTF16ForByte(i * 7)
		if err != nil || u != i*4 {
			t.Fatalf("UTF16ForByte(%d) = %d, %v, want %d", i*7, u, err, i*4)
		}
	}
}

func TestByteAt(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	s := strings.Repeat("pqr", 70)
	text := FromString(s)
	for _, b := range []uint64{0, 1, 63, 64, 65, 209} {
		got, err := text.ByteAt(b)
		if err != nil {
			t.Fatalf("ByteAt(%d) failed: %v", b, err)
		}
		if got != s[b] {
			t.Errorf("ByteAt(%d) = %c, want %c", b, got, s[b])
		}
	}
	if _, err := text.ByteAt(210); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
}
