package chunk

import (
	"strings"
	"testing"
)

func TestNewRejectsOversizedInput(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxBase+1))
	if err != ErrChunkTooLarge {
		t.Errorf("expected ErrChunkTooLarge, got %v", err)
	}
}

func TestNewRejectsInvalidUTF8(t *testing.T) {
	_, err := NewBytes([]byte{0xff, 0xfe})
	if err != ErrInvalidUTF8 {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestCharBoundaries(t *testing.T) {
	c, err := New("héllo") // h=1, é=2, l=1, l=1, o=1 bytes
	if err != nil {
		t.Fatal(err)
	}
	wantBoundary := []bool{true, true, false, true, true, true, true}
	for i, want := range wantBoundary {
		if got := c.IsCharBoundary(i); got != want {
			t.Errorf("IsCharBoundary(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestUTF16Accounting(t *testing.T) {
	c, err := New("a\U0001F600b") // a, emoji (4 bytes, 2 code units), b
	if err != nil {
		t.Fatal(err)
	}
	s := c.Summary()
	if s.Bytes != 6 || s.Chars != 3 || s.UTF16 != 4 {
		t.Errorf("summary = %+v, want bytes=6 chars=3 utf16=4", s)
	}
	if !c.IsWideStart(1) {
		t.Error("expected wide-rune start at offset 1")
	}
	units, err := c.UTF16Before(5)
	if err != nil || units != 3 {
		t.Errorf("UTF16Before(5) = %d, %v, want 3", units, err)
	}
}

func TestByteForUTF16SurrogateSplit(t *testing.T) {
	c, err := New("a\U0001F600b")
	if err != nil {
		t.Fatal(err)
	}
	off, split, err := c.ByteForUTF16(2)
	if err != nil {
		t.Fatal(err)
	}
	if !split || off != 1 {
		t.Errorf("ByteForUTF16(2) = (%d, %v), want (1, true)", off, split)
	}
	off, split, err = c.ByteForUTF16(3)
	if err != nil || split || off != 5 {
		t.Errorf("ByteForUTF16(3) = (%d, %v, %v), want (5, false, nil)", off, split, err)
	}
}

func TestByteForChars(t *testing.T) {
	c, _ := New("héllo")
	off, err := c.ByteForChars(2)
	if err != nil || off != 3 {
		t.Errorf("ByteForChars(2) = %d, %v, want 3", off, err)
	}
}

func TestBreakBits(t *testing.T) {
	cases := []struct {
		text   string
		breaks uint64
		endsCR bool
	}{
		{"ab", 0, false},
		{"a\nb", 1, false},
		{"a\r\nb", 1, false},
		{"a\rb", 1, false},
		{"a\r", 1, true}, // provisional trailing carriage return
		{"a\r\nb\rc\nd", 3, false},
	}
	for _, cs := range cases {
		c, err := New(cs.text)
		if err != nil {
			t.Fatal(err)
		}
		s := c.Summary()
		if s.Breaks != cs.breaks || s.EndsCR != cs.endsCR {
			t.Errorf("%q: breaks=%d endsCR=%v, want %d/%v", cs.text, s.Breaks, s.EndsCR, cs.breaks, cs.endsCR)
		}
	}
}

func TestSliceRecomputesBreaks(t *testing.T) {
	c, _ := New("x\r\ny")
	left, right, err := c.SplitAt(2) // "x\r" | "\ny"
	if err != nil {
		t.Fatal(err)
	}
	if left.Summary().Breaks != 1 || !left.Summary().EndsCR {
		t.Errorf("left %+v: trailing CR must count provisionally", left.Summary())
	}
	if right.Summary().Breaks != 1 || !right.Summary().StartsLF {
		t.Errorf("right %+v: leading LF must count", right.Summary())
	}
}

func TestSliceRejectsMidRune(t *testing.T) {
	c, _ := New("héllo")
	if _, err := c.Slice(0, 2); err != ErrNotCharBoundary {
		t.Errorf("expected ErrNotCharBoundary, got %v", err)
	}
}
