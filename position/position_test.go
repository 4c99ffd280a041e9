package position

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/textsync"
)

func TestPointToByteUTF16(t *testing.T) {
	text := textsync.FromString("héllo") // 6 bytes, 5 scalars, 5 UTF-16 units
	codec := Codec{Encoding: UTF16}
	want := []uint64{0, 1, 3, 4, 5, 6}
	for ch, b := range want {
		got, err := codec.PointToByte(text, Point{Line: 0, Character: uint32(ch)})
		if err != nil {
			t.Fatalf("PointToByte(char %d) failed: %v", ch, err)
		}
		if got != b {
			t.Errorf("PointToByte(char %d) = %d, want %d", ch, got, b)
		}
	}
}

func TestPointToByteEncodings(t *testing.T) {
	text := textsync.FromString("héllo")
	// Character 2 addresses different bytes per encoding.
	got, err := Codec{Encoding: UTF32}.PointToByte(text, Point{Character: 2})
	if err != nil || got != 3 {
		t.Errorf("utf-32: got %d, %v, want 3", got, err)
	}
	got, err = Codec{Encoding: UTF8}.PointToByte(text, Point{Character: 3})
	if err != nil || got != 3 {
		t.Errorf("utf-8: got %d, %v, want 3", got, err)
	}
	// UTF-8 character 2 points into the é encoding.
	_, err = Codec{Encoding: UTF8}.PointToByte(text, Point{Character: 2})
	if !errors.Is(err, textsync.ErrMisalignedBoundary) {
		t.Errorf("utf-8 strict: expected ErrMisalignedBoundary, got %v", err)
	}
	got, err = Codec{Encoding: UTF8, Policy: Clamp}.PointToByte(text, Point{Character: 2})
	if err != nil || got != 1 {
		t.Errorf("utf-8 clamp: got %d, %v, want 1", got, err)
	}
}

func TestPointToByteClampsBeyondLineEnd(t *testing.T) {
	text := textsync.FromString("ab\ncd")
	codec := Codec{Encoding: UTF16}
	got, err := codec.PointToByte(text, Point{Line: 0, Character: 99})
	if err != nil || got != 2 {
		t.Errorf("expected clamp to line end 2, got %d, %v", got, err)
	}
	got, err = codec.PointToByte(text, Point{Line: 1, Character: 99})
	if err != nil || got != 5 {
		t.Errorf("expected clamp to text end 5, got %d, %v", got, err)
	}
	_, err = codec.PointToByte(text, Point{Line: 2})
	if !errors.Is(err, textsync.ErrLineOutOfRange) {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
}

func TestPointToByteSurrogatePolicies(t *testing.T) {
	text := textsync.FromString("a\U0001F600b")
	strict := Codec{Encoding: UTF16, Policy: Strict}
	if _, err := strict.PointToByte(text, Point{Character: 2}); !errors.Is(err, textsync.ErrInvalidUTF16Boundary) {
		t.Errorf("strict: expected ErrInvalidUTF16Boundary, got %v", err)
	}
	clamp := Codec{Encoding: UTF16, Policy: Clamp}
	got, err := clamp.PointToByte(text, Point{Character: 2})
	if err != nil || got != 1 {
		t.Errorf("clamp: got %d, %v, want scalar start 1", got, err)
	}
	// Both policies resolve whole-scalar offsets identically.
	for ch, want := range map[uint32]uint64{0: 0, 1: 1, 3: 5, 4: 6} {
		s, err := strict.PointToByte(text, Point{Character: ch})
		if err != nil || s != want {
			t.Errorf("strict char %d: got %d, %v, want %d", ch, s, err, want)
		}
		c, err := clamp.PointToByte(text, Point{Character: ch})
		if err != nil || c != want {
			t.Errorf("clamp char %d: got %d, %v, want %d", ch, c, err, want)
		}
	}
}

func TestByteToPoint(t *testing.T) {
	text := textsync.FromString("ab\U0001F600\ncd")
	codec := Codec{Encoding: UTF16}
	cases := map[uint64]Point{
		0: {0, 0},
		1: {0, 1},
		2: {0, 2},
		6: {0, 4},
		7: {1, 0},
		9: {1, 2}, // == Len(), end of last line
	}
	for b, want := range cases {
		got, err := codec.ByteToPoint(text, b)
		if err != nil {
			t.Fatalf("ByteToPoint(%d) failed: %v", b, err)
		}
		if got != want {
			t.Errorf("ByteToPoint(%d) = %+v, want %+v", b, got, want)
		}
	}
	if _, err := codec.ByteToPoint(text, 3); !errors.Is(err, textsync.ErrMisalignedBoundary) {
		t.Errorf("expected ErrMisalignedBoundary inside scalar, got %v", err)
	}
	if _, err := codec.ByteToPoint(text, 10); !errors.Is(err, textsync.ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestByteToPointInsideCRLF(t *testing.T) {
	text := textsync.FromString("xy\r\nz")
	codec := Codec{Encoding: UTF16}
	// Offset 3 sits between '\r' and '\n': it maps to the end of line 0.
	got, err := codec.ByteToPoint(text, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != (Point{Line: 0, Character: 2}) {
		t.Errorf("ByteToPoint(3) = %+v, want {0 2}", got)
	}
	// The inverse conversion lands on the '\r', not back on 3.
	back, err := codec.PointToByte(text, got)
	if err != nil || back != 2 {
		t.Errorf("PointToByte(end of line 0) = %d, %v, want 2", back, err)
	}
}

func TestRoundTripAllBoundariesAllEncodings(t *testing.T) {
	s := "aä\U0001F600\r\nxyz\rüé\n\U0001F600"
	text := textsync.FromString(s)
	for _, enc := range []Encoding{UTF8, UTF16, UTF32} {
		codec := Codec{Encoding: enc}
		for b := uint64(0); b <= uint64(len(s)); b++ {
			if b < uint64(len(s)) && !utf8.RuneStart(s[b]) {
				continue
			}
			// Offsets inside a CRLF pair are the documented exception.
			if b > 0 && b < uint64(len(s)) && s[b] == '\n' && s[b-1] == '\r' {
				continue
			}
			p, err := codec.ByteToPoint(text, b)
			if err != nil {
				t.Fatalf("%s: ByteToPoint(%d) failed: %v", enc, b, err)
			}
			back, err := codec.PointToByte(text, p)
			if err != nil {
				t.Fatalf("%s: PointToByte(%+v) failed: %v", enc, p, err)
			}
			if back != b {
				t.Errorf("%s: round trip %d -> %+v -> %d", enc, b, p, back)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	text := textsync.FromString("héllo\nab")
	codec := Codec{Encoding: UTF16}
	if err := codec.Validate(text, Point{Line: 0, Character: 5}); err != nil {
		t.Errorf("line end must validate, got %v", err)
	}
	if err := codec.Validate(text, Point{Line: 0, Character: 6}); !errors.Is(err, textsync.ErrCharacterOutOfRange) {
		t.Errorf("expected ErrCharacterOutOfRange, got %v", err)
	}
	if err := codec.Validate(text, Point{Line: 2}); !errors.Is(err, textsync.ErrLineOutOfRange) {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
}

func TestAbsoluteOffsetConversions(t *testing.T) {
	text := textsync.FromString("a\U0001F600b")
	b, err := ByteFromChar(text, 2)
	if err != nil || b != 5 {
		t.Errorf("ByteFromChar(2) = %d, %v, want 5", b, err)
	}
	chars, err := CharFromByte(text, 5)
	if err != nil || chars != 2 {
		t.Errorf("CharFromByte(5) = %d, %v, want 2", chars, err)
	}
	u, err := UTF16FromByte(text, 5)
	if err != nil || u != 3 {
		t.Errorf("UTF16FromByte(5) = %d, %v, want 3", u, err)
	}
	strict := Codec{Policy: Strict}
	if _, err := strict.ByteFromUTF16(text, 2); !errors.Is(err, textsync.ErrInvalidUTF16Boundary) {
		t.Errorf("strict: expected ErrInvalidUTF16Boundary, got %v", err)
	}
	clamp := Codec{Policy: Clamp}
	b, err = clamp.ByteFromUTF16(text, 2)
	if err != nil || b != 1 {
		t.Errorf("clamp: ByteFromUTF16(2) = %d, %v, want 1", b, err)
	}
}
