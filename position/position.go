// Package position translates between byte offsets and line/character
// positions of a text, in a host-negotiated character encoding.
//
// The Language Server Protocol counts characters in UTF-16 code units by
// default, with UTF-8 and UTF-32 as negotiable alternatives. The Codec makes
// the negotiated encoding explicit: hosts configure it once, and every
// conversion interprets the Character field of a Point in that encoding.
// Encodings are never inferred from document content.
package position

import (
	"unicode/utf8"

	"github.com/npillmayer/textsync"
)

// Encoding is the closed set of position encodings negotiable between host
// and client.
type Encoding int

const (
	// UTF16 counts characters in UTF-16 code units (the protocol default).
	UTF16 Encoding = iota
	// UTF8 counts characters in UTF-8 bytes.
	UTF8
	// UTF32 counts characters in Unicode scalar values.
	UTF32
)

func (enc Encoding) String() string {
	switch enc {
	case UTF16:
		return "utf-16"
	case UTF8:
		return "utf-8"
	case UTF32:
		return "utf-32"
	}
	return "unknown"
}

// SurrogatePolicy decides what happens when a UTF-16 character offset points
// between the two code units of a surrogate pair (or a UTF-8 offset into the
// middle of a multi-byte scalar).
type SurrogatePolicy int

const (
	// Strict fails such conversions with ErrInvalidUTF16Boundary
	// (ErrMisalignedBoundary for UTF-8).
	Strict SurrogatePolicy = iota
	// Clamp snaps to the start of the enclosing scalar value. Conversions
	// never yield a byte offset inside a scalar.
	Clamp
)

// Point is a line/character position. Line is zero-based; Character counts
// units of the codec's encoding from the line start.
type Point struct {
	Line      uint32
	Character uint32
}

// Codec converts between Points and byte offsets for a fixed encoding and
// surrogate policy.
//
// The zero value is a valid codec: UTF-16 with strict surrogate handling.
type Codec struct {
	Encoding Encoding
	Policy   SurrogatePolicy
}

// PointToByte resolves a Point against a text snapshot.
//
// The line is resolved through the text's line index; only that line's bytes
// are scanned. A character offset beyond the end of the line clamps to the
// line's terminator-exclusive end, per protocol convention. The line itself
// must exist (textsync.ErrLineOutOfRange otherwise).
func (codec Codec) PointToByte(text textsync.Text, p Point) (uint64, error) {
	start, content, err := lineContent(text, uint64(p.Line))
	if err != nil {
		return 0, err
	}
	local, err := codec.unitsToLocalByte(content, uint64(p.Character))
	if err != nil {
		return 0, err
	}
	return start + local, nil
}

// ByteToPoint resolves a byte offset to a Point.
//
// The offset must fall on a scalar boundary (textsync.ErrMisalignedBoundary
// otherwise) and may equal the text length. An offset between the '\r' and
// '\n' of a CRLF pair maps to the end of the line the pair terminates, so
// PointToByte(ByteToPoint(b)) returns the '\r' offset for such b; everywhere
// else the two conversions are inverse to each other.
func (codec Codec) ByteToPoint(text textsync.Text, b uint64) (Point, error) {
	if b > text.Len() {
		return Point{}, textsync.ErrIndexOutOfBounds
	}
	if !text.IsCharBoundary(b) {
		return Point{}, textsync.ErrMisalignedBoundary
	}
	line, err := text.ByteToLine(b)
	if err != nil {
		return Point{}, err
	}
	start, err := text.LineStartByte(line)
	if err != nil {
		return Point{}, err
	}
	end := b
	if end > 0 && end < text.Len() {
		// Inside a CRLF pair: measure up to the '\r'.
		cur, err := text.ByteAt(end)
		if err != nil {
			return Point{}, err
		}
		if cur == '\n' {
			prev, err := text.ByteAt(end - 1)
			if err != nil {
				return Point{}, err
			}
			if prev == '\r' {
				end--
			}
		}
	}
	if end < start {
		end = start
	}
	prefix, err := text.Slice(start, end)
	if err != nil {
		return Point{}, err
	}
	return Point{Line: uint32(line), Character: uint32(codec.countUnits(prefix))}, nil
}

// Validate checks a Point strictly against a text snapshot: the line must
// exist and the character must not exceed the line's length in the codec's
// encoding. No clamping is applied; hosts that want protocol clamping use
// PointToByte directly.
func (codec Codec) Validate(text textsync.Text, p Point) error {
	_, content, err := lineContent(text, uint64(p.Line))
	if err != nil {
		return err
	}
	if uint64(p.Character) > codec.countUnits(content) {
		return textsync.ErrCharacterOutOfRange
	}
	return nil
}

// ByteFromChar converts an absolute scalar-value offset to a byte offset.
func ByteFromChar(text textsync.Text, chars uint64) (uint64, error) {
	return text.ByteForChar(chars)
}

// CharFromByte converts a byte offset to an absolute scalar-value offset.
func CharFromByte(text textsync.Text, b uint64) (uint64, error) {
	return text.CharForByte(b)
}

// ByteFromUTF16 converts an absolute UTF-16 code-unit offset to a byte
// offset, applying the codec's surrogate policy.
func (codec Codec) ByteFromUTF16(text textsync.Text, units uint64) (uint64, error) {
	b, splits, err := text.ByteForUTF16(units)
	if err != nil {
		return 0, err
	}
	if splits && codec.Policy == Strict {
		return 0, textsync.ErrInvalidUTF16Boundary
	}
	return b, nil
}

// UTF16FromByte converts a byte offset to an absolute UTF-16 code-unit
// offset.
func UTF16FromByte(text textsync.Text, b uint64) (uint64, error) {
	return text.UTF16ForByte(b)
}

// lineContent returns the start offset of a line and its content, exclusive
// of the line terminator.
func lineContent(text textsync.Text, line uint64) (uint64, string, error) {
	if line >= text.LineCount() {
		return 0, "", textsync.ErrLineOutOfRange
	}
	start, err := text.LineStartByte(line)
	if err != nil {
		return 0, "", err
	}
	end := text.Len()
	if line+1 < text.LineCount() {
		next, err := text.LineStartByte(line + 1)
		if err != nil {
			return 0, "", err
		}
		end = next - terminatorLen(text, next)
	}
	content, err := text.Slice(start, end)
	if err != nil {
		return 0, "", err
	}
	return start, content, nil
}

// terminatorLen returns the byte length of the terminator directly before a
// line start (2 for CRLF, 1 otherwise).
func terminatorLen(text textsync.Text, lineStart uint64) uint64 {
	if lineStart < 2 {
		return lineStart
	}
	last, err := text.ByteAt(lineStart - 1)
	if err != nil {
		return 1
	}
	if last == '\n' {
		prev, err := text.ByteAt(lineStart - 2)
		if err == nil && prev == '\r' {
			return 2
		}
	}
	return 1
}

// unitsToLocalByte scans line content accumulating units of the codec's
// encoding, returning the line-local byte offset for a character count.
func (codec Codec) unitsToLocalByte(content string, units uint64) (uint64, error) {
	if units == 0 {
		return 0, nil
	}
	var seen uint64
	for i, r := range content {
		if seen == units {
			return uint64(i), nil
		}
		w := codec.runeWidth(r)
		if seen+w > units {
			// The character offset lands inside this scalar's encoding.
			switch codec.Policy {
			case Clamp:
				return uint64(i), nil
			default:
				if codec.Encoding == UTF16 {
					return 0, textsync.ErrInvalidUTF16Boundary
				}
				return 0, textsync.ErrMisalignedBoundary
			}
		}
		seen += w
	}
	// Beyond line end: clamp to the terminator-exclusive end.
	return uint64(len(content)), nil
}

// countUnits measures line content in the codec's encoding.
func (codec Codec) countUnits(content string) uint64 {
	switch codec.Encoding {
	case UTF8:
		return uint64(len(content))
	case UTF32:
		return uint64(utf8.RuneCountInString(content))
	}
	var units uint64
	for _, r := range content {
		units += utf16Width(r)
	}
	return units
}

func (codec Codec) runeWidth(r rune) uint64 {
	switch codec.Encoding {
	case UTF8:
		return uint64(utf8.RuneLen(r))
	case UTF32:
		return 1
	}
	return utf16Width(r)
}

func utf16Width(r rune) uint64 {
	if r > 0xFFFF {
		return 2
	}
	return 1
}
