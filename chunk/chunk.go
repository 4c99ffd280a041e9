package chunk

import (
	"math/bits"
	"unicode/utf8"
)

// Bitmap indexes byte-local properties inside a chunk.
//
// Bit i corresponds to byte offset i in chunk-local coordinates.
type Bitmap = uint64

const (
	// MaxBase is the maximum chunk payload length in bytes.
	MaxBase = 64
	// MinBase is the minimum non-root occupancy target used by tree policies.
	MinBase = MaxBase / 2
)

// Chunk stores text and bitmap indexes for fast local coordinate math.
//
// The chunk is immutable by convention: editing operations return a new Chunk.
// Three bitmaps are maintained:
//
//   - chars:  bytes that start a UTF-8 rune (scalar boundaries),
//   - wide:   bytes that start a rune above the Basic Multilingual Plane
//     (such a rune occupies two UTF-16 code units),
//   - breaks: bytes that complete a line terminator.
//
// A line terminator is "\n", "\r\n" or a lone "\r". Within a chunk the break
// bit sits on the byte that completes the terminator: on '\n' for "\n" and
// "\r\n", on '\r' for a lone carriage return. A '\r' in the chunk's last byte
// is provisionally counted as a terminator; the summary monoid retracts it
// when the neighboring chunk starts with '\n'.
type Chunk struct {
	chars  Bitmap
	wide   Bitmap
	breaks Bitmap
	text   [MaxBase]byte
	n      uint8
}

// New creates a chunk from UTF-8 text.
//
// Returns an error if the text is not valid UTF-8 or exceeds MaxBase bytes.
func New(text string) (Chunk, error) {
	return NewBytes([]byte(text))
}

// NewBytes creates a chunk from UTF-8 bytes.
//
// Returns an error if the bytes are not valid UTF-8 or exceed MaxBase bytes.
//
// Important for ingestion: callers should split raw input only at UTF-8 rune
// boundaries before calling NewBytes for each chunk. This constructor
// validates UTF-8 and will reject byte slices that start/end in the middle of
// a multi-byte rune.
func NewBytes(text []byte) (Chunk, error) {
	if !utf8.Valid(text) {
		return Chunk{}, ErrInvalidUTF8
	}
	if len(text) > MaxBase {
		return Chunk{}, ErrChunkTooLarge
	}
	var c Chunk
	copy(c.text[:], text)
	c.n = uint8(len(text))
	// Rune-local boundaries and UTF-16 width.
	for i := 0; i < len(text); {
		c.chars |= bit(i)
		r, n := utf8.DecodeRune(text[i:])
		if r > 0xFFFF {
			c.wide |= bit(i)
		}
		i += n
	}
	// Terminator completion bits; trailing '\r' is provisional.
	for i, b := range text {
		switch b {
		case '\n':
			c.breaks |= bit(i)
		case '\r':
			if i+1 == len(text) || text[i+1] != '\n' {
				c.breaks |= bit(i)
			}
		}
	}
	return c, nil
}

// Len returns the text length in bytes.
func (c Chunk) Len() int {
	return int(c.n)
}

// IsEmpty reports whether the chunk has no bytes.
func (c Chunk) IsEmpty() bool {
	return c.n == 0
}

// String returns the chunk text.
func (c Chunk) String() string {
	return string(c.text[:c.n])
}

// Bytes returns a copied byte slice of the chunk text.
func (c Chunk) Bytes() []byte {
	return append([]byte(nil), c.text[:c.n]...)
}

// ByteAt returns the byte at chunk-local offset i.
func (c Chunk) ByteAt(i int) byte {
	return c.text[i]
}

// Chars returns the UTF-8 rune-start bitmap.
func (c Chunk) Chars() Bitmap {
	return c.chars
}

// Breaks returns the terminator-completion bitmap.
func (c Chunk) Breaks() Bitmap {
	return c.breaks
}

// IsCharBoundary reports whether offset is a UTF-8 boundary inside this chunk.
func (c Chunk) IsCharBoundary(offset int) bool {
	if offset == c.Len() {
		return true
	}
	if offset < 0 || offset > c.Len() {
		return false
	}
	return c.chars&bit(offset) != 0
}

// IsWideStart reports whether offset starts a rune above the BMP.
func (c Chunk) IsWideStart(offset int) bool {
	if offset < 0 || offset >= c.Len() {
		return false
	}
	return c.wide&bit(offset) != 0
}

// CharsBefore returns the number of runes starting in [0,offset).
//
// The offset must be a char boundary.
func (c Chunk) CharsBefore(offset int) (uint64, error) {
	if offset < 0 || offset > c.Len() {
		return 0, ErrIndexOutOfBounds
	}
	if !c.IsCharBoundary(offset) {
		return 0, ErrNotCharBoundary
	}
	return popcount(c.chars, offset), nil
}

// UTF16Before returns the number of UTF-16 code units encoding the runes
// starting in [0,offset).
//
// The offset must be a char boundary.
func (c Chunk) UTF16Before(offset int) (uint64, error) {
	if offset < 0 || offset > c.Len() {
		return 0, ErrIndexOutOfBounds
	}
	if !c.IsCharBoundary(offset) {
		return 0, ErrNotCharBoundary
	}
	return popcount(c.chars, offset) + popcount(c.wide, offset), nil
}

// ByteForChars returns the smallest chunk-local byte offset with exactly
// `runes` rune starts before it.
func (c Chunk) ByteForChars(runes uint64) (int, error) {
	if runes > popcount(c.chars, c.Len()) {
		return 0, ErrIndexOutOfBounds
	}
	if runes == 0 {
		return 0, nil
	}
	seen := uint64(0)
	for i := 0; i < c.Len(); i++ {
		if c.chars&bit(i) == 0 {
			continue
		}
		if seen == runes {
			return i, nil
		}
		seen++
	}
	return c.Len(), nil
}

// ByteForUTF16 returns the smallest chunk-local byte offset with exactly
// `units` UTF-16 code units before it.
//
// When `units` lands between the two code units of a surrogate pair there is
// no such boundary; the offset of the pair's rune start is returned together
// with split=true, so callers can apply their boundary policy.
func (c Chunk) ByteForUTF16(units uint64) (offset int, split bool, err error) {
	total := popcount(c.chars, c.Len()) + popcount(c.wide, c.Len())
	if units > total {
		return 0, false, ErrIndexOutOfBounds
	}
	if units == 0 {
		return 0, false, nil
	}
	seen := uint64(0)
	for i := 0; i < c.Len(); i++ {
		if c.chars&bit(i) == 0 {
			continue
		}
		if seen == units {
			return i, false, nil
		}
		width := uint64(1)
		if c.wide&bit(i) != 0 {
			width = 2
		}
		if seen+width > units {
			// Target falls between the two halves of a surrogate pair.
			return i, true, nil
		}
		seen += width
	}
	return c.Len(), false, nil
}

// Slice returns a new chunk for [start,end) in chunk-local byte offsets.
//
// Bitmaps are recomputed rather than shifted: the break bitmap is
// context-sensitive at the slice edges (a '\r' that becomes trailing turns
// into a provisional terminator).
func (c Chunk) Slice(start, end int) (Chunk, error) {
	if start < 0 || end < start || end > c.Len() {
		return Chunk{}, ErrIndexOutOfBounds
	}
	if !c.IsCharBoundary(start) || !c.IsCharBoundary(end) {
		return Chunk{}, ErrNotCharBoundary
	}
	return NewBytes(c.text[start:end])
}

// SplitAt splits a chunk into left/right chunks at byte offset mid.
func (c Chunk) SplitAt(mid int) (Chunk, Chunk, error) {
	left, err := c.Slice(0, mid)
	if err != nil {
		return Chunk{}, Chunk{}, err
	}
	right, err := c.Slice(mid, c.Len())
	if err != nil {
		return Chunk{}, Chunk{}, err
	}
	return left, right, nil
}

// Append returns a new chunk with other's text appended.
//
// The boolean is false if the append would exceed MaxBase; in that case, the
// original chunk is returned unchanged.
func (c Chunk) Append(other Chunk) (Chunk, bool) {
	if other.IsEmpty() {
		return c, true
	}
	total := c.Len() + other.Len()
	if total > MaxBase {
		return c, false
	}
	var buf [MaxBase]byte
	copy(buf[:], c.text[:c.n])
	copy(buf[c.n:], other.text[:other.n])
	merged, err := NewBytes(buf[:total])
	if err != nil {
		return c, false
	}
	return merged, true
}

// --- Bitmap helpers --------------------------------------------------------

func bit(offset int) Bitmap {
	if offset < 0 || offset >= MaxBase {
		return 0
	}
	return Bitmap(1) << uint(offset)
}

func prefixMask(offset int) Bitmap {
	switch {
	case offset <= 0:
		return 0
	case offset >= MaxBase:
		return ^Bitmap(0)
	default:
		return (Bitmap(1) << uint(offset)) - 1
	}
}

func popcount(bm Bitmap, upto int) uint64 {
	return uint64(bits.OnesCount64(uint64(bm & prefixMask(upto))))
}
