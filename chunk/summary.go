package chunk

// Summary aggregates chunk-level text metrics for tree routing.
//
// Tree-level code uses this summary to navigate and aggregate, while chunk
// code keeps ownership of local byte/rune boundary logic.
//
// Breaks counts completed line terminators, where a trailing '\r' counts as
// one terminator until a right-hand neighbor starting with '\n' retracts it
// (the "\r\n" pair is a single terminator). The StartsLF/EndsCR flags carry
// the seam information the monoid needs for that retraction.
type Summary struct {
	Bytes    uint64
	Chars    uint64
	UTF16    uint64
	Breaks   uint64
	StartsLF bool
	EndsCR   bool
}

// Summary returns aggregate metrics for this chunk.
func (c Chunk) Summary() Summary {
	n := c.Len()
	s := Summary{
		Bytes:  uint64(n),
		Chars:  popcount(c.chars, n),
		UTF16:  popcount(c.chars, n) + popcount(c.wide, n),
		Breaks: popcount(c.breaks, n),
	}
	if n > 0 {
		s.StartsLF = c.text[0] == '\n'
		s.EndsCR = c.text[n-1] == '\r'
	}
	return s
}

// Monoid aggregates chunk summaries for B+ sum-tree internal nodes.
type Monoid struct{}

// Zero returns the neutral summary value.
func (Monoid) Zero() Summary { return Summary{} }

// Add combines two adjacent summaries.
//
// A CRLF pair spanning the seam was counted once on each side (provisional
// trailing '\r' on the left, '\n' on the right); Add retracts the double
// count.
func (Monoid) Add(left, right Summary) Summary {
	if left.Bytes == 0 {
		return right
	}
	if right.Bytes == 0 {
		return left
	}
	breaks := left.Breaks + right.Breaks
	if left.EndsCR && right.StartsLF {
		breaks--
	}
	return Summary{
		Bytes:    left.Bytes + right.Bytes,
		Chars:    left.Chars + right.Chars,
		UTF16:    left.UTF16 + right.UTF16,
		Breaks:   breaks,
		StartsLF: left.StartsLF,
		EndsCR:   right.EndsCR,
	}
}

// ByteDimension seeks by byte count in tree summaries.
type ByteDimension struct{}

// Zero returns the byte origin.
func (ByteDimension) Zero() uint64 { return 0 }

// Add accumulates bytes from summary into the dimension accumulator.
func (ByteDimension) Add(acc uint64, summary Summary) uint64 {
	return acc + summary.Bytes
}

// Compare compares accumulated value to a seek target.
func (ByteDimension) Compare(acc uint64, target uint64) int {
	return compare(acc, target)
}

// CharDimension seeks by Unicode scalar value count.
type CharDimension struct{}

// Zero returns the character origin.
func (CharDimension) Zero() uint64 { return 0 }

// Add accumulates rune counts from summary.
func (CharDimension) Add(acc uint64, summary Summary) uint64 {
	return acc + summary.Chars
}

// Compare compares accumulated value to a seek target.
func (CharDimension) Compare(acc uint64, target uint64) int {
	return compare(acc, target)
}

// UTF16Dimension seeks by UTF-16 code-unit count.
type UTF16Dimension struct{}

// Zero returns the code-unit origin.
func (UTF16Dimension) Zero() uint64 { return 0 }

// Add accumulates UTF-16 code-unit counts from summary.
func (UTF16Dimension) Add(acc uint64, summary Summary) uint64 {
	return acc + summary.UTF16
}

// Compare compares accumulated value to a seek target.
func (UTF16Dimension) Compare(acc uint64, target uint64) int {
	return compare(acc, target)
}

// BreakAcc is the accumulator for BreakDimension seeks.
//
// The EndsCR flag rides along so that terminator counting stays correct when
// the accumulated prefix ends with a provisional '\r'.
type BreakAcc struct {
	N      uint64
	EndsCR bool
}

// BreakDimension seeks by completed line-terminator count.
type BreakDimension struct{}

// Zero returns the terminator origin.
func (BreakDimension) Zero() BreakAcc { return BreakAcc{} }

// Add accumulates terminator counts from summary, handling the CRLF seam.
func (BreakDimension) Add(acc BreakAcc, summary Summary) BreakAcc {
	if summary.Bytes == 0 {
		return acc
	}
	n := acc.N + summary.Breaks
	if acc.EndsCR && summary.StartsLF {
		n--
	}
	return BreakAcc{N: n, EndsCR: summary.EndsCR}
}

// Compare compares the accumulated terminator count to a seek target.
func (BreakDimension) Compare(acc BreakAcc, target BreakAcc) int {
	return compare(acc.N, target.N)
}

func compare(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
