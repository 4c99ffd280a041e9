package textsync

import "github.com/npillmayer/textsync/chunk"

// Concat concatenates texts and returns a new text.
func Concat(text Text, others ...Text) Text {
	return concatTree(text, others...)
}

// Insert inserts a subtext c into text at byte offset i, resulting in a
// new text. If i is greater than the length of text, an out-of-bounds error
// is returned. i must fall on a scalar boundary.
func Insert(text Text, c Text, i uint64) (Text, error) {
	return insertTree(text, c, i)
}

// Split splits a text into two new (smaller) texts right before byte offset
// i. Split(T,i) => split T into T1 and T2, with T1=b0,...,bi-1 and
// T2=bi,...,bn.
func Split(text Text, i uint64) (Text, Text, error) {
	return splitTree(text, i)
}

// Cut cuts out a substring [i...i+l) from a text. It returns a new text
// without the cut-out segment and the cut segment itself.
func Cut(text Text, i, l uint64) (Text, Text, error) {
	return cutTree(text, i, l)
}

// Delete removes the bytes [i...i+l) from a text, resulting in a new text.
func Delete(text Text, i, l uint64) (Text, error) {
	rest, _, err := cutTree(text, i, l)
	return rest, err
}

// Substr creates a new text from a subset of text, starting at byte offset i
// with length l.
func Substr(text Text, i, l uint64) (Text, error) {
	return substrTree(text, i, l)
}

// Splice replaces the byte range [start,end) with replacement text, resulting
// in a new text. The input text is unchanged.
//
// Both boundaries must fall on scalar boundaries (ErrMisalignedBoundary
// otherwise); end must not precede start or exceed the text length. A
// zero-width range is a pure insertion, an empty replacement a pure deletion.
func (text Text) Splice(start, end uint64, repl string) (Text, error) {
	if start > end || end > text.Len() {
		return Text{}, ErrMalformedRange
	}
	if !text.IsCharBoundary(start) || !text.IsCharBoundary(end) {
		return Text{}, ErrMisalignedBoundary
	}
	tracer().Debugf("splice [%d,%d) of |text|=%d, %d replacement bytes", start, end, text.Len(), len(repl))
	left, rest, err := splitTree(text, start)
	if err != nil {
		return Text{}, err
	}
	_, right, err := splitTree(rest, end-start)
	if err != nil {
		return Text{}, err
	}
	if repl == "" {
		return concatTree(left, right), nil
	}
	mid, err := New([]byte(repl))
	if err != nil {
		return Text{}, err
	}
	return concatTree(left, mid, right), nil
}

// Slice returns the string content of the byte range [start,end).
//
// Both boundaries must fall on scalar boundaries.
func (text Text) Slice(start, end uint64) (string, error) {
	if start > end || end > text.Len() {
		return "", ErrIndexOutOfBounds
	}
	if !text.IsCharBoundary(start) || !text.IsCharBoundary(end) {
		return "", ErrMisalignedBoundary
	}
	return reportTree(text, start, end-start)
}

// Report outputs a substring: Report(i,l) => outputs the string
// bi,...,bi+l-1.
func (text Text) Report(i, l uint64) (string, error) {
	return reportTree(text, i, l)
}

// Index returns the text chunk that includes byte position i, together with
// an index position within that chunk.
func (text Text) Index(i uint64) (chunk.Chunk, uint64, error) {
	return indexTree(text, i)
}
