package textsync

import (
	"bytes"
	"iter"

	"github.com/npillmayer/textsync/btree"
	"github.com/npillmayer/textsync/chunk"
)

// Text stores immutable UTF-8 text fragments in a persistent summarized B+
// tree.
//
// A text created by
//
//	Text{}
//
// is a valid object and behaves like the empty string.
//
// Methods that take or return positions use byte offsets; see the position
// subpackage for line/character and encoding-aware coordinates.
//
// Due to their internal structure texts do have performance characteristics
// differing from Go strings or byte arrays.
//
//	Operation     |   Rope          |  String
//	--------------+-----------------+--------
//	Index         |   O(log n)      |   O(1)
//	Split         |   O(log n)      |   O(1)
//	Iterate       |   O(n)          |   O(n)
//
//	Concatenate   |   O(log n)      |   O(n)
//	Insert        |   O(log n)      |   O(n)
//	Delete        |   O(log n)      |   O(n)
//
// Editing never mutates a Text: each operation returns a new value sharing
// all untouched fragments with its input, so older snapshots remain valid.
type Text struct {
	tree *btree.Tree[chunk.Chunk, chunk.Summary]
}

// FromString creates a text from a Go string.
//
// The input string must be valid UTF-8. Invalid input triggers an internal
// assertion panic, matching package invariants for stored text. Use New for
// the error-returning form.
func FromString(s string) Text {
	text, err := New([]byte(s))
	assert(err == nil, "FromString requires valid UTF-8 input")
	return text
}

// New creates a text from UTF-8 bytes.
func New(b []byte) (Text, error) {
	parts, err := splitToChunks(b)
	if err != nil {
		return Text{}, err
	}
	tree, err := newChunkTree()
	if err != nil {
		return Text{}, err
	}
	if len(parts) > 0 {
		tree, err = tree.InsertAt(0, parts...)
		if err != nil {
			return Text{}, err
		}
	}
	return textFromTree(tree), nil
}

// String returns the complete text as a Go string. This may be an expensive
// operation, as it will allocate a buffer for all the bytes of the text and
// collect all fragments to a single continuous string.
func (text Text) String() string {
	tree, err := treeFromText(text)
	assert(err == nil, "text.String: cannot materialize tree")
	if tree == nil || tree.IsEmpty() {
		return ""
	}
	var bf bytes.Buffer
	tree.ForEachItem(func(_ int, c chunk.Chunk) bool {
		_, _ = bf.WriteString(c.String())
		return true
	})
	return bf.String()
}

// IsVoid reports whether the text has no bytes.
func (text Text) IsVoid() bool {
	tree, err := treeFromText(text)
	assert(err == nil, "text.IsVoid: cannot materialize tree")
	return tree == nil || tree.IsEmpty()
}

// Len returns the text length in bytes.
func (text Text) Len() uint64 {
	return text.Summary().Bytes
}

// Summary returns aggregate byte/scalar/UTF-16/terminator counts.
func (text Text) Summary() chunk.Summary {
	tree, err := treeFromText(text)
	assert(err == nil, "text.Summary: cannot materialize tree")
	if tree == nil {
		return chunk.Summary{}
	}
	return tree.Summary()
}

// CharCount returns the number of Unicode scalar values in the text.
func (text Text) CharCount() uint64 {
	return text.Summary().Chars
}

// UTF16Count returns the number of UTF-16 code units encoding the text.
func (text Text) UTF16Count() uint64 {
	return text.Summary().UTF16
}

// LineCount returns the number of lines in the text.
//
// A line is terminated by "\n", "\r\n" or a lone "\r". The count is the
// terminator count plus one: an empty text has one (empty) line, and a text
// ending in a terminator has a final empty line.
func (text Text) LineCount() uint64 {
	return text.Summary().Breaks + 1
}

// IsCharBoundary reports whether byte offset b falls on a scalar boundary.
//
// Offsets 0 and Len() are boundaries of every text.
func (text Text) IsCharBoundary(b uint64) bool {
	if b == 0 || b == text.Len() {
		return true
	}
	if b > text.Len() {
		return false
	}
	c, local, err := text.Index(b)
	if err != nil {
		return false
	}
	return c.IsCharBoundary(int(local))
}

// height returns the total height of a text's tree.
func (text Text) height() int {
	tree, err := treeFromText(text)
	assert(err == nil, "text.height: cannot materialize tree")
	if tree == nil || tree.IsEmpty() {
		return 0
	}
	return tree.Height()
}

// RangeChunk returns an iterator over all chunks in logical order.
func (text Text) RangeChunk() iter.Seq[chunk.Chunk] {
	return func(yield func(chunk.Chunk) bool) {
		tree, err := treeFromText(text)
		assert(err == nil, "text.RangeChunk: cannot materialize tree")
		if tree == nil {
			return
		}
		tree.ForEachItem(func(_ int, c chunk.Chunk) bool {
			return yield(c)
		})
	}
}

// EachChunk visits all chunks in logical order.
//
// The callback receives each chunk and its starting byte offset. Iteration
// stops at the first callback error and returns that error to the caller.
func (text Text) EachChunk(f func(chunk.Chunk, uint64) error) error {
	tree, convErr := treeFromText(text)
	assert(convErr == nil, "text.EachChunk: cannot materialize tree")
	if tree == nil {
		return nil
	}
	var err error
	var pos uint64
	tree.ForEachItem(func(_ int, c chunk.Chunk) bool {
		if err != nil {
			return false
		}
		err = f(c, pos)
		pos += c.Summary().Bytes
		return err == nil
	})
	return err
}

// FragmentCount returns the number of fragments this text is internally
// split into.
func (text Text) FragmentCount() int {
	tree, err := treeFromText(text)
	assert(err == nil, "text.FragmentCount: cannot materialize tree")
	if tree == nil {
		return 0
	}
	return tree.Len()
}
