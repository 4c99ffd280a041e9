package textsync

import (
	"github.com/npillmayer/textsync/btree"
	"github.com/npillmayer/textsync/chunk"
)

// ByteAt returns the byte at offset b.
func (text Text) ByteAt(b uint64) (byte, error) {
	c, local, err := text.Index(b)
	if err != nil {
		return 0, err
	}
	return c.ByteAt(int(local)), nil
}

// ByteForChar returns the byte offset with exactly `chars` Unicode scalar
// values before it.
//
// chars may equal CharCount, yielding Len().
func (text Text) ByteForChar(chars uint64) (uint64, error) {
	tree, err := treeFromText(text)
	if err != nil {
		return 0, err
	}
	total := tree.Summary()
	if chars > total.Chars {
		return 0, ErrIndexOutOfBounds
	}
	if chars == 0 {
		return 0, nil
	}
	if chars == total.Chars {
		return total.Bytes, nil
	}
	cursor, err := btree.NewCursor[chunk.Chunk, chunk.Summary, uint64](tree, chunk.CharDimension{})
	if err != nil {
		return 0, err
	}
	itemIndex, acc, err := cursor.Seek(chars)
	if err != nil {
		return 0, err
	}
	item, err := tree.At(itemIndex)
	if err != nil {
		return 0, err
	}
	localChars := chars - (acc - item.Summary().Chars)
	localByte, err := item.ByteForChars(localChars)
	if err != nil {
		return 0, err
	}
	prefix, err := tree.PrefixSummary(itemIndex)
	if err != nil {
		return 0, err
	}
	return prefix.Bytes + uint64(localByte), nil
}

// CharForByte returns the number of Unicode scalar values before byte
// offset b.
//
// The offset must fall on a scalar boundary.
func (text Text) CharForByte(b uint64) (uint64, error) {
	prefix, err := text.prefixSummaryByByte(b)
	if err != nil {
		return 0, err
	}
	return prefix.Chars, nil
}

// ByteForUTF16 returns the byte offset with exactly `units` UTF-16 code
// units before it.
//
// When `units` lands between the two code units of a surrogate pair there is
// no such boundary; the offset of the encoding scalar's start is returned
// together with splitsPair=true, so callers can apply their boundary policy.
func (text Text) ByteForUTF16(units uint64) (offset uint64, splitsPair bool, err error) {
	tree, err := treeFromText(text)
	if err != nil {
		return 0, false, err
	}
	total := tree.Summary()
	if units > total.UTF16 {
		return 0, false, ErrIndexOutOfBounds
	}
	if units == 0 {
		return 0, false, nil
	}
	if units == total.UTF16 {
		return total.Bytes, false, nil
	}
	cursor, err := btree.NewCursor[chunk.Chunk, chunk.Summary, uint64](tree, chunk.UTF16Dimension{})
	if err != nil {
		return 0, false, err
	}
	itemIndex, acc, err := cursor.Seek(units)
	if err != nil {
		return 0, false, err
	}
	item, err := tree.At(itemIndex)
	if err != nil {
		return 0, false, err
	}
	localUnits := units - (acc - item.Summary().UTF16)
	localByte, split, err := item.ByteForUTF16(localUnits)
	if err != nil {
		return 0, false, err
	}
	prefix, err := tree.PrefixSummary(itemIndex)
	if err != nil {
		return 0, false, err
	}
	return prefix.Bytes + uint64(localByte), split, nil
}

// UTF16ForByte returns the number of UTF-16 code units encoding the scalars
// before byte offset b.
//
// The offset must fall on a scalar boundary.
func (text Text) UTF16ForByte(b uint64) (uint64, error) {
	prefix, err := text.prefixSummaryByByte(b)
	if err != nil {
		return 0, err
	}
	return prefix.UTF16, nil
}

// prefixSummaryByByte aggregates the summary of bytes [0,b).
//
// b must fall on a scalar boundary. The returned summary follows the chunk
// convention for a trailing '\r': it counts as a (provisional) terminator.
func (text Text) prefixSummaryByByte(b uint64) (chunk.Summary, error) {
	tree, err := treeFromText(text)
	if err != nil {
		return chunk.Summary{}, err
	}
	total := tree.Summary()
	if b > total.Bytes {
		return chunk.Summary{}, ErrIndexOutOfBounds
	}
	if b == 0 {
		return chunk.Summary{}, nil
	}
	if b == total.Bytes {
		return total, nil
	}
	cursor, err := btree.NewCursor[chunk.Chunk, chunk.Summary, uint64](tree, chunk.ByteDimension{})
	if err != nil {
		return chunk.Summary{}, err
	}
	itemIndex, acc, err := cursor.Seek(b + 1)
	if err != nil {
		return chunk.Summary{}, err
	}
	item, err := tree.At(itemIndex)
	if err != nil {
		return chunk.Summary{}, err
	}
	before := acc - item.Summary().Bytes
	local := int(b - before)
	prefix, err := tree.PrefixSummary(itemIndex)
	if err != nil {
		return chunk.Summary{}, err
	}
	if local == 0 {
		return prefix, nil
	}
	partial, err := item.Slice(0, local)
	if err != nil {
		return chunk.Summary{}, ErrMisalignedBoundary
	}
	return (chunk.Monoid{}).Add(prefix, partial.Summary()), nil
}
