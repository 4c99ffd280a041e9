package textsync

import (
	"github.com/npillmayer/textsync/btree"
	"github.com/npillmayer/textsync/chunk"
)

// LineStartByte returns the byte offset at which line begins.
//
// Line numbers are zero-based; line must be smaller than LineCount
// (ErrLineOutOfRange otherwise). Line 0 always starts at offset 0, every
// other line starts directly after its predecessor's terminator.
func (text Text) LineStartByte(line uint64) (uint64, error) {
	if line == 0 {
		return 0, nil
	}
	tree, err := treeFromText(text)
	if err != nil {
		return 0, err
	}
	if line > tree.Summary().Breaks {
		return 0, ErrLineOutOfRange
	}
	cursor, err := btree.NewCursor[chunk.Chunk, chunk.Summary, chunk.BreakAcc](tree, chunk.BreakDimension{})
	if err != nil {
		return 0, err
	}
	itemIndex, _, err := cursor.Seek(chunk.BreakAcc{N: line})
	if err != nil {
		return 0, err
	}
	if itemIndex >= tree.Len() {
		return 0, ErrLineOutOfRange
	}
	item, err := tree.At(itemIndex)
	if err != nil {
		return 0, err
	}
	prefix, err := tree.PrefixSummary(itemIndex)
	if err != nil {
		return 0, err
	}
	// Scan the found chunk for the line-th terminator completion. A leading
	// '\n' pairing with the previous chunk's trailing '\r' belongs to a
	// terminator the prefix already counted.
	count := prefix.Breaks
	for i := 0; i < item.Len(); i++ {
		if item.Breaks()&chunkBit(i) == 0 {
			continue
		}
		if i == 0 && prefix.EndsCR && item.ByteAt(0) == '\n' {
			continue
		}
		count++
		if count != line {
			continue
		}
		end := prefix.Bytes + uint64(i) + 1
		// A trailing '\r' is provisional: when the next document byte is
		// '\n' the terminator is a CRLF pair and the line starts after it.
		if item.ByteAt(i) == '\r' && i == item.Len()-1 && end < text.Len() {
			if nb, err := text.ByteAt(end); err == nil && nb == '\n' {
				end++
			}
		}
		return end, nil
	}
	return 0, ErrLineOutOfRange
}

// ByteToLine returns the zero-based line number containing byte offset b.
//
// b == Len() maps to the last line. The offset must fall on a scalar
// boundary. An offset pointing between the '\r' and '\n' of a CRLF pair
// belongs to the line the pair terminates.
func (text Text) ByteToLine(b uint64) (uint64, error) {
	total := text.Len()
	if b > total {
		return 0, ErrIndexOutOfBounds
	}
	if b == total {
		return text.LineCount() - 1, nil
	}
	prefix, err := text.prefixSummaryByByte(b)
	if err != nil {
		return 0, err
	}
	line := prefix.Breaks
	if prefix.EndsCR {
		// The prefix counted its trailing '\r' as a terminator. If b points
		// at the pairing '\n' the terminator is not yet complete at b, so b
		// still belongs to the terminated line.
		if nb, err := text.ByteAt(b); err == nil && nb == '\n' {
			line--
		}
	}
	return line, nil
}

func chunkBit(i int) chunk.Bitmap {
	if i < 0 || i >= chunk.MaxBase {
		return 0
	}
	return chunk.Bitmap(1) << uint(i)
}
