package textsync

import (
	"fmt"

	"github.com/npillmayer/textsync/btree"
	"github.com/npillmayer/textsync/chunk"
)

func newChunkTree() (*btree.Tree[chunk.Chunk, chunk.Summary], error) {
	cfg := btree.Config[chunk.Summary]{Monoid: chunk.Monoid{}}
	return btree.New[chunk.Chunk, chunk.Summary](cfg)
}

func treeFromText(text Text) (*btree.Tree[chunk.Chunk, chunk.Summary], error) {
	if text.tree != nil {
		return text.tree, nil
	}
	return newChunkTree()
}

func textFromTree(tree *btree.Tree[chunk.Chunk, chunk.Summary]) Text {
	if tree == nil || tree.IsEmpty() {
		return Text{}
	}
	return Text{tree: tree}
}

func concatTree(text Text, others ...Text) Text {
	all := make([]Text, 0, len(others)+1)
	if !text.IsVoid() {
		all = append(all, text)
	}
	for _, c := range others {
		if !c.IsVoid() {
			all = append(all, c)
		}
	}
	if len(all) == 0 {
		tracer().Debugf("text concat: all texts are void")
		return Text{}
	}
	tracer().Debugf("text concat: %d non-void texts", len(all))
	base, err := treeFromText(all[0])
	assert(err == nil, "concatTree: cannot convert base text to tree")
	for _, c := range all[1:] {
		other, convErr := treeFromText(c)
		assert(convErr == nil, "concatTree: cannot convert rhs text to tree")
		base, err = base.Concat(other)
		assert(err == nil, "concatTree: btree concat failed")
	}
	return textFromTree(base)
}

func splitTree(text Text, i uint64) (Text, Text, error) {
	tree, err := treeFromText(text)
	if err != nil {
		return Text{}, Text{}, err
	}
	left, right, err := splitTreeByByte(tree, i)
	if err != nil {
		return Text{}, Text{}, err
	}
	return textFromTree(left), textFromTree(right), nil
}

func splitTreeByByte(tree *btree.Tree[chunk.Chunk, chunk.Summary], i uint64) (*btree.Tree[chunk.Chunk, chunk.Summary], *btree.Tree[chunk.Chunk, chunk.Summary], error) {
	total := tree.Summary().Bytes
	if i > total {
		return nil, nil, ErrIndexOutOfBounds
	}
	if i == 0 {
		empty, err := newChunkTree()
		if err != nil {
			return nil, nil, err
		}
		return empty, tree, nil
	}
	if i == total {
		empty, err := newChunkTree()
		if err != nil {
			return nil, nil, err
		}
		return tree, empty, nil
	}
	cursor, err := btree.NewCursor[chunk.Chunk, chunk.Summary, uint64](tree, chunk.ByteDimension{})
	if err != nil {
		return nil, nil, err
	}
	itemIndex, acc, err := cursor.Seek(i)
	if err != nil {
		return nil, nil, err
	}
	if itemIndex < 0 || itemIndex >= tree.Len() {
		return nil, nil, ErrIndexOutOfBounds
	}
	item, err := tree.At(itemIndex)
	if err != nil {
		return nil, nil, err
	}
	itemBytes := item.Summary().Bytes
	before := acc - itemBytes
	local := i - before
	if local == 0 {
		return tree.SplitAt(itemIndex)
	}
	if local == itemBytes {
		return tree.SplitAt(itemIndex + 1)
	}
	tracer().Debugf("split at %d cuts fragment %d at local offset %d", i, itemIndex, local)
	leftChunk, rightChunk, err := item.SplitAt(int(local))
	if err != nil {
		return nil, nil, fmt.Errorf("split index %d is not on a character boundary: %w", i, ErrMisalignedBoundary)
	}
	left, right, err := tree.SplitAt(itemIndex)
	if err != nil {
		return nil, nil, err
	}
	right, err = right.DeleteAt(0)
	if err != nil {
		return nil, nil, err
	}
	left, err = left.InsertAt(left.Len(), leftChunk)
	if err != nil {
		return nil, nil, err
	}
	right, err = right.InsertAt(0, rightChunk)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func insertTree(text Text, c Text, i uint64) (Text, error) {
	if text.IsVoid() && i == 0 {
		return c, nil
	}
	if text.Len() < i {
		return Text{}, ErrIndexOutOfBounds
	}
	if c.IsVoid() {
		tracer().Debugf("text insert: subtext is void")
		return text, nil
	}
	left, right, err := splitTree(text, i)
	if err != nil {
		return Text{}, err
	}
	return concatTree(left, c, right), nil
}

func cutTree(text Text, i, l uint64) (Text, Text, error) {
	if l == 0 {
		return text, Text{}, nil
	}
	if text.Len() < i || text.Len() < i+l {
		return Text{}, Text{}, ErrIndexOutOfBounds
	}
	tracer().Debugf("cut [%d,%d) of |text|=%d", i, i+l, text.Len())
	left, rest, err := splitTree(text, i)
	if err != nil {
		return Text{}, Text{}, err
	}
	mid, right, err := splitTree(rest, l)
	if err != nil {
		return Text{}, Text{}, err
	}
	return concatTree(left, right), mid, nil
}

func substrTree(text Text, i, l uint64) (Text, error) {
	if l == 0 {
		return Text{}, nil
	}
	if text.Len() < i || text.Len() < i+l {
		return Text{}, ErrIndexOutOfBounds
	}
	_, rest, err := splitTree(text, i)
	if err != nil {
		return Text{}, err
	}
	sub, _, err := splitTree(rest, l)
	if err != nil {
		return Text{}, err
	}
	return sub, nil
}

func reportTree(text Text, i, l uint64) (string, error) {
	sub, err := substrTree(text, i, l)
	if err != nil {
		return "", err
	}
	return sub.String(), nil
}

func indexTree(text Text, i uint64) (chunk.Chunk, uint64, error) {
	tree, err := treeFromText(text)
	if err != nil {
		return chunk.Chunk{}, 0, err
	}
	if i >= tree.Summary().Bytes {
		return chunk.Chunk{}, 0, ErrIndexOutOfBounds
	}
	cursor, err := btree.NewCursor[chunk.Chunk, chunk.Summary, uint64](tree, chunk.ByteDimension{})
	if err != nil {
		return chunk.Chunk{}, 0, err
	}
	itemIndex, acc, err := cursor.Seek(i + 1)
	if err != nil {
		return chunk.Chunk{}, 0, err
	}
	item, err := tree.At(itemIndex)
	if err != nil {
		return chunk.Chunk{}, 0, err
	}
	before := acc - item.Summary().Bytes
	return item, i - before, nil
}
