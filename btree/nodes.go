package btree

// treeNode is the common interface of leaf and internal nodes.
//
// size reports the number of leaf items under the node; it is cached so that
// positional routing and seeks stay O(log n) instead of re-counting subtrees.
type treeNode[I SummarizedItem[S], S any] interface {
	isLeaf() bool
	Summary() S
	size() int
}

type leafNode[I SummarizedItem[S], S any] struct {
	summary S
	items   []I
}

func (l *leafNode[I, S]) isLeaf() bool { return true }
func (l *leafNode[I, S]) Summary() S   { return l.summary }
func (l *leafNode[I, S]) size() int    { return len(l.items) }

type innerNode[I SummarizedItem[S], S any] struct {
	summary  S
	count    int
	children []treeNode[I, S]
}

func (n *innerNode[I, S]) isLeaf() bool { return false }
func (n *innerNode[I, S]) Summary() S   { return n.summary }
func (n *innerNode[I, S]) size() int    { return n.count }

// makeLeaf materializes a new leaf from a copied item slice and computes its
// summary.
func (t *Tree[I, S]) makeLeaf(items []I) *leafNode[I, S] {
	assert(len(items) <= MaxLeafItems+1, "makeLeaf exceeds leaf capacity")
	leaf := &leafNode[I, S]{items: append([]I(nil), items...)}
	t.recomputeLeafSummary(leaf)
	return leaf
}

// makeInternal materializes a new internal node from copied children and
// computes summary and size from child caches.
func (t *Tree[I, S]) makeInternal(children ...treeNode[I, S]) *innerNode[I, S] {
	assert(len(children) <= MaxChildren+1, "makeInternal exceeds node capacity")
	inner := &innerNode[I, S]{children: append([]treeNode[I, S](nil), children...)}
	t.recomputeInnerSummary(inner)
	return inner
}

func (t *Tree[I, S]) cloneLeaf(leaf *leafNode[I, S]) *leafNode[I, S] {
	return t.makeLeaf(leaf.items)
}

func (t *Tree[I, S]) cloneInner(inner *innerNode[I, S]) *innerNode[I, S] {
	return t.makeInternal(inner.children...)
}

func (t *Tree[I, S]) recomputeLeafSummary(leaf *leafNode[I, S]) {
	sum := t.cfg.Monoid.Zero()
	for _, item := range leaf.items {
		sum = t.cfg.Monoid.Add(sum, item.Summary())
	}
	leaf.summary = sum
}

func (t *Tree[I, S]) recomputeInnerSummary(inner *innerNode[I, S]) {
	sum := t.cfg.Monoid.Zero()
	count := 0
	for _, child := range inner.children {
		sum = t.cfg.Monoid.Add(sum, child.Summary())
		count += child.size()
	}
	inner.summary = sum
	inner.count = count
}

func (t *Tree[I, S]) insertLeafItemsAt(leaf *leafNode[I, S], index int, items ...I) {
	assert(index >= 0 && index <= len(leaf.items), "insertLeafItemsAt index out of range")
	leaf.items = append(leaf.items[:index], append(append([]I(nil), items...), leaf.items[index:]...)...)
	t.recomputeLeafSummary(leaf)
}

func (t *Tree[I, S]) removeLeafItemsRange(leaf *leafNode[I, S], from, to int) {
	assert(from >= 0 && to >= from && to <= len(leaf.items), "removeLeafItemsRange out of range")
	leaf.items = append(leaf.items[:from], leaf.items[to:]...)
	t.recomputeLeafSummary(leaf)
}

func (t *Tree[I, S]) insertChildAt(inner *innerNode[I, S], index int, child treeNode[I, S]) {
	assert(index >= 0 && index <= len(inner.children), "insertChildAt index out of range")
	inner.children = append(inner.children[:index],
		append([]treeNode[I, S]{child}, inner.children[index:]...)...)
	t.recomputeInnerSummary(inner)
}

func (t *Tree[I, S]) removeChildAt(inner *innerNode[I, S], index int) {
	assert(index >= 0 && index < len(inner.children), "removeChildAt index out of range")
	inner.children = append(inner.children[:index], inner.children[index+1:]...)
	t.recomputeInnerSummary(inner)
}

func (t *Tree[I, S]) leafUnderflow(leaf *leafNode[I, S]) bool {
	return len(leaf.items) < Base
}

func (t *Tree[I, S]) innerUnderflow(inner *innerNode[I, S]) bool {
	return len(inner.children) < Base
}

func (t *Tree[I, S]) innerOverflow(inner *innerNode[I, S]) bool {
	return len(inner.children) > MaxChildren
}

// insertIntoLeafLocal inserts one item into a path-copied leaf and splits on
// overflow. The right return is non-nil only when the leaf split.
func (t *Tree[I, S]) insertIntoLeafLocal(leaf *leafNode[I, S], index int, item I) (*leafNode[I, S], *leafNode[I, S], error) {
	if index < 0 || index > len(leaf.items) {
		return nil, nil, ErrIndexOutOfBounds
	}
	cloned := t.cloneLeaf(leaf)
	t.insertLeafItemsAt(cloned, index, item)
	if len(cloned.items) <= MaxLeafItems {
		return cloned, nil, nil
	}
	mid := len(cloned.items) / 2
	left := t.makeLeaf(cloned.items[:mid])
	right := t.makeLeaf(cloned.items[mid:])
	return left, right, nil
}

// splitInner splits one overflowing internal node into two siblings.
func (t *Tree[I, S]) splitInner(inner *innerNode[I, S]) (*innerNode[I, S], *innerNode[I, S]) {
	n := len(inner.children)
	if n <= MaxChildren {
		return t.cloneInner(inner), nil
	}
	assert(n <= 2*MaxChildren, "splitInner requires more than one promoted sibling")
	mid := n / 2
	left := t.makeInternal(inner.children[:mid]...)
	right := t.makeInternal(inner.children[mid:]...)
	assert(len(left.children) >= Base && len(right.children) >= Base,
		"splitInner violates internal occupancy bounds")
	return left, right
}

// normalizeNode removes typed-nil interface wrappers.
//
// It prevents accidental non-nil interface values that wrap nil pointers.
func normalizeNode[I SummarizedItem[S], S any](n treeNode[I, S]) treeNode[I, S] {
	switch v := n.(type) {
	case nil:
		return nil
	case *leafNode[I, S]:
		if v == nil {
			return nil
		}
	case *innerNode[I, S]:
		if v == nil {
			return nil
		}
	}
	return n
}
