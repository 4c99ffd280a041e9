package btree

// At returns the leaf item at item index.
func (t *Tree[I, S]) At(index int) (I, error) {
	var zero I
	if t == nil || t.root == nil {
		return zero, ErrIndexOutOfBounds
	}
	if index < 0 || index >= t.Len() {
		return zero, ErrIndexOutOfBounds
	}
	return t.atNode(t.root, t.height, index)
}

func (t *Tree[I, S]) atNode(n treeNode[I, S], height int, index int) (I, error) {
	var zero I
	assert(n != nil, "atNode called with nil node")
	assert(height > 0, "atNode called with non-positive height")
	if height == 1 {
		leaf := n.(*leafNode[I, S])
		if index < 0 || index >= len(leaf.items) {
			return zero, ErrIndexOutOfBounds
		}
		return leaf.items[index], nil
	}
	inner := n.(*innerNode[I, S])
	remaining := index
	for _, child := range inner.children {
		childItems := child.size()
		if remaining < childItems {
			return t.atNode(child, height-1, remaining)
		}
		remaining -= childItems
	}
	assert(false, "atNode index routing exceeded subtree size")
	return zero, ErrIndexOutOfBounds
}

// PrefixSummary aggregates the summaries of items [0, index).
//
// index == Len() yields the root summary. Whole subtrees left of the routing
// path contribute their cached summaries, so the walk is O(log n).
func (t *Tree[I, S]) PrefixSummary(index int) (S, error) {
	zero := t.cfg.Monoid.Zero()
	if t == nil {
		return zero, ErrIndexOutOfBounds
	}
	if index < 0 || index > t.Len() {
		return zero, ErrIndexOutOfBounds
	}
	if index == 0 || t.root == nil {
		return zero, nil
	}
	return t.prefixNode(t.root, t.height, index, zero), nil
}

func (t *Tree[I, S]) prefixNode(n treeNode[I, S], height, index int, acc S) S {
	assert(n != nil, "prefixNode called with nil node")
	assert(height > 0, "prefixNode called with non-positive height")
	if index >= n.size() {
		return t.cfg.Monoid.Add(acc, n.Summary())
	}
	if height == 1 {
		leaf := n.(*leafNode[I, S])
		for i := 0; i < index; i++ {
			acc = t.cfg.Monoid.Add(acc, leaf.items[i].Summary())
		}
		return acc
	}
	inner := n.(*innerNode[I, S])
	remaining := index
	for _, child := range inner.children {
		childItems := child.size()
		if remaining < childItems {
			return t.prefixNode(child, height-1, remaining, acc)
		}
		acc = t.cfg.Monoid.Add(acc, child.Summary())
		remaining -= childItems
	}
	return acc
}

// ForEachItem visits all items in order. The callback returns false to stop
// early.
func (t *Tree[I, S]) ForEachItem(visit func(index int, item I) bool) {
	if t == nil || t.root == nil || visit == nil {
		return
	}
	t.eachNode(t.root, 0, visit)
}

func (t *Tree[I, S]) eachNode(n treeNode[I, S], startIndex int, visit func(index int, item I) bool) bool {
	assert(n != nil, "eachNode called with nil node")
	if n.isLeaf() {
		leaf := n.(*leafNode[I, S])
		for i, item := range leaf.items {
			if !visit(startIndex+i, item) {
				return false
			}
		}
		return true
	}
	inner := n.(*innerNode[I, S])
	idx := startIndex
	for _, child := range inner.children {
		if !t.eachNode(child, idx, visit) {
			return false
		}
		idx += child.size()
	}
	return true
}
