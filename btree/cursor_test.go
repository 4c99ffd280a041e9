package btree

import "testing"

func TestCursorSeekBytes(t *testing.T) {
	tree := newSpanTree(t)
	var err error
	for _, s := range []string{"ab", "c\n", "de\nf"} {
		tree, err = tree.InsertAt(tree.Len(), span(s))
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	cursor, err := NewCursor[span, spanSummary, uint64](tree, spanByteDim{})
	if err != nil {
		t.Fatalf("new cursor failed: %v", err)
	}

	type tc struct {
		target uint64
		idx    int
		acc    uint64
	}
	cases := []tc{
		{target: 0, idx: 0, acc: 0},
		{target: 1, idx: 0, acc: 2},
		{target: 2, idx: 0, acc: 2},
		{target: 3, idx: 1, acc: 4},
		{target: 4, idx: 1, acc: 4},
		{target: 5, idx: 2, acc: 8},
		{target: 9, idx: 3, acc: 8},
	}
	for _, c := range cases {
		idx, acc, err := cursor.Seek(c.target)
		if err != nil {
			t.Fatalf("seek(%d) failed: %v", c.target, err)
		}
		if idx != c.idx || acc != c.acc {
			t.Fatalf("seek(%d): got (idx=%d, acc=%d), want (idx=%d, acc=%d)",
				c.target, idx, acc, c.idx, c.acc)
		}
	}
}

func TestCursorSeekLines(t *testing.T) {
	tree := newSpanTree(t)
	var err error
	for _, s := range []string{"ab", "c\n", "de\nf"} {
		tree, err = tree.InsertAt(tree.Len(), span(s))
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	cursor, err := NewCursor[span, spanSummary, uint64](tree, spanLineDim{})
	if err != nil {
		t.Fatalf("new cursor failed: %v", err)
	}

	type tc struct {
		target uint64
		idx    int
		acc    uint64
	}
	cases := []tc{
		{target: 0, idx: 0, acc: 0},
		{target: 1, idx: 1, acc: 1},
		{target: 2, idx: 2, acc: 2},
		{target: 3, idx: 3, acc: 2},
	}
	for _, c := range cases {
		idx, acc, err := cursor.Seek(c.target)
		if err != nil {
			t.Fatalf("seek(%d) failed: %v", c.target, err)
		}
		if idx != c.idx || acc != c.acc {
			t.Fatalf("seek(%d): got (idx=%d, acc=%d), want (idx=%d, acc=%d)",
				c.target, idx, acc, c.idx, c.acc)
		}
	}
}

func TestCursorSeekDeepTree(t *testing.T) {
	tree := newSpanTree(t)
	var err error
	for range 500 {
		tree, err = tree.InsertAt(tree.Len(), span("xy"))
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	cursor, err := NewCursor[span, spanSummary, uint64](tree, spanByteDim{})
	if err != nil {
		t.Fatalf("new cursor failed: %v", err)
	}
	idx, acc, err := cursor.Seek(501)
	if err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	if idx != 250 || acc != 502 {
		t.Fatalf("seek(501): got (idx=%d, acc=%d), want (idx=250, acc=502)", idx, acc)
	}
}

func TestCursorRequiresDimension(t *testing.T) {
	tree := newSpanTree(t)
	if _, err := NewCursor[span, spanSummary, uint64](tree, nil); err == nil {
		t.Fatalf("expected dimension error, got nil")
	}
}

func TestCursorSeekUninitializedFails(t *testing.T) {
	c := &Cursor[span, spanSummary, uint64]{}
	if _, _, err := c.Seek(1); err == nil {
		t.Fatalf("expected error for uninitialized cursor")
	}
}
