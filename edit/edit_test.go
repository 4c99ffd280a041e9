package edit

import (
	"errors"
	"testing"

	"github.com/npillmayer/textsync"
)

func TestApplyBatchTwoLines(t *testing.T) {
	text := textsync.FromString("line1\nline2\nline3")
	batch := Batch{
		{Start: 0, End: 5, Text: "LINE1"},
		{Start: 6, End: 11, Text: "LINE2"},
	}
	out, err := Apply(text, batch)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "LINE1\nLINE2\nline3" {
		t.Errorf("unexpected result: %q", out.String())
	}
	if text.String() != "line1\nline2\nline3" {
		t.Errorf("input snapshot changed")
	}
}

func TestApplyBatchOrderIndependence(t *testing.T) {
	text := textsync.FromString("line1\nline2\nline3")
	forward := Batch{
		{Start: 0, End: 5, Text: "LINE1"},
		{Start: 6, End: 11, Text: "LINE2"},
	}
	reversed := Batch{forward[1], forward[0]}
	a, err := Apply(text, forward)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Apply(text, reversed)
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("disjoint edits must not interfere: %q vs %q", a.String(), b.String())
	}
}

func TestApplyRejectsOverlap(t *testing.T) {
	text := textsync.FromString("0123456789")
	batch := Batch{
		{Start: 2, End: 5, Text: "a"},
		{Start: 4, End: 8, Text: "b"},
	}
	out, err := Apply(text, batch)
	if !errors.Is(err, textsync.ErrOverlappingEdits) {
		t.Fatalf("expected ErrOverlappingEdits, got %v", err)
	}
	if out.String() != "0123456789" {
		t.Errorf("rejected batch must leave the text untouched")
	}
}

func TestApplyRejectsMalformedRange(t *testing.T) {
	text := textsync.FromString("0123456789")
	if _, err := Apply(text, Batch{{Start: 5, End: 3}}); !errors.Is(err, textsync.ErrMalformedRange) {
		t.Errorf("expected ErrMalformedRange for end < start, got %v", err)
	}
	if _, err := Apply(text, Batch{{Start: 5, End: 30}}); !errors.Is(err, textsync.ErrMalformedRange) {
		t.Errorf("expected ErrMalformedRange for end beyond length, got %v", err)
	}
}

func TestApplyRejectsMisalignedBoundary(t *testing.T) {
	text := textsync.FromString("héllo")
	_, err := Apply(text, Batch{{Start: 2, End: 3, Text: "x"}})
	if !errors.Is(err, textsync.ErrMisalignedBoundary) {
		t.Errorf("expected ErrMisalignedBoundary, got %v", err)
	}
}

func TestApplyInsertionsAndDeletions(t *testing.T) {
	text := textsync.FromString("abcdef")
	out, err := Apply(text, Batch{
		{Start: 0, End: 0, Text: ">"},
		{Start: 3, End: 3, Text: "|"},
		{Start: 4, End: 6, Text: ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != ">abc|d" {
		t.Errorf("unexpected result: %q", out.String())
	}
	// Deleting everything leaves the empty text.
	out, err = Apply(text, Batch{{Start: 0, End: 6}})
	if err != nil {
		t.Fatal(err)
	}
	if !out.IsVoid() {
		t.Errorf("expected void text, got %q", out.String())
	}
}

func TestApplyInsertAtStartOfDeletedRange(t *testing.T) {
	text := textsync.FromString("abcdeXYZfg")
	// Insert and deletion share byte offset 5; the deletion must consume its
	// pre-edit range [5,8) regardless of batch order, with the inserted text
	// ending up in front of the deleted range.
	batches := []Batch{
		{{Start: 5, End: 8, Text: ""}, {Start: 5, End: 5, Text: "PQ"}},
		{{Start: 5, End: 5, Text: "PQ"}, {Start: 5, End: 8, Text: ""}},
	}
	for i, batch := range batches {
		out, err := Apply(text, batch)
		if err != nil {
			t.Fatalf("batch %d: %v", i, err)
		}
		if out.String() != "abcdePQfg" {
			t.Errorf("batch %d: deletion consumed inserted text, got %q", i, out.String())
		}
	}
}

func TestApplyInsertAtEndOfDeletedRange(t *testing.T) {
	text := textsync.FromString("abcdeXYZfg")
	out, err := Apply(text, Batch{
		{Start: 8, End: 8, Text: "PQ"},
		{Start: 5, End: 8, Text: ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	// The insert addresses pre-edit byte 8, directly after the deleted range.
	if out.String() != "abcdePQfg" {
		t.Errorf("unexpected result: %q", out.String())
	}
}

func TestApplySameOffsetInsertsKeepBatchOrder(t *testing.T) {
	text := textsync.FromString("ab")
	out, err := Apply(text, Batch{
		{Start: 1, End: 1, Text: "1"},
		{Start: 1, End: 1, Text: "2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "a12b" {
		t.Errorf("same-offset inserts must keep batch order, got %q", out.String())
	}
}

func TestApplyEquivalentToSequentialDescending(t *testing.T) {
	text := textsync.FromString("The quick brown fox jumps over the lazy dog")
	batch := Batch{
		{Start: 4, End: 9, Text: "slow"},
		{Start: 16, End: 19, Text: "cat"},
		{Start: 35, End: 39, Text: "busy"},
	}
	batched, err := Apply(text, batch)
	if err != nil {
		t.Fatal(err)
	}
	sequential := text
	for i := len(batch) - 1; i >= 0; i-- {
		sequential, err = sequential.Splice(batch[i].Start, batch[i].End, batch[i].Text)
		if err != nil {
			t.Fatal(err)
		}
	}
	if batched.String() != sequential.String() {
		t.Errorf("batch application diverges from sequential descending: %q vs %q",
			batched.String(), sequential.String())
	}
}

func TestReplaceIsDegenerateMaximalEdit(t *testing.T) {
	text := textsync.FromString("old content")
	out, err := Apply(text, Batch{Replace(text, "new content")})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "new content" {
		t.Errorf("unexpected replace result: %q", out.String())
	}
	// Replace equals delete-all plus insert.
	viaSplice, err := text.Splice(0, text.Len(), "new content")
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != viaSplice.String() {
		t.Errorf("replace differs from splice over the whole range")
	}
	// Replacing with the same content is idempotent.
	again, err := Apply(out, Batch{Replace(out, "new content")})
	if err != nil {
		t.Fatal(err)
	}
	if again.String() != out.String() {
		t.Errorf("full replace is not idempotent")
	}
}

func TestApplyEmptyBatch(t *testing.T) {
	text := textsync.FromString("unchanged")
	out, err := Apply(text, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "unchanged" {
		t.Errorf("empty batch must be a no-op")
	}
}
