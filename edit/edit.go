// Package edit applies batches of range edits to a text snapshot.
//
// All ranges in a batch address the same pre-edit snapshot; the applier
// orders them internally so that no position re-resolution is needed. A
// batch either applies completely or not at all.
package edit

import (
	"fmt"
	"sort"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textsync"
)

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// Edit replaces the byte range [Start,End) of a text with Text.
//
// A zero-width range (Start == End) is a pure insertion, an empty Text a
// pure deletion.
type Edit struct {
	Start uint64
	End   uint64
	Text  string
}

// Batch is an ordered collection of edits against one pre-edit snapshot.
//
// Batch order is semantically relevant only for insertions at the same
// offset: the text of a later edit ends up after the text of an earlier one.
type Batch []Edit

// Replace returns the full-replacement edit for a text: a single edit
// covering [0,Len) with the new content.
func Replace(text textsync.Text, content string) Edit {
	return Edit{Start: 0, End: text.Len(), Text: content}
}

// Apply applies a batch of edits to a text and returns the edited text.
//
// Every range is validated against the input snapshot first: Start must not
// exceed End, End must not exceed the text length
// (textsync.ErrMalformedRange), and both offsets must fall on scalar
// boundaries (textsync.ErrMisalignedBoundary). Ranges must not intersect
// (textsync.ErrOverlappingEdits); zero-width inserts at the same offset are
// legal. Any validation error rejects the whole batch and the input text is
// returned unchanged alongside the error.
//
// Edits are applied right-to-left in descending start order, so byte offsets
// of pending edits stay valid without re-resolution. A non-zero range sharing
// its start with zero-width inserts is spliced before them, so the range
// consumes its pre-edit bytes and the inserted text ends up in front of the
// replacement. Same-offset inserts keep their batch order.
func Apply(text textsync.Text, batch Batch) (textsync.Text, error) {
	if len(batch) == 0 {
		return text, nil
	}
	if err := validate(text, batch); err != nil {
		tracer().Errorf("edit batch rejected: %s", err.Error())
		return text, err
	}
	tracer().Debugf("applying %d edits to a text of %d bytes", len(batch), text.Len())
	// Reverse the batch before the stable sort: applying right-to-left, a
	// later same-offset insert must be spliced first so that the earlier
	// edit's text ends up in front of it. Start ties break by descending
	// end, splicing a range before inserts at its start offset.
	ordered := make(Batch, len(batch))
	for i, e := range batch {
		ordered[len(batch)-1-i] = e
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start > ordered[j].Start
		}
		return ordered[i].End > ordered[j].End
	})
	out := text
	var err error
	for _, e := range ordered {
		out, err = out.Splice(e.Start, e.End, e.Text)
		if err != nil {
			return text, err
		}
	}
	return out, nil
}

func validate(text textsync.Text, batch Batch) error {
	size := text.Len()
	for i, e := range batch {
		if e.Start > e.End || e.End > size {
			return fmt.Errorf("edit %d [%d,%d): %w", i, e.Start, e.End, textsync.ErrMalformedRange)
		}
		if !text.IsCharBoundary(e.Start) || !text.IsCharBoundary(e.End) {
			return fmt.Errorf("edit %d [%d,%d): %w", i, e.Start, e.End, textsync.ErrMisalignedBoundary)
		}
	}
	return checkOverlap(batch)
}

// checkOverlap rejects intersecting ranges: a range starting before another
// range has ended. Zero-width ranges may share an offset with each other and
// may sit at the boundary of any range.
func checkOverlap(batch Batch) error {
	ordered := make(Batch, len(batch))
	copy(ordered, batch)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].End < ordered[j].End
	})
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if cur.Start < prev.End {
			return fmt.Errorf("ranges [%d,%d) and [%d,%d): %w",
				prev.Start, prev.End, cur.Start, cur.End, textsync.ErrOverlappingEdits)
		}
	}
	return nil
}
