package textsync

import (
	"unicode/utf8"

	"github.com/npillmayer/textsync/chunk"
)

// Builder incrementally stages text and finalizes it into a Text.
//
// Builder collects UTF-8 text as fixed-size chunks and materializes the rope
// only when Text() is called. This keeps staging cheap for ingest pipelines
// that assemble documents from many fragments.
//
// The empty instance is a valid builder, but clients may use NewBuilder.
type Builder struct {
	// front keeps prepended chunks in reverse logical order.
	front []chunk.Chunk
	// back keeps appended chunks in logical order.
	back []chunk.Chunk

	done  bool
	dirty bool
	text  Text
}

// NewBuilder creates a new and empty text builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Text returns the text built from all staged fragments.
//
// It is illegal to continue adding fragments after Text has been called, but
// Text may be called multiple times.
func (b *Builder) Text() Text {
	if b == nil {
		return Text{}
	}
	if b.dirty {
		b.text = b.buildText()
		b.dirty = false
	}
	b.done = true
	if b.text.IsVoid() {
		tracer().Debugf("text builder: text is void")
	}
	return b.text
}

// Len returns the byte length of the staged build, without materializing it.
func (b *Builder) Len() uint64 {
	if b == nil {
		return 0
	}
	var n uint64
	for _, c := range b.front {
		n += uint64(c.Len())
	}
	for _, c := range b.back {
		n += uint64(c.Len())
	}
	return n
}

// Reset drops the staged build and prepares the builder for a fresh build.
func (b *Builder) Reset() {
	b.front = nil
	b.back = nil
	b.done = false
	b.dirty = false
	b.text = Text{}
}

// AppendString appends UTF-8 text to the staged build.
func (b *Builder) AppendString(text string) error {
	if !utf8.ValidString(text) {
		return chunk.ErrInvalidUTF8
	}
	return b.AppendBytes([]byte(text))
}

// PrependString prepends UTF-8 text to the staged build.
func (b *Builder) PrependString(text string) error {
	if !utf8.ValidString(text) {
		return chunk.ErrInvalidUTF8
	}
	return b.PrependBytes([]byte(text))
}

// AppendBytes appends UTF-8 bytes to the staged build.
func (b *Builder) AppendBytes(text []byte) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrTextCompleted
	}
	chunks, err := splitToChunks(text)
	if err != nil {
		return err
	}
	for _, c := range chunks {
		if len(b.back) > 0 {
			last := len(b.back) - 1
			merged, ok := b.back[last].Append(c)
			if ok {
				b.back[last] = merged
				continue
			}
		}
		b.back = append(b.back, c)
	}
	if len(chunks) > 0 {
		b.dirty = true
	}
	return nil
}

// PrependBytes prepends UTF-8 bytes to the staged build.
func (b *Builder) PrependBytes(text []byte) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrTextCompleted
	}
	chunks, err := splitToChunks(text)
	if err != nil {
		return err
	}
	// front is stored in reverse logical order.
	for i := len(chunks) - 1; i >= 0; i-- {
		b.front = append(b.front, chunks[i])
	}
	if len(chunks) > 0 {
		b.dirty = true
	}
	return nil
}

// AppendText appends the fragments of an existing text to the staged build.
//
// The text's chunks are staged as they are, so assembling a document from
// rope snapshots does not re-encode their bytes.
func (b *Builder) AppendText(text Text) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrTextCompleted
	}
	return text.EachChunk(func(c chunk.Chunk, _ uint64) error {
		return b.AppendChunk(c)
	})
}

// AppendChunk appends a pre-built chunk.
func (b *Builder) AppendChunk(c chunk.Chunk) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrTextCompleted
	}
	if c.IsEmpty() {
		return nil
	}
	if len(b.back) > 0 {
		last := len(b.back) - 1
		merged, ok := b.back[last].Append(c)
		if ok {
			b.back[last] = merged
			b.dirty = true
			return nil
		}
	}
	b.back = append(b.back, c)
	b.dirty = true
	return nil
}

// PrependChunk prepends a pre-built chunk.
func (b *Builder) PrependChunk(c chunk.Chunk) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrTextCompleted
	}
	if c.IsEmpty() {
		return nil
	}
	b.front = append(b.front, c)
	b.dirty = true
	return nil
}

func (b *Builder) buildText() Text {
	parts := b.orderedChunks()
	if len(parts) == 0 {
		return Text{}
	}
	tree, err := newChunkTree()
	assert(err == nil, "builder: btree.New failed")
	tree, err = tree.InsertAt(0, parts...)
	assert(err == nil, "builder: btree.InsertAt failed")
	return textFromTree(tree)
}

func (b *Builder) orderedChunks() []chunk.Chunk {
	total := len(b.front) + len(b.back)
	if total == 0 {
		return nil
	}
	out := make([]chunk.Chunk, 0, total)
	for i := len(b.front) - 1; i >= 0; i-- {
		out = append(out, b.front[i])
	}
	out = append(out, b.back...)
	return out
}

// splitToChunks splits UTF-8 bytes into chunk-sized pieces.
//
// Boundaries are adjusted so no chunk starts or ends in the middle of a UTF-8
// rune. This mirrors chunk.NewBytes requirements for ingest pipelines.
func splitToChunks(text []byte) ([]chunk.Chunk, error) {
	if len(text) == 0 {
		return nil, nil
	}
	if !utf8.Valid(text) {
		return nil, chunk.ErrInvalidUTF8
	}
	parts := make([]chunk.Chunk, 0, 1+len(text)/chunk.MaxBase)
	for i := 0; i < len(text); {
		end := i + chunk.MaxBase
		if end >= len(text) {
			end = len(text)
		} else {
			for end > i && !utf8.RuneStart(text[end]) {
				end--
			}
			if end == i {
				return nil, chunk.ErrInvalidUTF8
			}
		}
		c, err := chunk.NewBytes(text[i:end])
		if err != nil {
			return nil, err
		}
		parts = append(parts, c)
		i = end
	}
	return parts, nil
}
