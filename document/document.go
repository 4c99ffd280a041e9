// Package document manages versioned snapshots of a synchronized text.
//
// A Doc owns the latest published Version and swaps it atomically: readers
// take lock-free snapshots, writers serialize through the Doc. Because the
// underlying text is immutable, a snapshot stays fully consistent for as
// long as a reader holds it, regardless of concurrent edits.
package document

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/guiguan/caster"
	"github.com/npillmayer/textsync"
	"github.com/npillmayer/textsync/edit"
)

// Error is the error kind type of the document package.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrVersionOrder signals a host-supplied version id that does not increase
// the published version.
const ErrVersionOrder = Error("version id must be greater than the published id")

// ErrDocClosed signals an operation on a closed document.
const ErrDocClosed = Error("document has been closed")

// Version is one published state of a document: an immutable text snapshot
// and its version id.
type Version struct {
	Text textsync.Text
	ID   int64
}

// Doc is a versioned document. Readers call Snapshot concurrently and
// lock-free; writers are serialized internally. The Doc publishes every new
// version to subscribers.
//
// The engine does not arbitrate conflicting writers: whoever publishes later
// wins, and hosts that need stronger coordination serialize their own calls.
type Doc struct {
	mu      sync.Mutex
	current atomic.Pointer[Version]
	caster  *caster.Caster
	closed  bool
}

// Option configures a publication.
type Option func(*publishConfig)

type publishConfig struct {
	id    int64
	hasID bool
}

// WithVersion overrides the version id of a publication. The id must be
// greater than the currently published id.
func WithVersion(id int64) Option {
	return func(cfg *publishConfig) {
		cfg.id = id
		cfg.hasID = true
	}
}

// New creates a document from an initial text.
//
// The initial version id is 0 unless overridden with WithVersion.
func New(initial textsync.Text, opts ...Option) *Doc {
	cfg := publishConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	v := &Version{Text: initial}
	if cfg.hasID {
		v.ID = cfg.id
	}
	doc := &Doc{caster: caster.New(nil)}
	doc.current.Store(v)
	return doc
}

// Snapshot returns the currently published version.
//
// The returned version is immutable and remains valid after later edits.
func (doc *Doc) Snapshot() *Version {
	return doc.current.Load()
}

// Apply applies an edit batch to the published version and publishes the
// result.
//
// The new version id is the published id plus one, unless WithVersion
// supplies a greater id (ErrVersionOrder otherwise). Validation happens
// before publication: a failing batch leaves the published version
// untouched and is reported to the caller only.
func (doc *Doc) Apply(batch edit.Batch, opts ...Option) (*Version, error) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.closed {
		return nil, ErrDocClosed
	}
	base := doc.current.Load()
	text, err := edit.Apply(base.Text, batch)
	if err != nil {
		return nil, err
	}
	return doc.publish(base, text, opts)
}

// Replace publishes a full-replacement version with the given content.
func (doc *Doc) Replace(content string, opts ...Option) (*Version, error) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.closed {
		return nil, ErrDocClosed
	}
	base := doc.current.Load()
	text, err := edit.Apply(base.Text, edit.Batch{edit.Replace(base.Text, content)})
	if err != nil {
		return nil, err
	}
	return doc.publish(base, text, opts)
}

// publish swaps in a new version. Callers hold doc.mu.
func (doc *Doc) publish(base *Version, text textsync.Text, opts []Option) (*Version, error) {
	cfg := publishConfig{id: base.ID + 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hasID && cfg.id <= base.ID {
		return nil, ErrVersionOrder
	}
	v := &Version{Text: text, ID: cfg.id}
	doc.current.Store(v)
	doc.caster.TryPub(v)
	return v, nil
}

// Subscribe returns a channel on which every subsequently published version
// is delivered. The subscription ends when ctx is canceled or the document
// is closed.
//
// Slow subscribers may miss versions: publication never blocks the writer.
func (doc *Doc) Subscribe(ctx context.Context) (<-chan interface{}, error) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.closed {
		return nil, ErrDocClosed
	}
	ch, ok := doc.caster.Sub(ctx, 1)
	if !ok {
		return nil, ErrDocClosed
	}
	return ch, nil
}

// Close tears down the broadcaster and closes all subscriber channels.
// The last published version remains readable through Snapshot.
func (doc *Doc) Close() {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.closed {
		return
	}
	doc.closed = true
	doc.caster.Close()
}
