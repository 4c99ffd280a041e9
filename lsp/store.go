// Package lsp adapts the synchronization engine to Language Server Protocol
// document types.
//
// Store keeps one versioned document per URI and consumes
// go.lsp.dev/protocol content-change events in the encoding negotiated at
// store construction. The adapter stays at the data-structure level: wire
// framing, JSON-RPC and server lifecycle remain host responsibilities.
package lsp

import (
	"fmt"
	"sync"

	"github.com/npillmayer/textsync"
	"github.com/npillmayer/textsync/document"
	"github.com/npillmayer/textsync/edit"
	"github.com/npillmayer/textsync/position"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Error is the error kind type of the lsp package.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrNotOpen signals an operation on a URI without an open document.
const ErrNotOpen = Error("document is not open")

// ErrAlreadyOpen signals opening a URI that already has an open document.
const ErrAlreadyOpen = Error("document is already open")

// Store is a URI-keyed collection of synchronized documents.
//
// All position translation uses the encoding and surrogate policy fixed at
// construction, mirroring the one-time encoding negotiation of the protocol
// handshake.
type Store struct {
	mu    sync.RWMutex
	docs  map[uri.URI]*document.Doc
	codec position.Codec
}

// NewStore creates a document store for a negotiated position encoding.
func NewStore(encoding position.Encoding, policy position.SurrogatePolicy) *Store {
	return &Store{
		docs:  make(map[uri.URI]*document.Doc),
		codec: position.Codec{Encoding: encoding, Policy: policy},
	}
}

// Open registers a document with its full initial content and version.
func (s *Store) Open(docURI uri.URI, content string, version int32) error {
	text, err := textsync.New([]byte(content))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[docURI]; ok {
		return fmt.Errorf("%s: %w", docURI, ErrAlreadyOpen)
	}
	s.docs[docURI] = document.New(text, document.WithVersion(int64(version)))
	return nil
}

// Close removes a document from the store and tears down its broadcaster.
func (s *Store) Close(docURI uri.URI) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[docURI]
	if !ok {
		return fmt.Errorf("%s: %w", docURI, ErrNotOpen)
	}
	doc.Close()
	delete(s.docs, docURI)
	return nil
}

// Change applies incremental content-change events to a document.
//
// Every change range is resolved against the same pre-change snapshot in
// the negotiated encoding, then the whole event is applied as one batch:
// either all changes publish as one new version, or an error leaves the
// stored version untouched.
//
// Change assumes the host delivers events for one document in order and
// without interleaved writers, as the protocol guarantees for a session.
// Ranges are resolved against the version current at entry; a concurrent
// writer publishing in between would silently shift the resolved offsets.
func (s *Store) Change(docURI uri.URI, version int32, changes []protocol.TextDocumentContentChangeEvent) error {
	doc, err := s.doc(docURI)
	if err != nil {
		return err
	}
	base := doc.Snapshot().Text
	batch := make(edit.Batch, 0, len(changes))
	for _, change := range changes {
		start, err := s.codec.PointToByte(base, point(change.Range.Start))
		if err != nil {
			return fmt.Errorf("change range start: %w", err)
		}
		end, err := s.codec.PointToByte(base, point(change.Range.End))
		if err != nil {
			return fmt.Errorf("change range end: %w", err)
		}
		batch = append(batch, edit.Edit{Start: start, End: end, Text: change.Text})
	}
	_, err = doc.Apply(batch, document.WithVersion(int64(version)))
	return err
}

// Replace publishes a full-replacement version of a document.
//
// The protocol's change event represents full sync by omitting the range;
// go.lsp.dev carries the range as a value type, so full sync is this
// explicit call instead of a sentinel range.
func (s *Store) Replace(docURI uri.URI, version int32, content string) error {
	doc, err := s.doc(docURI)
	if err != nil {
		return err
	}
	_, err = doc.Replace(content, document.WithVersion(int64(version)))
	return err
}

// Snapshot returns the current version of a document.
func (s *Store) Snapshot(docURI uri.URI) (*document.Version, error) {
	doc, err := s.doc(docURI)
	if err != nil {
		return nil, err
	}
	return doc.Snapshot(), nil
}

// Text returns the full current content of a document.
func (s *Store) Text(docURI uri.URI) (string, error) {
	v, err := s.Snapshot(docURI)
	if err != nil {
		return "", err
	}
	return v.Text.String(), nil
}

// Bytes returns the content of the byte range [start,end) of a document.
func (s *Store) Bytes(docURI uri.URI, start, end uint64) (string, error) {
	v, err := s.Snapshot(docURI)
	if err != nil {
		return "", err
	}
	return v.Text.Slice(start, end)
}

// Position converts a byte offset of a document to a protocol position in
// the negotiated encoding.
func (s *Store) Position(docURI uri.URI, offset uint64) (protocol.Position, error) {
	v, err := s.Snapshot(docURI)
	if err != nil {
		return protocol.Position{}, err
	}
	p, err := s.codec.ByteToPoint(v.Text, offset)
	if err != nil {
		return protocol.Position{}, err
	}
	return protocol.Position{Line: p.Line, Character: p.Character}, nil
}

// Offset converts a protocol position of a document to a byte offset in the
// negotiated encoding.
func (s *Store) Offset(docURI uri.URI, pos protocol.Position) (uint64, error) {
	v, err := s.Snapshot(docURI)
	if err != nil {
		return 0, err
	}
	return s.codec.PointToByte(v.Text, point(pos))
}

func (s *Store) doc(docURI uri.URI) (*document.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docURI]
	if !ok {
		return nil, fmt.Errorf("%s: %w", docURI, ErrNotOpen)
	}
	return doc, nil
}

func point(p protocol.Position) position.Point {
	return position.Point{Line: p.Line, Character: p.Character}
}
