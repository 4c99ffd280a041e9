package textsync

import (
	"io"

	"github.com/npillmayer/textsync/chunk"
)

// Reader returns a reader for the bytes of text.
//
// The reader also implements io.WriterTo, streaming fragment by fragment
// without materializing the text as one string.
func (text Text) Reader() io.Reader {
	return &textReader{text: text}
}

type textReader struct {
	text   Text
	cursor uint64
}

func (tr *textReader) Read(p []byte) (n int, err error) {
	l := uint64(len(p))
	if tr.cursor+l > tr.text.Len() {
		l = tr.text.Len() - tr.cursor
		if l == 0 {
			return 0, io.EOF
		}
	}
	i := tr.cursor
	s, err := tr.text.Report(i, l)
	if err != nil {
		return 0, err
	}
	n = copy(p, s)
	tr.cursor += uint64(n)
	return n, nil
}

// WriteTo writes the unread rest of the text to w, one fragment at a time.
func (tr *textReader) WriteTo(w io.Writer) (int64, error) {
	var written int64
	err := tr.text.EachChunk(func(c chunk.Chunk, pos uint64) error {
		frag := c.String()
		if pos+uint64(len(frag)) <= tr.cursor {
			return nil
		}
		if pos < tr.cursor {
			frag = frag[tr.cursor-pos:]
		}
		n, err := io.WriteString(w, frag)
		written += int64(n)
		tr.cursor += uint64(n)
		if err != nil {
			tracer().Errorf(err.Error())
		}
		return err
	})
	return written, err
}
