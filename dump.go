package textsync

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/npillmayer/textsync/chunk"
	"golang.org/x/term"
)

// Dot writes a GraphViz DOT representation of the text's fragment structure
// to w, intended for debugging rope layouts.
func (text Text) Dot(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph textsync {"); err != nil {
		return err
	}
	fmt.Fprintln(w, `  node [shape=record];`)
	s := text.Summary()
	fmt.Fprintf(w, "  root [label=\"{text|bytes %d|chars %d|utf16 %d|breaks %d}\"];\n",
		s.Bytes, s.Chars, s.UTF16, s.Breaks)
	i := 0
	err := text.EachChunk(func(c chunk.Chunk, pos uint64) error {
		cs := c.Summary()
		if _, err := fmt.Fprintf(w, "  f%d [label=\"{%s|@%d|%d bytes}\"];\n",
			i, dotEscape(c.String()), pos, cs.Bytes); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  root -> f%d;\n", i); err != nil {
			return err
		}
		i++
		return nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "}")
	return err
}

func dotEscape(s string) string {
	q := strconv.Quote(s)
	q = q[1 : len(q)-1]
	out := make([]byte, 0, len(q))
	for i := 0; i < len(q); i++ {
		switch q[i] {
		case '{', '}', '<', '>', '|':
			out = append(out, '\\')
		}
		out = append(out, q[i])
	}
	return string(out)
}

// Dump writes a colored fragment listing of the text to w, one fragment per
// row with offset and summary columns. Fragment content is truncated to the
// terminal width when stdout is interactive.
func (text Text) Dump(w io.Writer) {
	width := dumpLineWidth()
	head := color.New(color.FgCyan, color.Bold)
	offs := color.New(color.FgYellow)
	frag := color.New(color.FgBlue)
	s := text.Summary()
	head.Fprintf(w, "text: %d bytes, %d chars, %d utf16 units, %d lines, %d fragments\n",
		s.Bytes, s.Chars, s.UTF16, s.Breaks+1, text.FragmentCount())
	_ = text.EachChunk(func(c chunk.Chunk, pos uint64) error {
		offs.Fprintf(w, "%8d  ", pos)
		content := strconv.Quote(c.String())
		if len(content) > width {
			content = content[:width-1] + "…"
		}
		frag.Fprintln(w, content)
		return nil
	})
}

func dumpLineWidth() int {
	if !term.IsTerminal(0) {
		return 65
	}
	w, _, err := term.GetSize(0)
	if err != nil || w <= 12 {
		return 65
	}
	return w - 12
}
