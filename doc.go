/*
Package textsync implements the document side of LSP-style text
synchronization: a persistent rope buffer with line/position indexing.

Text

The core type is Text, an immutable rope of UTF-8 text fragments organized
in a persistent summarized B+ tree. Every edit returns a new Text that
shares all untouched subtrees with its predecessor, so snapshots held by
concurrent readers stay valid and consistent for free.

Besides byte offsets, Text tracks three more coordinate systems in the
tree summaries, all maintained incrementally along the edited path:

  - Unicode scalar values (runes),
  - UTF-16 code units (the protocol default of the Language Server Protocol),
  - line terminators ("\n", "\r\n" as one, lone "\r").

Subpackages build the synchronization machinery on top: position translates
protocol positions in a negotiated encoding, edit applies change batches
atomically, document manages versioned snapshots, and lsp adapts
go.lsp.dev/protocol content-change events.

Performance characteristics follow the rope literature: index, split,
concat, insert and delete are O(log n), iteration is O(n). For use cases
with many editing operations on large texts, ropes have stable performance
and space characteristics.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package textsync

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
