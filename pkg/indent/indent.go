// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indent inserts a prefix at the start of every line of text, for
// rendering nested reason trees and other multi-line diagnostics with
// visual structure.
package indent

import (
	"bytes"
	"io"
)

// String returns in with prefix inserted before the first byte of in and
// before every byte that immediately follows a newline.
func String(prefix, in string) string {
	return string(Bytes([]byte(prefix), []byte(in)))
}

// Bytes is the []byte analogue of String.
func Bytes(prefix, in []byte) []byte {
	if len(in) == 0 {
		return in
	}
	out := make([]byte, 0, len(in)+len(prefix)*(bytes.Count(in, []byte{'\n'})+1))
	atBOL := true
	for _, b := range in {
		if atBOL {
			out = append(out, prefix...)
		}
		out = append(out, b)
		atBOL = b == '\n'
	}
	return out
}

// Writer indents every line written through it with prefix before
// forwarding the result to the wrapped io.Writer. State (whether the next
// byte starts a new line) carries across Write calls.
type Writer struct {
	w      io.Writer
	prefix []byte
	atBOL  bool
}

// NewWriter returns a Writer that inserts prefix at the start of every
// line written through it to w.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), atBOL: true}
}

// Write implements io.Writer. The underlying writer is called at most
// once per Write; if it reports a short write or an error, Write returns
// the count of leading bytes of p whose indented form was fully written,
// which may be less than len(p).
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	out := make([]byte, 0, len(p)+len(w.prefix))
	// cum[i] is the number of bytes of p fully accounted for once out[:i+1]
	// has been written.
	cum := make([]int, 0, cap(out))
	atBOL := w.atBOL
	for i, b := range p {
		if atBOL {
			out = append(out, w.prefix...)
			for range w.prefix {
				cum = append(cum, i)
			}
		}
		out = append(out, b)
		cum = append(cum, i+1)
		atBOL = b == '\n'
	}

	written, err := w.w.Write(out)
	if written >= len(out) {
		w.atBOL = atBOL
		return len(p), err
	}
	if written <= 0 {
		return 0, err
	}
	n := cum[written-1]
	if n > 0 {
		w.atBOL = p[n-1] == '\n'
	}
	return n, err
}
