// Copyright 2026 EngFlow Inc. All rights reserved.
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

package token

import (
	"fmt"
	"strings"

	"github.com/EngFlow/termrewrite/internal/collections"
)

// Source records where a token came from. Snippet is always FullText[Offset:Offset+len(Snippet)] for sources created
// by NewSource, and for joined sources that share a single FullText.
type Source struct {
	FullText string
	Snippet  string
	Offset   int
}

// NewSource creates a Source for text[start:end].
func NewSource(text string, start, end int) *Source {
	return &Source{FullText: text, Snippet: text[start:end], Offset: start}
}

// End returns the offset right after the snippet.
func (s *Source) End() int {
	return s.Offset + len(s.Snippet)
}

// Cursor returns the line and column of the first snippet character.
func (s *Source) Cursor() Cursor {
	if s == nil {
		return CursorUnknown
	}
	return CursorAt(s.FullText, s.Offset)
}

// Less orders sources by their offset, so they can be used in collections.PriorityQueue.
func (s *Source) Less(other *Source) bool {
	return s.Offset < other.Offset
}

func (s *Source) String() string {
	if s == nil {
		return "<no source>"
	}
	return fmt.Sprintf("%q at %s", s.Snippet, s.Cursor())
}

// Join combines sources into a single one spanning all of them. Nil sources are dropped, the rest are ordered by
// offset. The result keeps the text and offset of the first source.
//
// Text between two consecutive sources of the same FullText is kept in the joined snippet, so a reduction of
// "3", "-" and "4" lexed from "3 - 4" reports "3 - 4" rather than "3-4". Overlapping sources are not duplicated.
// Returns nil if no sources are given.
func Join(sources ...*Source) *Source {
	queue := collections.NewEmptyPriorityQueue[*Source]()
	for _, s := range sources {
		if s != nil {
			queue.Push(s)
		}
	}
	if queue.Empty() {
		return nil
	}

	first := queue.Pop()
	var sb strings.Builder
	sb.WriteString(first.Snippet)
	last := first
	end := first.End()
	for !queue.Empty() {
		next := queue.Pop()
		switch {
		case next.FullText != last.FullText:
			sb.WriteString(next.Snippet)
		case next.Offset >= end:
			sb.WriteString(next.FullText[end:next.Offset])
			sb.WriteString(next.Snippet)
		case next.End() > end:
			sb.WriteString(next.FullText[end:next.End()])
		}
		if next.FullText != last.FullText || next.End() > end {
			end = next.End()
		}
		last = next
	}
	return &Source{FullText: first.FullText, Snippet: sb.String(), Offset: first.Offset}
}
