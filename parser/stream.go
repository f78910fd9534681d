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

package parser

import (
	"github.com/EngFlow/termrewrite/token"
)

// Index of a slot in the stream arena. noSlot marks the end of the list in either direction.
type slotIndex int

const noSlot slotIndex = -1

type (
	// Single element of the doubly linked token list.
	slot struct {
		tok        *token.Token
		prev, next slotIndex
	}

	// Mutable token sequence rewritten by a single Parse call. Slots live in an arena addressed by index, splicing
	// only rewires indices. Slots removed by a splice stay in the arena but are unreachable.
	stream struct {
		slots      []slot
		head, tail slotIndex
		size       int
	}

	// View of the stream starting at a given slot. Negative indices go towards the head.
	streamView struct {
		s     *stream
		start slotIndex
	}
)

func newStream(tokens []*token.Token) *stream {
	s := &stream{slots: make([]slot, len(tokens), 2*len(tokens)), head: noSlot, tail: noSlot, size: len(tokens)}
	for i, tok := range tokens {
		s.slots[i] = slot{tok: tok, prev: slotIndex(i) - 1, next: slotIndex(i) + 1}
	}
	if len(tokens) > 0 {
		s.head = 0
		s.tail = slotIndex(len(tokens) - 1)
		s.slots[s.tail].next = noSlot
	}
	return s
}

// Return the first slot visited when scanning in the given direction.
func (s *stream) first(direction Associativity) slotIndex {
	if direction == RightToLeft {
		return s.tail
	}
	return s.head
}

// Return the slot following at in the given scan direction.
func (s *stream) step(at slotIndex, direction Associativity) slotIndex {
	if direction == RightToLeft {
		return s.slots[at].prev
	}
	return s.slots[at].next
}

func (s *stream) view(at slotIndex) View {
	return streamView{s: s, start: at}
}

func (v streamView) At(i int) *token.Token {
	at := v.start
	for ; i > 0 && at != noSlot; i-- {
		at = v.s.slots[at].next
	}
	for ; i < 0 && at != noSlot; i++ {
		at = v.s.slots[at].prev
	}
	if at == noSlot {
		return nil
	}
	return v.s.slots[at].tok
}

// Replace n slots starting at the given one (towards the tail) with a single token. Returns the index of the new slot,
// or noSlot if fewer than n slots follow.
func (s *stream) splice(at slotIndex, n int, tok *token.Token) slotIndex {
	last := at
	for i := 1; i < n && last != noSlot; i++ {
		last = s.slots[last].next
	}
	if last == noSlot || n <= 0 {
		return noSlot
	}

	prev, next := s.slots[at].prev, s.slots[last].next
	inserted := slotIndex(len(s.slots))
	s.slots = append(s.slots, slot{tok: tok, prev: prev, next: next})
	if prev == noSlot {
		s.head = inserted
	} else {
		s.slots[prev].next = inserted
	}
	if next == noSlot {
		s.tail = inserted
	} else {
		s.slots[next].prev = inserted
	}
	s.size -= n - 1
	return inserted
}

// Return the tokens currently in the stream, from head to tail.
func (s *stream) tokens() []*token.Token {
	result := make([]*token.Token, 0, s.size)
	for at := s.head; at != noSlot; at = s.slots[at].next {
		result = append(result, s.slots[at].tok)
	}
	return result
}
