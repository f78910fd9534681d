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

package collections

import "container/heap"

type (
	// Ordered is implemented by types with a strict weak ordering.
	Ordered[T any] interface {
		// Less reports whether the receiver sorts before other.
		Less(other T) bool
	}

	// Adapter of a slice to heap.Interface.
	heapSlice[T Ordered[T]] []T

	// PriorityQueue pops its elements from the lowest to the highest, as ordered by Ordered.Less. Elements that are
	// equal may be popped in any order.
	PriorityQueue[T Ordered[T]] struct {
		elems heapSlice[T]
	}
)

func (h heapSlice[T]) Len() int           { return len(h) }
func (h heapSlice[T]) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h heapSlice[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *heapSlice[T]) Push(x any)        { *h = append(*h, x.(T)) }

func (h *heapSlice[T]) Pop() any {
	n := len(*h) - 1
	last := (*h)[n]
	*h = (*h)[:n]
	return last
}

// NewPriorityQueue creates a queue holding elems. The queue takes ownership of the slice.
func NewPriorityQueue[T Ordered[T]](elems []T) *PriorityQueue[T] {
	q := &PriorityQueue[T]{elems: elems}
	heap.Init(&q.elems)
	return q
}

func NewEmptyPriorityQueue[T Ordered[T]]() *PriorityQueue[T] {
	return NewPriorityQueue[T](nil)
}

func (q *PriorityQueue[T]) Empty() bool { return len(q.elems) == 0 }
func (q *PriorityQueue[T]) Len() int    { return len(q.elems) }

func (q *PriorityQueue[T]) Push(elem T) {
	heap.Push(&q.elems, elem)
}

// Pop removes and returns the lowest element. Panics if the queue is empty.
func (q *PriorityQueue[T]) Pop() T {
	return heap.Pop(&q.elems).(T)
}
