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

// Package collections holds small generic helpers shared by the lexer, the parser and the tools built on them:
// sequence transformations, a Set and a PriorityQueue.
package collections

import (
	"iter"
	"slices"
)

// MapSeq lazily applies fn to every element of seq.
func MapSeq[T, V any](seq iter.Seq[T], fn func(T) V) iter.Seq[V] {
	return func(yield func(V) bool) {
		for elem := range seq {
			if !yield(fn(elem)) {
				return
			}
		}
	}
}

// MapSlice returns a new slice with fn applied to every element of s, e.g.
//
//	MapSlice([]int{1, 2}, strconv.Itoa) => []string{"1", "2"}
func MapSlice[TSlice ~[]T, T, V any](s TSlice, fn func(T) V) []V {
	return slices.AppendSeq(make([]V, 0, len(s)), MapSeq(slices.Values(s), fn))
}

// FilterSeq lazily drops the elements of seq not satisfying predicate.
func FilterSeq[T any](seq iter.Seq[T], predicate func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for elem := range seq {
			if predicate(elem) && !yield(elem) {
				return
			}
		}
	}
}

// FilterSlice returns a new slice with the elements of s satisfying predicate, in their original order.
func FilterSlice[TSlice ~[]T, T any](s TSlice, predicate func(T) bool) TSlice {
	return slices.AppendSeq(make(TSlice, 0, len(s)), FilterSeq(slices.Values(s), predicate))
}

// FindDuplicates returns the elements occurring more than once in s, or nil if there are none. An element is
// reported once for every repeated occurrence, in order of those occurrences.
func FindDuplicates[S ~[]T, T comparable](s S) S {
	var result S
	seen := make(Set[T], len(s))
	for _, elem := range s {
		if seen.Contains(elem) {
			result = append(result, elem)
		} else {
			seen.Add(elem)
		}
	}
	return result
}
