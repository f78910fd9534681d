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

// Package suggest finds the closest match of a misspelled name, for "did you mean" hints in error messages.
package suggest

import (
	"fmt"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Names with lower similarity to the misspelled one are never suggested.
const minSimilarity = 0.5

// Closest returns the candidate most similar to name. Reports false if no candidate is similar enough.
func Closest(name string, candidates []string) (string, bool) {
	metric := metrics.NewLevenshtein()
	best, bestSimilarity := "", 0.0
	for _, candidate := range candidates {
		if similarity := strutil.Similarity(name, candidate, metric); similarity > bestSimilarity {
			best, bestSimilarity = candidate, similarity
		}
	}
	return best, bestSimilarity >= minSimilarity
}

// Hint returns a sentence suggesting the closest candidate, or an empty string.
func Hint(name string, candidates []string) string {
	if closest, ok := Closest(name, candidates); ok {
		return fmt.Sprintf(", did you mean %q?", closest)
	}
	return ""
}
