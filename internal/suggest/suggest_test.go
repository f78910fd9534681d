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

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	candidates := []string{"arith", "rational", "ppexpr"}
	testCases := []struct {
		name     string
		expected string
		found    bool
	}{
		{name: "arith", expected: "arith", found: true},
		{name: "arihm", expected: "arith", found: true},
		{name: "rationl", expected: "rational", found: true},
		{name: "pexpr", expected: "ppexpr", found: true},
		{name: "lisp", found: false},
	}

	for _, tc := range testCases {
		closest, found := Closest(tc.name, candidates)
		assert.Equal(t, tc.found, found, tc.name)
		if tc.found {
			assert.Equal(t, tc.expected, closest, tc.name)
		}
	}

	_, found := Closest("anything", nil)
	assert.False(t, found)
}

func TestHint(t *testing.T) {
	assert.Equal(t, `, did you mean "int"?`, Hint("it", []string{"bool", "float", "int", "string"}))
	assert.Empty(t, Hint("hex", []string{"bool", "float", "int", "string"}))
}
