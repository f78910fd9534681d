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

package ppexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMacros(t *testing.T) {
	testCases := []struct {
		defs     []string
		expected Macros
	}{
		{
			defs:     []string{"FOO"},
			expected: Macros{"FOO": 1},
		},
		{
			defs:     []string{"BAR=123", "BAZ=0x2AUL", "QUX=0755", "EMPTY="},
			expected: Macros{"BAR": 123, "BAZ": 42, "QUX": 493, "EMPTY": 1},
		},
		{
			defs:     []string{"-D__ANDROID__", "-D__ARM_ARCH=8"},
			expected: Macros{"__ANDROID__": 1, "__ARM_ARCH": 8},
		},
		{
			defs:     []string{"V=1", "V=2"},
			expected: Macros{"V": 2},
		},
	}

	for _, tc := range testCases {
		actual, err := ParseMacros(tc.defs)
		require.NoError(t, err, tc.defs)
		assert.Equal(t, tc.expected, actual)
	}
}

func TestParseMacroErrors(t *testing.T) {
	unparsable := []string{
		"FLT=3.14",       // float
		"STR=\"abc\"",    // string literal
		"CHR='A'",        // char literal
		"-DBAD-NAME=1",   // invalid identifier
		"SUFFIX=123XYZ",  // unknown suffix
		"HEXFLT=0x1.8p3", // hex-float
		"=1",
	}

	for _, def := range unparsable {
		_, _, err := ParseMacro(def)
		assert.Error(t, err, def)
	}

	macros, err := ParseMacros([]string{"GOOD=1", "BAD=x", "ALSO-BAD"})
	assert.Equal(t, Macros{"GOOD": 1}, macros)
	assert.ErrorContains(t, err, "BAD=x")
	assert.ErrorContains(t, err, "ALSO-BAD")
}

func TestParseCompilerFlags(t *testing.T) {
	testCases := []struct {
		flags    string
		expected Macros
	}{
		{flags: "", expected: Macros{}},
		{flags: "-O2 -Wall", expected: Macros{}},
		{flags: "-DNDEBUG -D VERSION=3 -O2", expected: Macros{"NDEBUG": 1, "VERSION": 3}},
		{flags: "-DDEBUG -DLEVEL=0x10 -UDEBUG", expected: Macros{"LEVEL": 16}},
		{flags: "-U NOT_DEFINED '-DQUOTED=1' -I 'include dir'", expected: Macros{"QUOTED": 1}},
	}

	for _, tc := range testCases {
		actual, err := ParseCompilerFlags(tc.flags)
		require.NoError(t, err, tc.flags)
		assert.Equal(t, tc.expected, actual, tc.flags)
	}
}

func TestParseCompilerFlagsErrors(t *testing.T) {
	_, err := ParseCompilerFlags(`-DA "-DB`)
	assert.ErrorContains(t, err, "failed to split compiler flags")

	macros, err := ParseCompilerFlags("-DGOOD -DBAD=1.5 -D")
	assert.Equal(t, Macros{"GOOD": 1}, macros)
	assert.ErrorContains(t, err, "failed to parse -DBAD=1.5")
	assert.ErrorContains(t, err, "missing argument of -D")
}
