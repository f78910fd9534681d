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
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/EngFlow/termrewrite/parser"
	"github.com/EngFlow/termrewrite/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type macrosPreset string

const (
	linuxPreset   macrosPreset = "linux"
	windowsPreset macrosPreset = "windows"
)

var macroPresets = map[macrosPreset]Macros{
	linuxPreset: {
		"__linux__":   1,
		"SHARED_FLAG": 1,
		"__ARM_ARCH":  8,
	},
	windowsPreset: {
		"_WIN32":      1,
		"SHARED_FLAG": 0,
	},
}

// Checks which presets satisfy each condition.
func TestEvaluate(t *testing.T) {
	testCases := []struct {
		condition string
		expected  []macrosPreset
	}{
		{condition: "defined(__linux__)", expected: []macrosPreset{linuxPreset}},
		{condition: "defined _WIN32", expected: []macrosPreset{windowsPreset}},
		{condition: "defined(OTHER)", expected: []macrosPreset{}},
		{condition: "!defined(__linux__)", expected: []macrosPreset{windowsPreset}},
		{condition: "!defined OTHER", expected: []macrosPreset{linuxPreset, windowsPreset}},
		{condition: "SHARED_FLAG", expected: []macrosPreset{linuxPreset}},
		{condition: "!SHARED_FLAG", expected: []macrosPreset{windowsPreset}},
		{condition: "defined(SHARED_FLAG)", expected: []macrosPreset{linuxPreset, windowsPreset}},
		{condition: "__ARM_ARCH >= 8", expected: []macrosPreset{linuxPreset}},
		{condition: "__ARM_ARCH < 7", expected: []macrosPreset{windowsPreset}},
		{condition: "__ARM_ARCH == 0x8", expected: []macrosPreset{linuxPreset}},
		{condition: "!(__ARM_ARCH == 8)", expected: []macrosPreset{windowsPreset}},
		{condition: "defined(__linux__) && SHARED_FLAG", expected: []macrosPreset{linuxPreset}},
		{condition: "defined(__linux__) || defined(_WIN32)", expected: []macrosPreset{linuxPreset, windowsPreset}},
		{condition: "defined _WIN32 && SHARED_FLAG || __ARM_ARCH > 7", expected: []macrosPreset{linuxPreset}},
		{condition: "defined _WIN32 && (SHARED_FLAG || __ARM_ARCH > 7)", expected: []macrosPreset{}},
		{condition: "1 < 2 == 1", expected: []macrosPreset{linuxPreset, windowsPreset}},
		{condition: "__ARM_ARCH > 7 || SHARED_FLAG && (defined(OTHER) || defined _WIN32)", expected: []macrosPreset{linuxPreset}},
		{condition: "(SHARED_FLAG || defined _WIN32) && __ARM_ARCH == 0 || defined OTHER", expected: []macrosPreset{windowsPreset}},
		{condition: "0", expected: []macrosPreset{}},
		{condition: "1UL", expected: []macrosPreset{linuxPreset, windowsPreset}},
		{condition: "defined(_WIN32) /* windows */ \\\n  && !SHARED_FLAG // static", expected: []macrosPreset{windowsPreset}},
	}

	for _, tc := range testCases {
		var actual []macrosPreset
		for _, preset := range []macrosPreset{linuxPreset, windowsPreset} {
			ok, err := Evaluate(tc.condition, macroPresets[preset])
			require.NoError(t, err, tc.condition)
			if ok {
				actual = append(actual, preset)
			}
		}
		assert.ElementsMatch(t, tc.expected, actual, tc.condition)
	}
}

func TestParsePrecedence(t *testing.T) {
	testCases := []struct {
		condition string
		expected  string
	}{
		{condition: "A || B && C", expected: "(A || (B && C))"},
		{condition: "A && B || C", expected: "((A && B) || C)"},
		{condition: "A == B < C", expected: "(A == (B < C))"},
		{condition: "!A == 0", expected: "(!A == 0)"},
		{condition: "!!A", expected: "!!A"},
		{condition: "!(A < 3)", expected: "(A >= 3)"},
		{condition: "A || B || C", expected: "((A || B) || C)"},
		{condition: "defined(A) && defined B", expected: "(defined(A) && defined(B))"},
		{condition: "0x10 != 010", expected: "(16 != 8)"},
		{condition: "A || B && (C || D)", expected: "(A || (B && (C || D)))"},
		{condition: "A || B && (C)", expected: "(A || (B && C))"},
		{condition: "(A || B) && C || D", expected: "(((A || B) && C) || D)"},
		{condition: "A && B || (C && D)", expected: "((A && B) || (C && D))"},
		{condition: "A == (B || C) && D", expected: "((A == (B || C)) && D)"},
		{condition: "A == B < (C || D)", expected: "(A == (B < (C || D)))"},
		{condition: "(A) < B == C", expected: "((A < B) == C)"},
		{condition: "A != (B) != (C && D)", expected: "((A != B) != (C && D))"},
	}

	for _, tc := range testCases {
		cond, err := Parse(tc.condition, true)
		require.NoError(t, err, tc.condition)
		assert.Equal(t, tc.expected, cond.String(), tc.condition)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("A + B", true)
	assert.ErrorIs(t, err, token.ErrSyntax)

	_, err = Parse("A B", true)
	assert.ErrorIs(t, err, token.ErrIncompleteParse)

	_, err = Parse("defined(A", true)
	assert.ErrorIs(t, err, token.ErrIncompleteParse)

	_, err = Parse("// nothing", true)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse("0xFFFFFFFFFFFFFFFFFF", true)
	assert.ErrorIs(t, err, token.ErrRuleDefinition)

	cond, err := Parse("A + B", false)
	require.Error(t, err, "skipping + leaves two identifiers")
	assert.Nil(t, cond)
}

func TestUnsignedLiterals(t *testing.T) {
	name, value, err := ParseMacro("UINT64_MAX=0xffffffffffffffffULL")
	require.NoError(t, err)
	assert.Equal(t, -1, value)

	testCases := []struct {
		condition string
		expected  bool
	}{
		{condition: "UINT64_MAX == 0xffffffffffffffffULL", expected: true},
		{condition: "UINT64_MAX == 18446744073709551615u", expected: true},
		{condition: "0x8000000000000000 < 0", expected: true},
		{condition: "0x7fffffffffffffff > 0", expected: true},
	}

	for _, tc := range testCases {
		ok, err := Evaluate(tc.condition, Macros{name: value})
		require.NoError(t, err, tc.condition)
		assert.Equal(t, tc.expected, ok, tc.condition)
	}
}

func TestCompareNegate(t *testing.T) {
	for _, op := range []CompareOp{Equal, NotEqual, Less, LessEqual, Greater, GreaterEqual} {
		cmp := Compare{Left: Ident("A"), Op: op, Right: ConstantInt(1)}
		for _, macros := range []Macros{{}, {"A": 0}, {"A": 1}, {"A": 2}} {
			assert.Equal(t, !cmp.Eval(macros), cmp.Negate().Eval(macros), "%s with %v", cmp, macros)
		}
		assert.Equal(t, op, cmp.Negate().Negate().Op)
	}
}

func TestTrace(t *testing.T) {
	var trace bytes.Buffer
	g := New(parser.WithLogger(log.New(&trace, "", 0)))

	ok, err := g.Evaluate("!defined(A) && B", Macros{"B": 2})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{
		`defined: defined_call reduced "defined(A)" at 1:2`,
		`negation: negation reduced "!defined(A)" at 1:1`,
		`conjunction: conjunction reduced "!defined(A) && B" at 1:1`,
	}, strings.Split(strings.TrimSpace(trace.String()), "\n"))
}
