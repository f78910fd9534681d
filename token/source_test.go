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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	const text = "1 - 2 3 - 4"
	other := "foo bar"

	testCases := []struct {
		name     string
		input    []*Source
		expected *Source
	}{
		{
			name:     "nothing to join",
			input:    nil,
			expected: nil,
		},
		{
			name:     "only nil sources",
			input:    []*Source{nil, nil},
			expected: nil,
		},
		{
			name:     "single source",
			input:    []*Source{NewSource(text, 4, 5)},
			expected: &Source{FullText: text, Snippet: "2", Offset: 4},
		},
		{
			name:     "gaps are filled from the full text",
			input:    []*Source{NewSource(text, 6, 7), NewSource(text, 8, 9), NewSource(text, 10, 11)},
			expected: &Source{FullText: text, Snippet: "3 - 4", Offset: 6},
		},
		{
			name:     "unordered with nils",
			input:    []*Source{NewSource(text, 10, 11), nil, NewSource(text, 6, 7), NewSource(text, 8, 9)},
			expected: &Source{FullText: text, Snippet: "3 - 4", Offset: 6},
		},
		{
			name:     "overlapping sources",
			input:    []*Source{NewSource(text, 0, 5), NewSource(text, 4, 7)},
			expected: &Source{FullText: text, Snippet: "1 - 2 3", Offset: 0},
		},
		{
			name:     "nested source",
			input:    []*Source{NewSource(text, 0, 5), NewSource(text, 2, 3)},
			expected: &Source{FullText: text, Snippet: "1 - 2", Offset: 0},
		},
		{
			name:     "different texts are concatenated",
			input:    []*Source{NewSource(text, 0, 1), NewSource(other, 4, 7)},
			expected: &Source{FullText: text, Snippet: "1bar", Offset: 0},
		},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Join(tc.input...), tc.name)
	}
}

func TestJoinSnippetIsSliceOfFullText(t *testing.T) {
	const text = "(2 + 3) * 4"
	joined := Join(NewSource(text, 10, 11), NewSource(text, 0, 1), NewSource(text, 8, 9))
	require.NotNil(t, joined)
	assert.Equal(t, text[joined.Offset:joined.End()], joined.Snippet)
	assert.Equal(t, text, joined.Snippet)
}

func TestCursorAt(t *testing.T) {
	const text = "first\nsecond line\n\nżółw"
	testCases := []struct {
		offset   int
		expected Cursor
	}{
		{offset: 0, expected: Cursor{Line: 1, Column: 1}},
		{offset: 3, expected: Cursor{Line: 1, Column: 4}},
		{offset: 6, expected: Cursor{Line: 2, Column: 1}},
		{offset: 13, expected: Cursor{Line: 2, Column: 8}},
		{offset: 19, expected: Cursor{Line: 4, Column: 1}},
		{offset: 23, expected: Cursor{Line: 4, Column: 3}},
		{offset: 1000, expected: Cursor{Line: 4, Column: 5}},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, CursorAt(text, tc.offset), "offset %d", tc.offset)
	}
}

func TestError(t *testing.T) {
	src := NewSource("2 + x", 4, 5)
	err := fmt.Errorf("lexing failed: %w", Errorf(ErrSyntax, src, "unexpected character %q", src.Snippet))

	assert.ErrorIs(t, err, ErrSyntax)
	assert.NotErrorIs(t, err, ErrIncompleteParse)
	assert.EqualError(t, err, `lexing failed: lexer: syntax error: unexpected character "x" at 1:5`)

	var tokenErr *Error
	require.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, StageLexer, tokenErr.Stage())
	assert.Same(t, src, tokenErr.Source)

	cause := errors.New("invalid syntax")
	wrapped := Errorf(ErrParameterType, nil, "bad parameter").WithCause(cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorIs(t, wrapped, ErrParameterType)
	assert.Equal(t, StageParser, wrapped.Stage())
	assert.EqualError(t, wrapped, "parser: parameter type mismatch: bad parameter: invalid syntax")
}

type testOrigin string

func (o *testOrigin) Name() string { return string(*o) }

func TestTokenIs(t *testing.T) {
	number, other := testOrigin("number"), testOrigin("number")
	tok := &Token{Source: NewSource("42", 0, 2), Origin: &number, Value: 42}

	assert.True(t, tok.Is(&number))
	assert.False(t, tok.Is(&other), "origins are compared by identity, not by name")
	assert.Equal(t, "42", tok.Text())
	assert.Equal(t, `number("42": 42)`, tok.String())
}
