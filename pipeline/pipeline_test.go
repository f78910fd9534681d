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

package pipeline

import (
	"strconv"
	"testing"

	"github.com/EngFlow/termrewrite/lexer"
	"github.com/EngFlow/termrewrite/parser"
	"github.com/EngFlow/termrewrite/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type total int

var (
	number = lexer.NewValueRule("number", `\d+`, strconv.Atoi)
	plus   = lexer.NewRule("plus", `\+`)
	space  = lexer.NewIgnoredRule("space", `\s+`)

	atom = parser.NewRule1("atom", parser.Param[int](0), func(v int) total { return total(v) })
	sum  = parser.NewRule2("sum", parser.Group(parser.Param[total](0), parser.Of(plus), parser.Param[total](1)), func(a, b total) total {
		return a + b
	})

	adder = New(
		lexer.MustNew(number, plus, space),
		parser.New([]*parser.Level{
			parser.NewLevel("atoms", parser.LeftToRight, atom),
			parser.NewLevel("sum", parser.LeftToRight, sum),
		}),
	)
)

func TestParseSingular(t *testing.T) {
	tok, err := adder.ParseSingular("1 + 2 + 39", true)
	require.NoError(t, err)
	assert.Equal(t, total(42), tok.Value)
	assert.Same(t, sum, tok.Origin)
	assert.Equal(t, "1 + 2 + 39", tok.Text())
}

func TestParse(t *testing.T) {
	tokens, err := adder.Parse("1 + 2 3 + +", true)
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, total(3), tokens[0].Value)
	assert.Equal(t, total(3), tokens[1].Value)
	assert.Same(t, plus, tokens[2].Origin)
	assert.Same(t, plus, tokens[3].Origin)
}

func TestEmptyInput(t *testing.T) {
	tok, err := adder.ParseSingular("  ", true)
	assert.NoError(t, err)
	assert.Nil(t, tok)
}

func TestLexerErrorsStopParsing(t *testing.T) {
	_, err := adder.Parse("1 + a", true)
	assert.ErrorIs(t, err, token.ErrSyntax)
	_, err = adder.ParseSingular("1 + a", true)
	assert.ErrorIs(t, err, token.ErrSyntax)

	tok, err := adder.ParseSingular("1 + a2", false)
	require.NoError(t, err)
	assert.Equal(t, total(3), tok.Value)
}

func TestAccessors(t *testing.T) {
	assert.Len(t, adder.Lexer().Rules(), 3)
	assert.Len(t, adder.Parser().Levels(), 2)
}
