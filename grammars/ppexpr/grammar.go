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

// Package ppexpr parses and evaluates C preprocessor #if conditions, e.g.
//
//	defined(__linux__) && __ARM_ARCH >= 8 || !defined _WIN32
//
// Supported are macro identifiers, integer literals, defined, !, comparisons, && and || with C precedence. Comments
// and line continuations are skipped.
package ppexpr

import (
	"errors"
	"fmt"
	"slices"

	"github.com/EngFlow/termrewrite/lexer"
	"github.com/EngFlow/termrewrite/parser"
	"github.com/EngFlow/termrewrite/pipeline"
	"github.com/EngFlow/termrewrite/token"
)

var ErrEmpty = errors.New("empty condition")

// Lexer rules. Keywords and two-character operators are declared before the rules matching their prefixes.
var (
	Space        = lexer.NewIgnoredRule("space", `[ \t\r\n]+`)
	Continuation = lexer.NewIgnoredRule("continuation", `\\\r?\n`)
	LineComment  = lexer.NewIgnoredRule("line_comment", `//.*$`)
	BlockComment = lexer.NewIgnoredRule("block_comment", `(?s:/\*.*?\*/)`)
	DefinedOp    = lexer.NewRule("defined", `defined\b`)
	Identifier   = lexer.NewValueRule("identifier", identifierPattern, func(text string) (Ident, error) { return Ident(text), nil })
	Integer      = lexer.NewValueRule("integer", integerPattern, func(text string) (ConstantInt, error) {
		v, err := parseInteger(text)
		return ConstantInt(v), err
	})
	AndOp          = lexer.NewRule("and", `&&`)
	OrOp           = lexer.NewRule("or", `\|\|`)
	EqualOp        = lexer.NewRule("equal", `==`)
	NotEqualOp     = lexer.NewRule("not_equal", `!=`)
	LessEqualOp    = lexer.NewRule("less_equal", `<=`)
	GreaterEqualOp = lexer.NewRule("greater_equal", `>=`)
	LessOp         = lexer.NewRule("less", `<`)
	GreaterOp      = lexer.NewRule("greater", `>`)
	NotOp          = lexer.NewRule("not", `!`)
	LParen         = lexer.NewRule("lparen", `\(`)
	RParen         = lexer.NewRule("rparen", `\)`)
)

func expr(slot int) parser.Pattern { return parser.Param[Expr](slot) }

// Operators by precedence, highest first. A binary rule leaves its operands to adjacent operators of higher
// precedence and to a preceding operator of its own, as their other operand may still be a parenthesized condition.
var (
	relationalOps = []token.Origin{LessOp, LessEqualOp, GreaterOp, GreaterEqualOp}
	equalityOps   = []token.Origin{EqualOp, NotEqualOp}

	relationalContext  = binaryContext(nil, relationalOps)
	equalityContext    = binaryContext(relationalOps, equalityOps)
	conjunctionContext = binaryContext(slices.Concat(relationalOps, equalityOps), []token.Origin{AndOp})
	disjunctionContext = binaryContext(slices.Concat(relationalOps, equalityOps, []token.Origin{AndOp}), []token.Origin{OrOp})
)

// Return the patterns rejecting the token before and after a binary operation of the given precedence.
func binaryContext(higher, same []token.Origin) [2]parser.Pattern {
	return [2]parser.Pattern{
		parser.OneOf(slices.Concat(higher, same, []token.Origin{NotOp})...),
		parser.OneOf(higher...),
	}
}

func binary(name string, operator *lexer.Rule, context [2]parser.Pattern, fn func(l, r Expr) Expr) *parser.Rule {
	return parser.NewRule2(name, parser.Guard(parser.Group(expr(0), parser.Of(operator), expr(1)), context[0], context[1]), fn)
}

func comparison(op CompareOp, operator *lexer.Rule, context [2]parser.Pattern) *parser.Rule {
	return binary(operator.Name(), operator, context, func(l, r Expr) Expr {
		return Compare{Left: l, Op: op, Right: r}
	})
}

// Parser rules.
var (
	DefinedCall = parser.NewRule1("defined_call", parser.Group(parser.Of(DefinedOp), parser.Of(LParen), parser.Param[Ident](0), parser.Of(RParen)), func(name Ident) Expr {
		return Defined{Name: name}
	})
	DefinedName = parser.NewRule1("defined_name", parser.Group(parser.Of(DefinedOp), parser.Param[Ident](0)), func(name Ident) Expr {
		return Defined{Name: name}
	})
	Parens = parser.NewRule1("parens", parser.Group(parser.Of(LParen), expr(0), parser.Of(RParen)), func(x Expr) Expr {
		return x
	})
	Negation = parser.NewRule1("negation", parser.Group(parser.Of(NotOp), expr(0)), func(x Expr) Expr {
		if c, ok := x.(Compare); ok {
			return c.Negate()
		}
		return Not{X: x}
	})
	Conjunction = binary("conjunction", AndOp, conjunctionContext, func(l, r Expr) Expr {
		return And{L: l, R: r}
	})
	Disjunction = binary("disjunction", OrOp, disjunctionContext, func(l, r Expr) Expr {
		return Or{L: l, R: r}
	})
)

// Grammar parses #if conditions.
type Grammar struct {
	pipeline *pipeline.Pipeline
}

var defaultGrammar = New()

// New creates the grammar of #if conditions. Options configure its parser.
func New(opts ...parser.Option) *Grammar {
	return &Grammar{pipeline: pipeline.New(
		lexer.MustNew(
			Continuation, LineComment, BlockComment, Space,
			DefinedOp, Identifier, Integer,
			AndOp, OrOp, EqualOp, NotEqualOp, LessEqualOp, GreaterEqualOp, LessOp, GreaterOp, NotOp,
			LParen, RParen,
		),
		parser.New([]*parser.Level{
			parser.NewLevel("defined", parser.LeftToRight, DefinedCall, DefinedName),
			parser.NewLevel("parens", parser.LeftToRight, Parens),
			parser.NewLevel("negation", parser.RightToLeft, Negation),
			parser.NewLevel("relational", parser.LeftToRight,
				comparison(Less, LessOp, relationalContext),
				comparison(LessEqual, LessEqualOp, relationalContext),
				comparison(Greater, GreaterOp, relationalContext),
				comparison(GreaterEqual, GreaterEqualOp, relationalContext),
			),
			parser.NewLevel("equality", parser.LeftToRight,
				comparison(Equal, EqualOp, equalityContext),
				comparison(NotEqual, NotEqualOp, equalityContext),
			),
			parser.NewLevel("conjunction", parser.LeftToRight, Conjunction),
			parser.NewLevel("disjunction", parser.LeftToRight, Disjunction),
		}, opts...),
	)}
}

func (g *Grammar) Pipeline() *pipeline.Pipeline {
	return g.pipeline
}

// Parse converts the text of a condition into an expression.
func (g *Grammar) Parse(text string, strict bool) (Expr, error) {
	tok, err := g.pipeline.ParseSingular(text, strict)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, ErrEmpty
	}
	cond, ok := tok.Value.(Expr)
	if !ok {
		return nil, fmt.Errorf("%s is not a condition", tok)
	}
	return cond, nil
}

// Evaluate parses a condition in strict mode and evaluates it against macros.
func (g *Grammar) Evaluate(text string, macros Macros) (bool, error) {
	cond, err := g.Parse(text, true)
	if err != nil {
		return false, err
	}
	return cond.Eval(macros), nil
}

// Parse converts the text of a condition into an expression using the default grammar.
func Parse(text string, strict bool) (Expr, error) {
	return defaultGrammar.Parse(text, strict)
}

// Evaluate parses a condition in strict mode and evaluates it against macros using the default grammar.
func Evaluate(text string, macros Macros) (bool, error) {
	return defaultGrammar.Evaluate(text, macros)
}
