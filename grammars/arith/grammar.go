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

// Package arith declares an arithmetic grammar for the term-rewriting parser: numbers, optional symbols, the four
// basic operations, parentheses and multiplication by juxtaposition, e.g. "2 (3 - 1)".
//
// The grammar is generic over the Field used to parse and evaluate numbers.
package arith

import (
	"errors"
	"fmt"
	"log"

	"github.com/EngFlow/termrewrite/lexer"
	"github.com/EngFlow/termrewrite/parser"
	"github.com/EngFlow/termrewrite/pipeline"
)

var ErrEmpty = errors.New("empty expression")

type (
	Options struct {
		// Accept identifiers as symbols. Expressions with symbols can be parsed but not evaluated.
		Symbols bool
		// Optional logger tracing every reduction.
		Trace *log.Logger
	}

	// Grammar holds the rules of the arithmetic grammar. Rules are exported so other grammars can refer to tokens
	// produced by them.
	Grammar[T any] struct {
		Number, Symbol, Plus, Minus, Star, Slash, LParen, RParen, Space *lexer.Rule

		Constant, Variable, Group, Juxtaposition, Product, Quotient, Sum, Difference *parser.Rule

		field    Field[T]
		pipeline *pipeline.Pipeline
	}
)

// New creates the arithmetic grammar over the given field.
func New[T any](field Field[T], opts Options) *Grammar[T] {
	g := &Grammar[T]{
		Number: lexer.NewValueRule("number", `\d+(?:\.\d+)?`, field.Parse),
		Symbol: lexer.NewValueRule("symbol", `[A-Za-z_]\w*`, func(text string) (string, error) { return text, nil }),
		Plus:   lexer.NewRule("plus", `\+`),
		Minus:  lexer.NewRule("minus", `-`),
		Star:   lexer.NewRule("star", `\*`),
		Slash:  lexer.NewRule("slash", `/`),
		LParen: lexer.NewRule("lparen", `\(`),
		RParen: lexer.NewRule("rparen", `\)`),
		Space:  lexer.NewIgnoredRule("space", `\s+`),
		field:  field,
	}

	expr := func(slot int) parser.Pattern { return parser.Param[Expr[T]](slot) }
	// Operands adjacent to an operator of higher precedence, or to a preceding operator of the same precedence, are
	// left to that operator. Its other operand may be a group still waiting to be reduced.
	binary := func(name string, operator *lexer.Rule, op Operator, notAfter, notBefore parser.Pattern) *parser.Rule {
		pattern := parser.Guard(parser.Group(expr(0), parser.Of(operator), expr(1)), notAfter, notBefore)
		return parser.NewRule2(name, pattern, func(left, right Expr[T]) Expr[T] {
			return Operation[T]{Op: op, Left: left, Right: right}
		})
	}

	g.Constant = parser.NewRule1("constant", parser.ParamOf[T](g.Number, 0), func(v T) Expr[T] {
		return Constant[T]{Value: v}
	})
	g.Variable = parser.NewRule1("variable", parser.ParamOf[string](g.Symbol, 0), func(name string) Expr[T] {
		return Symbol[T]{Name: name}
	})
	g.Group = parser.NewRule1("group", parser.Group(parser.Of(g.LParen), expr(0), parser.Of(g.RParen)), func(inner Expr[T]) Expr[T] {
		return inner
	})
	// Only a parenthesized group may follow a factor without an operator, so "1 - 2 3" is not reduced to "1 - 6".
	g.Juxtaposition = parser.NewRule2("juxtaposition", parser.Group(expr(0), parser.ParamOf[Expr[T]](g.Group, 1)), func(left, right Expr[T]) Expr[T] {
		return Operation[T]{Op: Multiply, Left: left, Right: right}
	})
	multiplicative, additive := parser.OneOf(g.Star, g.Slash), parser.OneOf(g.Star, g.Slash, g.Plus, g.Minus)
	g.Product = binary("product", g.Star, Multiply, multiplicative, parser.Of(g.LParen))
	g.Quotient = binary("quotient", g.Slash, Divide, multiplicative, parser.Of(g.LParen))
	g.Sum = binary("sum", g.Plus, Add, additive, parser.OneOf(g.Star, g.Slash, g.LParen))
	g.Difference = binary("difference", g.Minus, Subtract, additive, parser.OneOf(g.Star, g.Slash, g.LParen))

	lexerRules := []*lexer.Rule{g.Number}
	atoms := []*parser.Rule{g.Constant}
	if opts.Symbols {
		lexerRules = append(lexerRules, g.Symbol)
		atoms = append(atoms, g.Variable)
	}
	lexerRules = append(lexerRules, g.Plus, g.Minus, g.Star, g.Slash, g.LParen, g.RParen, g.Space)

	levels := []*parser.Level{
		parser.NewLevel("atoms", parser.LeftToRight, atoms...),
		parser.NewLevel("groups", parser.LeftToRight, g.Group),
		parser.NewLevel("juxtaposition", parser.LeftToRight, g.Juxtaposition),
		parser.NewLevel("product", parser.LeftToRight, g.Product, g.Quotient),
		parser.NewLevel("sum", parser.LeftToRight, g.Sum, g.Difference),
	}
	g.pipeline = pipeline.New(lexer.MustNew(lexerRules...), parser.New(levels, parser.WithLogger(opts.Trace)))
	return g
}

func (g *Grammar[T]) Field() Field[T]              { return g.field }
func (g *Grammar[T]) Pipeline() *pipeline.Pipeline { return g.pipeline }

// Parse converts text into a single expression.
func (g *Grammar[T]) Parse(text string, strict bool) (Expr[T], error) {
	tok, err := g.pipeline.ParseSingular(text, strict)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, ErrEmpty
	}
	expr, ok := tok.Value.(Expr[T])
	if !ok {
		return nil, fmt.Errorf("%s is not an expression", tok)
	}
	return expr, nil
}

// Evaluate parses text in strict mode and evaluates it.
func (g *Grammar[T]) Evaluate(text string) (T, error) {
	expr, err := g.Parse(text, true)
	if err != nil {
		return g.field.Zero(), err
	}
	return expr.Evaluate(g.field)
}
