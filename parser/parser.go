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

// Package parser implements a precedence-directed term-rewriting parser. Instead of a hand-written recursive descent
// or generated tables, a grammar is declared as an ordered list of precedence levels, each holding rules that replace
// a matched sequence of tokens with a single token carrying a computed value, typically an AST node.
//
// Parsing repeatedly rewrites the token sequence until no rule applies:
//
//   - levels are tried from the first (highest precedence) to the last,
//   - a level scans the whole sequence in its direction, retrying every position after a reduction,
//   - after a level reduced anything, parsing restarts from the first level, so a level is attempted only after all
//     levels above it are exhausted.
//
// There is no backtracking: once a rule is applied it is never undone, so ambiguities are resolved by the order of
// declaration.
package parser

import (
	"fmt"
	"log"

	"github.com/EngFlow/termrewrite/token"
)

type (
	// Parser reduces token sequences according to its levels. Parser is immutable and safe for concurrent use.
	Parser struct {
		levels []*Level
		logger *log.Logger
	}

	Option func(*Parser)
)

// WithLogger makes the parser log every reduction it performs.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// New creates a parser from levels given in precedence order, highest first.
func New(levels []*Level, opts ...Option) *Parser {
	p := &Parser{levels: levels}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Levels() []*Level {
	return p.levels
}

// Parse reduces tokens as much as possible and returns the remaining top-level tokens. The input slice is not
// modified.
func (p *Parser) Parse(tokens []*token.Token) ([]*token.Token, error) {
	s := newStream(tokens)
	for {
		reduced := false
		for _, level := range p.levels {
			levelReduced, err := p.reduceLevel(s, level)
			if err != nil {
				return nil, err
			}
			if levelReduced {
				// Restart from the highest precedence level.
				reduced = true
				break
			}
		}
		if !reduced {
			return s.tokens(), nil
		}
	}
}

// ParseSingular parses tokens which are expected to reduce to a single token. Returns nil if there are no tokens.
//
// If more than one token remains, the first one is assumed to be the intended result and the returned
// token.ErrIncompleteParse error points at the second one.
func (p *Parser) ParseSingular(tokens []*token.Token) (*token.Token, error) {
	result, err := p.Parse(tokens)
	if err != nil {
		return nil, err
	}
	switch len(result) {
	case 0:
		return nil, nil
	case 1:
		return result[0], nil
	default:
		unexpected := result[1]
		return nil, token.Errorf(token.ErrIncompleteParse, unexpected.Source, "unexpected %q after %q (%d fragments left)", unexpected.Text(), result[0].Text(), len(result))
	}
}

// Scan the stream once in the level's direction, applying the first matching rule at each position. Reports whether
// anything was reduced.
func (p *Parser) reduceLevel(s *stream, level *Level) (bool, error) {
	reduced := false
	direction := level.associativity
	for at := s.first(direction); at != noSlot; {
		tokens := s.view(at)
		matched := false
		for _, rule := range level.rules {
			n := rule.Match(tokens)
			if n <= 0 {
				continue
			}
			tok, err := rule.Reduce(tokens, n)
			if err != nil {
				return reduced, err
			}
			if p.logger != nil {
				p.logger.Printf("%s: %s reduced %q at %s", level.name, rule.name, tok.Text(), tok.Source.Cursor())
			}
			at = s.splice(at, n, tok)
			if at == noSlot {
				return reduced, fmt.Errorf("rule %q matched %d tokens past the end of the sequence", rule.name, n)
			}
			matched, reduced = true, true
			break
		}
		if !matched {
			at = s.step(at, direction)
		}
	}
	return reduced, nil
}
