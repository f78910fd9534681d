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

// Package pipeline connects a lexer with a parser into a single entry point converting source text into tokens.
package pipeline

import (
	"github.com/EngFlow/termrewrite/lexer"
	"github.com/EngFlow/termrewrite/parser"
	"github.com/EngFlow/termrewrite/token"
)

// Pipeline lexes text and reduces the resulting tokens. It holds no state besides its lexer and parser.
type Pipeline struct {
	lexer  *lexer.Lexer
	parser *parser.Parser
}

func New(l *lexer.Lexer, p *parser.Parser) *Pipeline {
	return &Pipeline{lexer: l, parser: p}
}

func (p *Pipeline) Lexer() *lexer.Lexer    { return p.lexer }
func (p *Pipeline) Parser() *parser.Parser { return p.parser }

// Parse lexes text and returns the tokens left after reducing it. See lexer.Lexer.Lex for the meaning of strict.
func (p *Pipeline) Parse(text string, strict bool) ([]*token.Token, error) {
	tokens, err := p.lexer.Tokenize(text, strict)
	if err != nil {
		return nil, err
	}
	return p.parser.Parse(tokens)
}

// ParseSingular lexes text and reduces it to a single token. Returns nil if text contains no tokens.
func (p *Pipeline) ParseSingular(text string, strict bool) (*token.Token, error) {
	tokens, err := p.lexer.Tokenize(text, strict)
	if err != nil {
		return nil, err
	}
	return p.parser.ParseSingular(tokens)
}
