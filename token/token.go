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

// Package token defines the units exchanged between the lexer and the parser: tokens, their provenance in the source
// text and the errors that refer to it.
package token

import "fmt"

type (
	// Origin identifies the rule that produced a token. Origins are compared by identity, so implementations are
	// expected to be pointers created once per grammar.
	Origin interface {
		Name() string
	}

	// Token is a single unit emitted by the lexer or produced by a parser reduction. Tokens are never modified after
	// creation.
	Token struct {
		Source *Source
		Origin Origin
		// Optional payload, e.g. a parsed literal or an AST node built by a parser rule.
		Value any
	}
)

// Is reports whether the token was produced by the given rule.
func (t *Token) Is(origin Origin) bool {
	return t != nil && t.Origin == origin
}

// Text returns the source snippet of the token or an empty string if it has no source.
func (t *Token) Text() string {
	if t.Source == nil {
		return ""
	}
	return t.Source.Snippet
}

func (t *Token) String() string {
	name := "<none>"
	if t.Origin != nil {
		name = t.Origin.Name()
	}
	if t.Value == nil {
		return fmt.Sprintf("%s(%q)", name, t.Text())
	}
	return fmt.Sprintf("%s(%q: %v)", name, t.Text(), t.Value)
}
