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

package parser

import (
	"slices"

	"github.com/EngFlow/termrewrite/token"
)

type (
	// View gives access to the tokens around some position of a token sequence.
	View interface {
		// At returns the i-th token of the view, or nil past its end. Negative indices address the tokens preceding
		// the view, if it has any.
		At(i int) *token.Token
	}

	// Slice is a View over a plain slice of tokens.
	Slice []*token.Token

	// Pattern is a stateless matcher over a prefix of a token sequence.
	Pattern interface {
		// Match returns the number of leading tokens of the view that match the pattern, or 0 if there is no match.
		// Patterns never match partially.
		Match(tokens View) int
		// Parameters returns n parameter slots filled with values extracted from tokens. tokens contains exactly the
		// tokens matched by the pattern. Slots the pattern does not fill are left nil.
		Parameters(tokens View, n int) []any
	}

	// RulePattern matches a single token produced by Rule, or any token if Rule is nil.
	RulePattern struct {
		Rule token.Origin
	}

	// TypedPattern matches a single token produced by Rule (any rule if nil) whose value is of type T. The value is
	// extracted into parameter slot Slot, unless it is negative.
	TypedPattern[T any] struct {
		Rule token.Origin
		Slot int
	}

	// OneOfPattern matches a single token produced by any of its rules.
	OneOfPattern struct {
		rules []token.Origin
	}

	// GroupPattern matches a sequence of patterns, one after another.
	GroupPattern struct {
		patterns []Pattern
	}

	// ContextPattern matches Pattern unless the token right before the match is matched by NotAfter, or the token
	// right after it by NotBefore. Nil context patterns never reject a match.
	ContextPattern struct {
		Pattern             Pattern
		NotAfter, NotBefore Pattern
	}

	// View shifted by offset tokens and optionally limited to length tokens (negative length means unlimited).
	window struct {
		base           View
		offset, length int
	}
)

var (
	_ Pattern = (*RulePattern)(nil)
	_ Pattern = (*TypedPattern[any])(nil)
	_ Pattern = (*OneOfPattern)(nil)
	_ Pattern = (*GroupPattern)(nil)
	_ Pattern = (*ContextPattern)(nil)
)

func (s Slice) At(i int) *token.Token {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

func (w window) At(i int) *token.Token {
	if w.length >= 0 && i >= w.length {
		return nil
	}
	return w.base.At(w.offset + i)
}

func shift(tokens View, offset int) View {
	return window{base: tokens, offset: offset, length: -1}
}

func limit(tokens View, offset, length int) View {
	return window{base: tokens, offset: offset, length: length}
}

// Any matches any single token.
func Any() *RulePattern {
	return &RulePattern{}
}

// Of matches a single token produced by the given rule.
func Of(rule token.Origin) *RulePattern {
	return &RulePattern{Rule: rule}
}

func (p *RulePattern) Match(tokens View) int {
	tok := tokens.At(0)
	if tok == nil || (p.Rule != nil && tok.Origin != p.Rule) {
		return 0
	}
	return 1
}

func (p *RulePattern) Parameters(_ View, n int) []any {
	return make([]any, n)
}

// OneOf matches a single token produced by any of the given rules.
func OneOf(rules ...token.Origin) *OneOfPattern {
	return &OneOfPattern{rules: rules}
}

func (p *OneOfPattern) Match(tokens View) int {
	if tok := tokens.At(0); tok != nil && slices.Contains(p.rules, tok.Origin) {
		return 1
	}
	return 0
}

func (p *OneOfPattern) Parameters(_ View, n int) []any {
	return make([]any, n)
}

// Param matches a single token of any rule with a value of type T and extracts it into the given slot.
func Param[T any](slot int) *TypedPattern[T] {
	return &TypedPattern[T]{Slot: slot}
}

// ParamOf matches a single token of the given rule with a value of type T and extracts it into the given slot.
func ParamOf[T any](rule token.Origin, slot int) *TypedPattern[T] {
	return &TypedPattern[T]{Rule: rule, Slot: slot}
}

// ValueOf matches a single token of the given rule with a value of type T without extracting it.
func ValueOf[T any](rule token.Origin) *TypedPattern[T] {
	return &TypedPattern[T]{Rule: rule, Slot: -1}
}

func (p *TypedPattern[T]) Match(tokens View) int {
	tok := tokens.At(0)
	if tok == nil || (p.Rule != nil && tok.Origin != p.Rule) {
		return 0
	}
	if _, ok := tok.Value.(T); !ok {
		return 0
	}
	return 1
}

func (p *TypedPattern[T]) Parameters(tokens View, n int) []any {
	params := make([]any, n)
	if tok := tokens.At(0); tok != nil && p.Slot >= 0 && p.Slot < n {
		params[p.Slot] = tok.Value
	}
	return params
}

// Group creates a pattern matching all the given patterns in sequence.
func Group(patterns ...Pattern) *GroupPattern {
	return &GroupPattern{patterns: patterns}
}

func (g *GroupPattern) Match(tokens View) int {
	total := 0
	for _, p := range g.patterns {
		matched := p.Match(shift(tokens, total))
		if matched <= 0 {
			return 0
		}
		total += matched
	}
	return total
}

// Parameters merges parameters of the sub-patterns. When several sub-patterns fill the same slot, the first one wins.
func (g *GroupPattern) Parameters(tokens View, n int) []any {
	params := make([]any, n)
	offset := 0
	for _, p := range g.patterns {
		matched := p.Match(shift(tokens, offset))
		if matched <= 0 {
			break
		}
		for slot, value := range p.Parameters(limit(tokens, offset, matched), n) {
			if slot < n && params[slot] == nil && value != nil {
				params[slot] = value
			}
		}
		offset += matched
	}
	return params
}

// Guard restricts pattern to matches not directly following a token matched by notAfter and not directly preceding
// one matched by notBefore. Either may be nil.
//
// Binary operator rules use it to leave an operand to a pending operator of higher precedence, e.g. "1 + 2" must not
// be reduced in "1 + 2 * (3 + 4)" while the parenthesized operand of * is not reduced yet.
func Guard(pattern, notAfter, notBefore Pattern) *ContextPattern {
	return &ContextPattern{Pattern: pattern, NotAfter: notAfter, NotBefore: notBefore}
}

func (p *ContextPattern) Match(tokens View) int {
	n := p.Pattern.Match(tokens)
	if n <= 0 {
		return 0
	}
	if p.NotAfter != nil && p.NotAfter.Match(shift(tokens, -1)) > 0 {
		return 0
	}
	if p.NotBefore != nil && p.NotBefore.Match(shift(tokens, n)) > 0 {
		return 0
	}
	return n
}

func (p *ContextPattern) Parameters(tokens View, n int) []any {
	return p.Pattern.Parameters(tokens, n)
}
