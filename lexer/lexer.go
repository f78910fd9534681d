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

// Package lexer provides a regular expression driven lexical analyzer. It breaks the input into a sequence of tokens,
// which can then be reduced by a parser.
//
// Lexer is built from an ordered list of rules. Order of rules matters when multiple rules can match the same input:
// the rule declared first wins, regardless of how long the other matches would be. Every character not matched by
// any rule is either reported as a syntax error (strict mode) or skipped.
package lexer

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/EngFlow/termrewrite/token"
)

type (
	// Lexer breaks text into tokens according to its rules. Lexer is immutable and safe for concurrent use.
	Lexer struct {
		rules []*Rule
		// Index of the capturing group wrapping each rule's pattern in re.
		groups []int
		// Index of the capturing group matching any single character not matched by rules.
		catchAll int
		re       *regexp.Regexp
	}

	// Single non-empty match found by the lexer. Rule is nil for characters no rule accepts.
	match struct {
		rule   *Rule
		source *token.Source
	}
)

// New creates a lexer from the rules given in priority order. Returns an error if any rule pattern is not a valid
// regular expression.
func New(rules ...*Rule) (*Lexer, error) {
	var sb strings.Builder
	sb.WriteString("(?m)")
	groups := make([]int, len(rules))
	nextGroup := 1
	for i, rule := range rules {
		fragment, err := regexp.Compile(rule.pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern of rule %q: %w", rule.name, err)
		}
		if fragment.MatchString("") {
			return nil, fmt.Errorf("pattern of rule %q matches empty text", rule.name)
		}
		fmt.Fprintf(&sb, "(%s)|", rule.pattern)
		groups[i] = nextGroup
		nextGroup += 1 + fragment.NumSubexp()
	}
	sb.WriteString("((?s:.))")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("cannot combine rule patterns: %w", err)
	}
	if re.NumSubexp() != nextGroup {
		return nil, fmt.Errorf("cannot combine rule patterns: expected %d capturing groups, got %d", nextGroup, re.NumSubexp())
	}

	return &Lexer{
		rules:    rules,
		groups:   groups,
		catchAll: nextGroup,
		re:       re,
	}, nil
}

// MustNew is like New but panics on invalid rules. It simplifies initialization of global grammars.
func MustNew(rules ...*Rule) *Lexer {
	l, err := New(rules...)
	if err != nil {
		panic(err)
	}
	return l
}

// Rules returns the rules of the lexer in priority order.
func (l *Lexer) Rules() []*Rule {
	return l.rules
}

// Return the rule which produced the submatch, or nil if it was the catch-all group.
func (l *Lexer) ruleOf(submatch []int) *Rule {
	for i, group := range l.groups {
		if submatch[2*group] >= 0 {
			return l.rules[i]
		}
	}
	return nil
}

// Number of matches searched for by the first pass of scan. Each subsequent pass doubles it.
var scanBatch = 64

// Return all non-empty matches of the combined pattern in source order. Successive matches start where the previous
// one ended, so matched snippets cover the whole text.
//
// A pattern may still match empty text in some contexts, e.g. `\b`. Such a match is dropped and the regexp engine
// resumes one character later, so the skipped text is yielded as unmatched.
//
// Matches are searched in passes over the whole text, each pass looking for twice as many matches as the previous
// one. Searching from an offset within the text would break anchors like `^` and `\b`, which look at the preceding
// character. Stopping the iteration early costs at most twice the work needed to find the yielded matches.
func (l *Lexer) scan(text string) iter.Seq[match] {
	return func(yield func(match) bool) {
		pos, seen := 0, 0
		for limit := scanBatch; ; limit *= 2 {
			submatches := l.re.FindAllStringSubmatchIndex(text, limit)
			for _, submatch := range submatches[seen:] {
				if submatch[0] > pos && !yield(match{source: token.NewSource(text, pos, submatch[0])}) {
					return
				}
				if submatch[0] == submatch[1] {
					pos = max(pos, submatch[0])
					continue
				}
				m := match{rule: l.ruleOf(submatch), source: token.NewSource(text, submatch[0], submatch[1])}
				if !yield(m) {
					return
				}
				pos = submatch[1]
			}
			if len(submatches) < limit {
				break
			}
			seen = len(submatches)
		}
		if pos < len(text) {
			yield(match{source: token.NewSource(text, pos, len(text))})
		}
	}
}

// Lex returns the tokens found in text. The sequence is lazy and may be iterated many times.
//
// In strict mode a character not matched by any rule stops lexing with token.ErrSyntax; otherwise such characters are
// skipped. A rule whose value parser rejects matched text always stops lexing with token.ErrRuleDefinition. The error
// is yielded as the last element of the sequence.
func (l *Lexer) Lex(text string, strict bool) iter.Seq2[*token.Token, error] {
	return func(yield func(*token.Token, error) bool) {
		for m := range l.scan(text) {
			if m.rule == nil {
				if strict {
					yield(nil, token.Errorf(token.ErrSyntax, m.source, "unexpected character %q", m.source.Snippet))
					return
				}
				continue
			}

			tok, err := m.rule.emit(m.source)
			if err != nil {
				yield(nil, err)
				return
			}
			if tok != nil && !yield(tok, nil) {
				return
			}
		}
	}
}

// Tokenize returns all tokens found in text, or the first error reported by Lex.
func (l *Lexer) Tokenize(text string, strict bool) ([]*token.Token, error) {
	var tokens []*token.Token
	for tok, err := range l.Lex(text, strict) {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
