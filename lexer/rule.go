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

package lexer

import (
	"github.com/EngFlow/termrewrite/token"
)

type (
	// Converts the text matched by a rule into the token payload.
	ValueParser func(text string) (any, error)

	// Rule describes one kind of token: a regular expression fragment and what to do with the text it matches.
	// Rules are immutable and may be shared by many lexers.
	Rule struct {
		name    string
		pattern string
		ignore  bool
		parse   ValueParser
	}
)

var _ token.Origin = (*Rule)(nil)

// NewRule creates a rule emitting tokens without payload.
func NewRule(name, pattern string) *Rule {
	return &Rule{name: name, pattern: pattern}
}

// NewIgnoredRule creates a rule that consumes matched text without emitting tokens, e.g. for whitespace or comments.
func NewIgnoredRule(name, pattern string) *Rule {
	return &Rule{name: name, pattern: pattern, ignore: true}
}

// NewParserRule creates a rule whose tokens carry the value returned by parse.
func NewParserRule(name, pattern string, parse ValueParser) *Rule {
	return &Rule{name: name, pattern: pattern, parse: parse}
}

// NewValueRule creates a rule whose tokens carry a value of type T returned by parse.
func NewValueRule[T any](name, pattern string, parse func(string) (T, error)) *Rule {
	return NewParserRule(name, pattern, func(text string) (any, error) {
		return parse(text)
	})
}

func (r *Rule) Name() string    { return r.name }
func (r *Rule) Pattern() string { return r.pattern }
func (r *Rule) Ignored() bool   { return r.ignore }
func (r *Rule) String() string  { return r.name }

// Create the token for a snippet matched by this rule. Returns nil token if the rule is ignored.
func (r *Rule) emit(src *token.Source) (*token.Token, error) {
	switch {
	case r.ignore:
		return nil, nil
	case r.parse == nil:
		return &token.Token{Source: src, Origin: r}, nil
	}

	value, err := r.parse(src.Snippet)
	if err != nil {
		return nil, token.Errorf(token.ErrRuleDefinition, src, "rule %q matched %q but failed to parse it", r.name, src.Snippet).WithCause(err)
	}
	return &token.Token{Source: src, Origin: r, Value: value}, nil
}
