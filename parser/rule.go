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
	"fmt"
	"reflect"

	"github.com/EngFlow/termrewrite/token"
)

type (
	// Transform computes the value of a reduced token from the parameters extracted by a pattern.
	Transform func(params []any) (any, error)

	// Rule replaces a sequence of tokens matched by its pattern with a single token, whose value is computed by the
	// transform. Rules are immutable; a rule also serves as the origin of the tokens it produces, so patterns of other
	// rules can refer to it.
	//
	// Use NewRule0 ... NewRule4 to create rules with typed transforms.
	Rule struct {
		name      string
		pattern   Pattern
		arity     int
		transform Transform
	}
)

var _ token.Origin = (*Rule)(nil)

// NewRule creates a rule with an untyped transform receiving arity parameters.
func NewRule(name string, pattern Pattern, arity int, transform Transform) *Rule {
	return &Rule{name: name, pattern: pattern, arity: arity, transform: transform}
}

func (r *Rule) Name() string     { return r.name }
func (r *Rule) Pattern() Pattern { return r.pattern }
func (r *Rule) Arity() int       { return r.arity }
func (r *Rule) String() string   { return r.name }

// Match returns the number of leading tokens matched by the rule's pattern.
func (r *Rule) Match(tokens View) int {
	return r.pattern.Match(tokens)
}

// Reduce builds the token replacing the first n tokens of the view, which must have been matched by the rule. The new
// token spans the sources of all replaced tokens. A *token.Error returned by the transform without a source is reported
// at the replaced tokens.
func (r *Rule) Reduce(tokens View, n int) (*token.Token, error) {
	matched := limit(tokens, 0, n)
	sources := make([]*token.Source, 0, n)
	for i := range n {
		tok := matched.At(i)
		if tok == nil {
			return nil, fmt.Errorf("rule %q matched %d tokens, but only %d are available", r.name, n, i)
		}
		sources = append(sources, tok.Source)
	}
	source := token.Join(sources...)

	params := r.pattern.Parameters(matched, r.arity)
	if len(params) != r.arity {
		return nil, token.Errorf(token.ErrParameterType, source, "rule %q expects %d parameters, pattern extracted %d", r.name, r.arity, len(params))
	}
	value, err := r.transform(params)
	if err != nil {
		// Transforms may return shared errors, locate a copy.
		if tokenErr, ok := err.(*token.Error); ok && tokenErr.Source == nil {
			return nil, tokenErr.WithSource(source)
		}
		return nil, err
	}
	return &token.Token{Source: source, Origin: r, Value: value}, nil
}

// Return the i-th parameter converted to T or an error describing the mismatch.
func param[T any](rule string, params []any, i int) (T, error) {
	value, ok := params[i].(T)
	if !ok {
		return value, token.Errorf(token.ErrParameterType, nil, "rule %q expects parameter %d of type %v, got %T", rule, i, reflect.TypeFor[T](), params[i])
	}
	return value, nil
}

// NewRule0 creates a rule whose transform takes no parameters.
func NewRule0[R any](name string, pattern Pattern, fn func() R) *Rule {
	return NewRule(name, pattern, 0, func([]any) (any, error) {
		return fn(), nil
	})
}

// NewRule1 creates a rule whose transform takes parameter slot 0.
func NewRule1[T1, R any](name string, pattern Pattern, fn func(T1) R) *Rule {
	return NewRule(name, pattern, 1, func(params []any) (any, error) {
		p1, err := param[T1](name, params, 0)
		if err != nil {
			return nil, err
		}
		return fn(p1), nil
	})
}

// NewRule2 creates a rule whose transform takes parameter slots 0 and 1.
func NewRule2[T1, T2, R any](name string, pattern Pattern, fn func(T1, T2) R) *Rule {
	return NewRule(name, pattern, 2, func(params []any) (any, error) {
		p1, err := param[T1](name, params, 0)
		if err != nil {
			return nil, err
		}
		p2, err := param[T2](name, params, 1)
		if err != nil {
			return nil, err
		}
		return fn(p1, p2), nil
	})
}

// NewRule3 creates a rule whose transform takes parameter slots 0 to 2.
func NewRule3[T1, T2, T3, R any](name string, pattern Pattern, fn func(T1, T2, T3) R) *Rule {
	return NewRule(name, pattern, 3, func(params []any) (any, error) {
		p1, err := param[T1](name, params, 0)
		if err != nil {
			return nil, err
		}
		p2, err := param[T2](name, params, 1)
		if err != nil {
			return nil, err
		}
		p3, err := param[T3](name, params, 2)
		if err != nil {
			return nil, err
		}
		return fn(p1, p2, p3), nil
	})
}

// NewRule4 creates a rule whose transform takes parameter slots 0 to 3.
func NewRule4[T1, T2, T3, T4, R any](name string, pattern Pattern, fn func(T1, T2, T3, T4) R) *Rule {
	return NewRule(name, pattern, 4, func(params []any) (any, error) {
		p1, err := param[T1](name, params, 0)
		if err != nil {
			return nil, err
		}
		p2, err := param[T2](name, params, 1)
		if err != nil {
			return nil, err
		}
		p3, err := param[T3](name, params, 2)
		if err != nil {
			return nil, err
		}
		p4, err := param[T4](name, params, 3)
		if err != nil {
			return nil, err
		}
		return fn(p1, p2, p3, p4), nil
	})
}
