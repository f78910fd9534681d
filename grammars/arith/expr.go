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

package arith

import (
	"errors"
	"fmt"
)

var ErrNotEvaluable = errors.New("expression is not evaluable")

type (
	// Expr is an arithmetic AST node, the payload of tokens reduced by the arithmetic grammar.
	Expr[T any] interface {
		// Evaluable reports whether the expression can be evaluated, i.e. it contains no symbols.
		Evaluable() bool
		Evaluate(field Field[T]) (T, error)
		String() string
	}

	// Constant is a number literal.
	Constant[T any] struct {
		Value T
	}

	// Symbol is a named unknown. Expressions containing symbols cannot be evaluated.
	Symbol[T any] struct {
		Name string
	}

	// Operation applies a binary operator to two subexpressions.
	Operation[T any] struct {
		Op          Operator
		Left, Right Expr[T]
	}

	Operator int
)

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
)

func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

func (expr Constant[T]) Evaluable() bool  { return true }
func (expr Symbol[T]) Evaluable() bool    { return false }
func (expr Operation[T]) Evaluable() bool { return expr.Left.Evaluable() && expr.Right.Evaluable() }

func (expr Constant[T]) String() string  { return fmt.Sprint(expr.Value) }
func (expr Symbol[T]) String() string    { return expr.Name }
func (expr Operation[T]) String() string { return fmt.Sprintf("(%s %s %s)", expr.Left, expr.Op, expr.Right) }

func (expr Constant[T]) Evaluate(Field[T]) (T, error) {
	return expr.Value, nil
}

func (expr Symbol[T]) Evaluate(Field[T]) (T, error) {
	var zero T
	return zero, fmt.Errorf("%w: unknown symbol %s", ErrNotEvaluable, expr.Name)
}

func (expr Operation[T]) Evaluate(field Field[T]) (T, error) {
	var zero T
	left, err := expr.Left.Evaluate(field)
	if err != nil {
		return zero, err
	}
	right, err := expr.Right.Evaluate(field)
	if err != nil {
		return zero, err
	}

	switch expr.Op {
	case Add:
		return field.Add(left, right), nil
	case Subtract:
		return field.Add(left, field.Negate(right)), nil
	case Multiply:
		return field.Multiply(left, right), nil
	case Divide:
		inverse, err := field.Invert(right)
		if err != nil {
			return zero, fmt.Errorf("cannot evaluate %s: %w", expr, err)
		}
		return field.Multiply(left, inverse), nil
	default:
		return zero, fmt.Errorf("unknown operator %v", expr.Op)
	}
}
