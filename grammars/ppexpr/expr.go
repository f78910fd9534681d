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

package ppexpr

import (
	"fmt"
)

type (
	// Expr is a node of a preprocessor #if condition, the payload of tokens reduced by the ppexpr grammar.
	Expr interface {
		// Eval reports whether the expression holds for the given macros.
		Eval(macros Macros) bool
		String() string
	}

	// Value is an expression with an integer value, i.e. a macro or a literal.
	Value interface {
		Expr
		// Resolve returns the integer value and whether it is defined. Undefined macros evaluate to 0.
		Resolve(macros Macros) (int, bool)
	}

	// Defined is the defined(X) operator.
	Defined struct {
		Name Ident
	}

	Not struct {
		X Expr
	}

	And struct {
		L, R Expr
	}

	Or struct {
		L, R Expr
	}

	// Compare compares integer values of two expressions. Conditions are converted to 1 or 0.
	Compare struct {
		Left  Expr
		Op    CompareOp
		Right Expr
	}

	// Ident is a macro name, such as _WIN32.
	Ident string
	// ConstantInt is an integer literal.
	ConstantInt int

	CompareOp string
)

const (
	Equal        CompareOp = "=="
	NotEqual     CompareOp = "!="
	Less         CompareOp = "<"
	LessEqual    CompareOp = "<="
	Greater      CompareOp = ">"
	GreaterEqual CompareOp = ">="
)

func (expr Defined) String() string     { return fmt.Sprintf("defined(%s)", expr.Name) }
func (expr Not) String() string         { return "!" + expr.X.String() }
func (expr And) String() string         { return fmt.Sprintf("(%s && %s)", expr.L, expr.R) }
func (expr Or) String() string          { return fmt.Sprintf("(%s || %s)", expr.L, expr.R) }
func (expr Compare) String() string     { return fmt.Sprintf("(%s %s %s)", expr.Left, expr.Op, expr.Right) }
func (expr Ident) String() string       { return string(expr) }
func (expr ConstantInt) String() string { return fmt.Sprintf("%d", int(expr)) }

func (expr Defined) Eval(macros Macros) bool {
	_, exists := macros[string(expr.Name)]
	return exists
}

func (expr Not) Eval(macros Macros) bool         { return !expr.X.Eval(macros) }
func (expr And) Eval(macros Macros) bool         { return expr.L.Eval(macros) && expr.R.Eval(macros) }
func (expr Or) Eval(macros Macros) bool          { return expr.L.Eval(macros) || expr.R.Eval(macros) }
func (expr ConstantInt) Eval(macros Macros) bool { return expr != 0 }

func (expr Ident) Eval(macros Macros) bool {
	value, _ := expr.Resolve(macros)
	return value != 0
}

func (expr Compare) Eval(macros Macros) bool {
	lv, rv := resolve(expr.Left, macros), resolve(expr.Right, macros)
	switch expr.Op {
	case Equal:
		return lv == rv
	case NotEqual:
		return lv != rv
	case Less:
		return lv < rv
	case LessEqual:
		return lv <= rv
	case Greater:
		return lv > rv
	case GreaterEqual:
		return lv >= rv
	default:
		return false
	}
}

func (expr Ident) Resolve(macros Macros) (int, bool) {
	v, defined := macros[string(expr)]
	return v, defined
}

func (expr ConstantInt) Resolve(Macros) (int, bool) {
	return int(expr), true
}

// Integer value of any expression: values resolve to their integer, conditions to 1 or 0.
func resolve(expr Expr, macros Macros) int {
	if v, ok := expr.(Value); ok {
		value, _ := v.Resolve(macros)
		return value
	}
	if expr.Eval(macros) {
		return 1
	}
	return 0
}

// Negate returns the comparison with the opposite operator, e.g. == becomes !=.
func (expr Compare) Negate() Compare {
	negated := map[CompareOp]CompareOp{
		Equal:        NotEqual,
		NotEqual:     Equal,
		Less:         GreaterEqual,
		LessEqual:    Greater,
		Greater:      LessEqual,
		GreaterEqual: Less,
	}
	return Compare{Left: expr.Left, Op: negated[expr.Op], Right: expr.Right}
}
