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
	"math"
	"math/big"
	"strconv"
)

var ErrDivisionByZero = errors.New("division by zero")

// Field is the algebraic capability arithmetic expressions are evaluated with.
type Field[T any] interface {
	Zero() T
	One() T
	Add(a, b T) T
	Multiply(a, b T) T
	// Negate returns the additive inverse.
	Negate(a T) T
	// Invert returns the multiplicative inverse, or ErrDivisionByZero for zero.
	Invert(a T) (T, error)
	// Equal reports whether two elements differ by no more than tolerance.
	Equal(a, b T, tolerance float64) bool
	// Parse converts a number literal into an element.
	Parse(text string) (T, error)
}

type (
	// Float64 is the field of float64 numbers.
	Float64 struct{}
	// Rational is the field of exact fractions.
	Rational struct{}
)

var (
	_ Field[float64]  = Float64{}
	_ Field[*big.Rat] = Rational{}
)

func (Float64) Zero() float64                 { return 0 }
func (Float64) One() float64                  { return 1 }
func (Float64) Add(a, b float64) float64      { return a + b }
func (Float64) Multiply(a, b float64) float64 { return a * b }
func (Float64) Negate(a float64) float64      { return -a }

func (Float64) Parse(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}

func (Float64) Invert(a float64) (float64, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	return 1 / a, nil
}

func (Float64) Equal(a, b float64, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func (Rational) Zero() *big.Rat                  { return new(big.Rat) }
func (Rational) One() *big.Rat                   { return big.NewRat(1, 1) }
func (Rational) Add(a, b *big.Rat) *big.Rat      { return new(big.Rat).Add(a, b) }
func (Rational) Multiply(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func (Rational) Negate(a *big.Rat) *big.Rat      { return new(big.Rat).Neg(a) }

func (Rational) Invert(a *big.Rat) (*big.Rat, error) {
	if a.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Rat).Inv(a), nil
}

func (Rational) Equal(a, b *big.Rat, tolerance float64) bool {
	diff, _ := new(big.Rat).Sub(a, b).Float64()
	return math.Abs(diff) <= tolerance
}

func (Rational) Parse(text string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, fmt.Errorf("invalid rational number %q", text)
	}
	return r, nil
}
