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

// Associativity is the direction in which a level scans the token sequence. It decides which of repeated matches is
// reduced first, e.g. "1 - 2 - 3" is reduced as "(1 - 2) - 3" when scanned LeftToRight.
type Associativity int

const (
	LeftToRight Associativity = iota
	RightToLeft
)

func (a Associativity) String() string {
	switch a {
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	default:
		return "unknown associativity"
	}
}

// Level groups rules of equal precedence. Within a level, rules declared first are tried first.
type Level struct {
	name          string
	associativity Associativity
	rules         []*Rule
}

// NewLevel creates a precedence level.
func NewLevel(name string, associativity Associativity, rules ...*Rule) *Level {
	return &Level{name: name, associativity: associativity, rules: rules}
}

func (l *Level) Name() string                 { return l.name }
func (l *Level) Associativity() Associativity { return l.associativity }
func (l *Level) Rules() []*Rule               { return l.rules }
