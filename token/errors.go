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

package token

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to classify an error returned by the lexer or the parser.
var (
	// Input contains a character that no lexer rule accepts. Reported only in strict mode.
	ErrSyntax = errors.New("syntax error")
	// A lexer rule pattern accepted text that the rule's value parser rejected. This is a grammar bug.
	ErrRuleDefinition = errors.New("rule definition error")
	// The parser could not reduce the input to a single token.
	ErrIncompleteParse = errors.New("incomplete parse")
	// A pattern extracted a parameter of a different type than the parser rule declares. This is a grammar bug.
	ErrParameterType = errors.New("parameter type mismatch")
)

// Stage of processing that reported an Error.
type Stage int

const (
	StageLexer Stage = iota
	StageParser
)

func (s Stage) String() string {
	switch s {
	case StageLexer:
		return "lexer"
	case StageParser:
		return "parser"
	default:
		return "unknown stage"
	}
}

// Error is the structured error reported by the lexer and the parser. It carries the source fragment which caused it.
type Error struct {
	Kind    error
	Source  *Source
	Message string
	// Optional underlying error, e.g. returned by a value parser.
	Cause error
}

// Errorf creates an Error of the given kind with a formatted message.
func Errorf(kind error, source *Source, format string, args ...any) *Error {
	return &Error{Kind: kind, Source: source, Message: fmt.Sprintf(format, args...)}
}

// WithCause returns a copy of the error wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	copied := *e
	copied.Cause = cause
	return &copied
}

// WithSource returns a copy of the error located at source.
func (e *Error) WithSource(source *Source) *Error {
	copied := *e
	copied.Source = source
	return &copied
}

// Stage reports which component raised the error.
func (e *Error) Stage() Stage {
	switch e.Kind {
	case ErrIncompleteParse, ErrParameterType:
		return StageParser
	default:
		return StageLexer
	}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v: %s", e.Stage(), e.Kind, e.Message)
	if e.Source != nil {
		msg += " at " + e.Source.Cursor().String()
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
