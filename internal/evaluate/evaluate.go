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

// Package evaluate runs a grammar over every line of input files and collects the results as dump records.
package evaluate

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/EngFlow/termrewrite/grammars/arith"
	"github.com/EngFlow/termrewrite/grammars/ppexpr"
	"github.com/EngFlow/termrewrite/internal/collections"
	"github.com/EngFlow/termrewrite/internal/dump"
	"github.com/EngFlow/termrewrite/internal/suggest"
	"github.com/EngFlow/termrewrite/lexdef"
	"github.com/EngFlow/termrewrite/parser"
	"github.com/EngFlow/termrewrite/pipeline"
	"github.com/bmatcuk/doublestar/v4"
)

// Input name used for records read from standard input.
const StdinName = "-"

type (
	Config struct {
		// One of GrammarNames. Ignored when LexerDefinition is set.
		Grammar string
		// Path of a YAML lexer definition. Lines are only tokenized with it.
		LexerDefinition string
		Strict          bool
		// Macros the ppexpr conditions are evaluated with.
		Macros ppexpr.Macros
		// Optional logger tracing every parser reduction.
		Trace *log.Logger
	}

	// Grammar evaluates single lines of text.
	Grammar struct {
		pipeline *pipeline.Pipeline
		strict   bool
		// Converts the payload of the single reduced token into printable result. Nil when only tokenizing.
		result func(value any) (string, error)
	}
)

// GrammarNames lists the grammars known to NewGrammar.
var GrammarNames = []string{"arith", "rational", "ppexpr"}

// NewGrammar creates the grammar selected by config.
func NewGrammar(config Config) (*Grammar, error) {
	if config.LexerDefinition != "" {
		def, err := lexdef.Load(config.LexerDefinition)
		if err != nil {
			return nil, err
		}
		lex, err := def.Build(lexdef.DefaultRegistry())
		if err != nil {
			return nil, fmt.Errorf("invalid lexer definition %s: %w", config.LexerDefinition, err)
		}
		return &Grammar{pipeline: pipeline.New(lex, parser.New(nil)), strict: config.Strict}, nil
	}

	switch config.Grammar {
	case "arith":
		g := arith.New[float64](arith.Float64{}, arith.Options{Symbols: true, Trace: config.Trace})
		return &Grammar{pipeline: g.Pipeline(), strict: config.Strict, result: arithResult(g.Field(), func(v float64) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		})}, nil
	case "rational":
		g := arith.New[*big.Rat](arith.Rational{}, arith.Options{Symbols: true, Trace: config.Trace})
		return &Grammar{pipeline: g.Pipeline(), strict: config.Strict, result: arithResult(g.Field(), (*big.Rat).RatString)}, nil
	case "ppexpr":
		g := ppexpr.New(parser.WithLogger(config.Trace))
		macros := config.Macros
		return &Grammar{pipeline: g.Pipeline(), strict: config.Strict, result: func(value any) (string, error) {
			cond, ok := value.(ppexpr.Expr)
			if !ok {
				return "", fmt.Errorf("unexpected value %v", value)
			}
			return strconv.FormatBool(cond.Eval(macros)), nil
		}}, nil
	default:
		return nil, fmt.Errorf("unknown grammar %q%s (expected one of %s)", config.Grammar, suggest.Hint(config.Grammar, GrammarNames), strings.Join(GrammarNames, ", "))
	}
}

// Expressions with symbols are printed as they are, the other ones are evaluated.
func arithResult[T any](field arith.Field[T], format func(T) string) func(any) (string, error) {
	return func(value any) (string, error) {
		expr, ok := value.(arith.Expr[T])
		if !ok {
			return "", fmt.Errorf("unexpected value %v", value)
		}
		if !expr.Evaluable() {
			return expr.String(), nil
		}
		v, err := expr.Evaluate(field)
		if err != nil {
			return "", err
		}
		return format(v), nil
	}
}

// EvaluateLine parses text and evaluates the result. Failures are reported in the record.
func (g *Grammar) EvaluateLine(text string) dump.Record {
	record := dump.Record{Text: text}
	tokens, err := g.pipeline.Parse(text, g.strict)
	if err != nil {
		record.Error = err.Error()
		return record
	}
	record.Tokens = dump.FromTokens(tokens)
	if g.result == nil {
		return record
	}

	// Tokens are already fully reduced, so parsing them again only checks that a single one is left.
	tok, err := g.pipeline.Parser().ParseSingular(tokens)
	switch {
	case err != nil:
		record.Error = err.Error()
	case tok == nil:
		record.Error = "empty input"
	default:
		if record.Result, err = g.result(tok.Value); err != nil {
			record.Error = err.Error()
		}
	}
	return record
}

// EvaluateReader evaluates every non-blank line read from r.
func (g *Grammar) EvaluateReader(name string, r io.Reader) ([]dump.Record, error) {
	var records []dump.Record
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		record := g.EvaluateLine(text)
		record.Input, record.Line = name, line
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return records, nil
}

// EvaluateFile evaluates every non-blank line of the file.
func (g *Grammar) EvaluateFile(path string) ([]dump.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return g.EvaluateReader(path, file)
}

// ResolveInputs expands doublestar glob patterns into a sorted list of files. Patterns without meta characters name
// files directly, so a missing file is reported by the evaluation.
func ResolveInputs(patterns []string) ([]string, error) {
	files := make(collections.Set[string])
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		if len(matches) == 0 && !hasMeta(pattern) {
			matches = []string{pattern}
		}
		files.AddSlice(matches)
	}
	return files.SortedValues(strings.Compare), nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{\`)
}

// Run evaluates all files matching patterns, or stdin if there are no patterns.
func Run(config Config, patterns []string, stdin io.Reader) ([]dump.Record, error) {
	g, err := NewGrammar(config)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return g.EvaluateReader(StdinName, stdin)
	}

	inputs, err := ResolveInputs(patterns)
	if err != nil {
		return nil, err
	}
	var records []dump.Record
	for _, input := range inputs {
		fileRecords, err := g.EvaluateFile(input)
		if err != nil {
			return records, err
		}
		records = slices.Concat(records, fileRecords)
	}
	return records, nil
}
