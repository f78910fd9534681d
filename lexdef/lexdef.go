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

// Package lexdef builds lexers from declarative definitions written in YAML, e.g.
//
//	rules:
//	  - name: number
//	    pattern: '\d+'
//	    parser: int
//	  - name: space
//	    pattern: '\s+'
//	    ignore: true
//
// or in TOML, as an array of [[rules]] tables with the same keys.
//
// Value parsers are referred to by name and looked up in an explicit Registry supplied by the caller.
package lexdef

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/EngFlow/termrewrite/internal/collections"
	"github.com/EngFlow/termrewrite/internal/suggest"
	"github.com/EngFlow/termrewrite/lexer"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type (
	Definition struct {
		Rules []RuleDefinition `yaml:"rules" toml:"rules"`
	}

	RuleDefinition struct {
		Name    string `yaml:"name" toml:"name"`
		Pattern string `yaml:"pattern" toml:"pattern"`
		Ignore  bool   `yaml:"ignore,omitempty" toml:"ignore,omitempty"`
		// Name of the value parser in the Registry. Empty for tokens without payload.
		Parser string `yaml:"parser,omitempty" toml:"parser,omitempty"`
	}

	// Registry maps names used in definitions to value parsers.
	Registry map[string]lexer.ValueParser

	Format int
)

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf guesses the format from the file extension: .toml files are TOML, everything else is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// DefaultRegistry returns a registry of parsers for basic Go types: int, float, bool and string.
func DefaultRegistry() Registry {
	return Registry{
		"int":    func(text string) (any, error) { return strconv.Atoi(text) },
		"float":  func(text string) (any, error) { return strconv.ParseFloat(text, 64) },
		"bool":   func(text string) (any, error) { return strconv.ParseBool(text) },
		"string": func(text string) (any, error) { return text, nil },
	}
}

// Decode reads a definition in the given format. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (*Definition, error) {
	var def Definition
	var err error
	switch format {
	case YAML:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err = decoder.Decode(&def); errors.Is(err, io.EOF) {
			err = nil
		}
	case TOML:
		err = toml.NewDecoder(r).DisallowUnknownFields().Decode(&def)
	default:
		err = fmt.Errorf("unsupported format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode lexer definition: %w", err)
	}
	return &def, nil
}

// Load reads a definition from a file in the format given by its extension.
func Load(path string) (*Definition, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	def, err := Decode(file, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Encode writes the definition in the given format.
func (d *Definition) Encode(w io.Writer, format Format) error {
	switch format {
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(d); err != nil {
			return err
		}
		return encoder.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(d)
	default:
		return fmt.Errorf("unsupported format %v", format)
	}
}

// Validate reports all problems of the definition at once: rules without name or pattern, duplicated names and
// parsers missing in the registry.
func (d *Definition) Validate(registry Registry) error {
	var errs []error
	for i, rule := range d.Rules {
		if rule.Name == "" {
			errs = append(errs, fmt.Errorf("rule #%d has no name", i+1))
		}
		if rule.Pattern == "" {
			errs = append(errs, fmt.Errorf("rule %q has no pattern", rule.Name))
		}
		if rule.Parser != "" {
			if rule.Ignore {
				errs = append(errs, fmt.Errorf("rule %q is ignored but declares parser %q", rule.Name, rule.Parser))
			} else if _, ok := registry[rule.Parser]; !ok {
				names := registry.Names()
				errs = append(errs, fmt.Errorf("rule %q uses unknown parser %q%s (available: %s)", rule.Name, rule.Parser, suggest.Hint(rule.Parser, names), strings.Join(names, ", ")))
			}
		}
	}

	names := collections.FilterSlice(
		collections.MapSlice(d.Rules, func(rule RuleDefinition) string { return rule.Name }),
		func(name string) bool { return name != "" },
	)
	for _, name := range collections.ToSet(collections.FindDuplicates(names)).SortedValues(strings.Compare) {
		errs = append(errs, fmt.Errorf("rule %q is defined more than once", name))
	}
	return errors.Join(errs...)
}

// LexerRules creates lexer rules in the order of the definition.
func (d *Definition) LexerRules(registry Registry) ([]*lexer.Rule, error) {
	if err := d.Validate(registry); err != nil {
		return nil, err
	}
	return collections.MapSlice(d.Rules, func(rule RuleDefinition) *lexer.Rule {
		switch {
		case rule.Ignore:
			return lexer.NewIgnoredRule(rule.Name, rule.Pattern)
		case rule.Parser != "":
			return lexer.NewParserRule(rule.Name, rule.Pattern, registry[rule.Parser])
		default:
			return lexer.NewRule(rule.Name, rule.Pattern)
		}
	}), nil
}

// Build creates a lexer from the definition.
func (d *Definition) Build(registry Registry) (*lexer.Lexer, error) {
	rules, err := d.LexerRules(registry)
	if err != nil {
		return nil, err
	}
	return lexer.New(rules...)
}

// Names of parsers available in the registry, sorted.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r))
}
