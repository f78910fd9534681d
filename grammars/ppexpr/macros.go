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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Macros maps names of defined macros to their integer values, e.g. {"__ANDROID__": 1, "__ARM_ARCH": 8}.
// A macro defined without explicit value equals 1. String and floating point macros are not supported.
type Macros map[string]int

var (
	// First character is '_' or a letter, subsequent characters may also be decimal digits.
	identifierPattern = `[A-Za-z_][A-Za-z0-9_]*`
	// Decimal, octal or hexadecimal literal with an optional C integer suffix.
	integerPattern = `(?:0[xX][0-9a-fA-F]+|[1-9][0-9]*|0[0-7]*)(?:[uU](?:ll?|LL?)?|ll?[uU]?|LL?[uU]?)?`

	identifierRegex = regexp.MustCompile(`^` + identifierPattern + `$`)
	integerRegex    = regexp.MustCompile(`^` + integerPattern + `$`)
)

// ParseMacro parses a single -D style definition: NAME or NAME=VALUE, with an optional "-D" prefix.
func ParseMacro(definition string) (string, int, error) {
	name, value, hasValue := strings.Cut(strings.TrimPrefix(definition, "-D"), "=")
	if !identifierRegex.MatchString(name) {
		return "", 0, fmt.Errorf("invalid macro name %q", name)
	}
	if !hasValue || value == "" {
		return name, 1, nil
	}
	if !integerRegex.MatchString(value) {
		return "", 0, fmt.Errorf("macro %s=%s, only integer literal values are allowed", name, value)
	}
	intValue, err := parseInteger(value)
	if err != nil {
		return "", 0, fmt.Errorf("invalid value of macro %s: %w", name, err)
	}
	return name, intValue, nil
}

// ParseMacros converts -D style definitions into Macros. Every malformed definition is reported, the valid ones are
// still returned. Later definitions override earlier ones.
func ParseMacros(definitions []string) (Macros, error) {
	macros := Macros{}
	var errs []error
	for _, definition := range definitions {
		name, value, err := ParseMacro(definition)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to parse %s: %w", definition, err))
			continue
		}
		macros[name] = value
	}
	return macros, errors.Join(errs...)
}

// ParseCompilerFlags collects macros from a compiler command line, e.g. `-DNDEBUG -D VERSION=3 -O2 -UDEBUG`.
// Arguments are split the way a shell does. Flags other than -D and -U are ignored, -U removes a macro defined by
// earlier flags.
func ParseCompilerFlags(flags string) (Macros, error) {
	args, err := shellwords.Parse(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to split compiler flags: %w", err)
	}

	macros := Macros{}
	var errs []error
	for i := 0; i < len(args); i++ {
		flag := args[i]
		if !strings.HasPrefix(flag, "-D") && !strings.HasPrefix(flag, "-U") {
			continue
		}
		kind, operand := flag[:2], flag[2:]
		if operand == "" {
			if i+1 == len(args) {
				errs = append(errs, fmt.Errorf("missing argument of %s", kind))
				break
			}
			i++
			operand = args[i]
		}

		if kind == "-U" {
			delete(macros, operand)
			continue
		}
		name, value, err := ParseMacro(operand)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to parse %s%s: %w", kind, operand, err))
			continue
		}
		macros[name] = value
	}
	return macros, errors.Join(errs...)
}

// Parse an integer literal in decimal, octal or hexadecimal form, ignoring C suffixes. Literals above the int64
// range but within 64 bits wrap around, e.g. 0xffffffffffffffff equals -1.
func parseInteger(text string) (int, error) {
	text = strings.TrimRightFunc(text, func(r rune) bool {
		return r == 'u' || r == 'U' || r == 'l' || r == 'L'
	})
	v, err := strconv.ParseInt(text, 0, 64)
	if errors.Is(err, strconv.ErrRange) {
		var u uint64
		u, err = strconv.ParseUint(text, 0, 64)
		v = int64(u)
	}
	return int(v), err
}
