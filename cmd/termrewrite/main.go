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

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"strings"

	"github.com/EngFlow/termrewrite/grammars/ppexpr"
	"github.com/EngFlow/termrewrite/internal/collections"
	"github.com/EngFlow/termrewrite/internal/dump"
	"github.com/EngFlow/termrewrite/internal/evaluate"
)

// Evaluates every line of the input files with the selected grammar. Arguments are doublestar glob patterns, e.g.
// 'tests/**/*.txt'. Without arguments lines are read from stdin.
func main() {
	grammar := flag.String("grammar", "arith", "Grammar used to parse the input: "+strings.Join(evaluate.GrammarNames, ", "))
	lexerDefinition := flag.String("lexdef", "", "Path to a YAML or TOML lexer definition. When set, input is only tokenized")
	strict := flag.Bool("strict", true, "Report characters not matched by any lexer rule instead of skipping them")
	output := flag.String("output", "", "Write a dump of the results to this file instead of printing them. Files ending with .xz are compressed")
	format := flag.String("format", "json", "Format of the dump: json or proto")
	trace := flag.Bool("trace", false, "Log every reduction performed by the parser")
	var definitions []string
	flag.Func("D", "Macro definition NAME[=VALUE] used by the ppexpr grammar, can be repeated", func(value string) error {
		definitions = append(definitions, value)
		return nil
	})
	cflags := flag.String("cflags", "", "Compiler command line whose -D and -U flags define macros for the ppexpr grammar, applied before -D flags")
	flag.Parse()

	dumpFormat, err := dump.ParseFormat(*format)
	if err != nil {
		flag.Usage()
		log.Fatal(err)
	}
	macros, err := ppexpr.ParseCompilerFlags(*cflags)
	if err != nil {
		log.Fatalf("Invalid compiler flags: %v", err)
	}
	definedMacros, err := ppexpr.ParseMacros(definitions)
	if err != nil {
		log.Fatalf("Invalid macro definitions: %v", err)
	}
	maps.Copy(macros, definedMacros)

	config := evaluate.Config{
		Grammar:         *grammar,
		LexerDefinition: *lexerDefinition,
		Strict:          *strict,
		Macros:          macros,
	}
	if *trace {
		config.Trace = log.New(os.Stderr, "trace: ", 0)
	}

	records, err := evaluate.Run(config, flag.Args(), os.Stdin)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	if *output == "" {
		printRecords(os.Stdout, records)
	} else {
		if err := dump.WriteFile(*output, records, dumpFormat); err != nil {
			log.Fatalf("Failed to write results: %v", err)
		}
		log.Printf("Wrote %d results to %s", len(records), *output)
	}

	for _, record := range records {
		if record.Error != "" {
			os.Exit(1)
		}
	}
}

func printRecords(w io.Writer, records []dump.Record) {
	for _, record := range records {
		switch {
		case record.Error != "":
			fmt.Fprintf(w, "%s:%d: %s\n", record.Input, record.Line, record.Error)
		case record.Result != "":
			fmt.Fprintf(w, "%s:%d: %s => %s\n", record.Input, record.Line, record.Text, record.Result)
		default:
			tokens := collections.MapSlice(record.Tokens, func(tok dump.Token) string { return fmt.Sprintf("%s(%q)", tok.Rule, tok.Text) })
			fmt.Fprintf(w, "%s:%d: %s\n", record.Input, record.Line, strings.Join(tokens, " "))
		}
	}
}
