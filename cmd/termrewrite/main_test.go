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
	"strings"
	"testing"

	"github.com/EngFlow/termrewrite/internal/dump"
	"github.com/stretchr/testify/assert"
)

func TestPrintRecords(t *testing.T) {
	var sb strings.Builder
	printRecords(&sb, []dump.Record{
		{Input: "a.txt", Line: 1, Text: "1 + 1", Result: "2"},
		{Input: "a.txt", Line: 2, Text: "1 +", Error: "parser: incomplete parse"},
		{Input: "-", Line: 1, Text: "ab", Tokens: []dump.Token{{Rule: "word", Text: "a"}, {Rule: "word", Text: "b"}}},
	})
	assert.Equal(t, `a.txt:1: 1 + 1 => 2
a.txt:2: parser: incomplete parse
-:1: word("a") word("b")
`, sb.String())
}
