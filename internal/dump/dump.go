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

// Package dump defines a serializable form of evaluation results and the tokens they were reduced to. Dumps are
// encoded as protobuf Struct messages, either in binary form or as JSON, and may be xz compressed.
package dump

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/EngFlow/termrewrite/internal/collections"
	"github.com/EngFlow/termrewrite/token"
	"github.com/ulikunitz/xz"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type (
	Format int

	// Token is the serializable view of a token.Token.
	Token struct {
		Rule   string
		Text   string
		Offset int
		Line   int
		Column int
		// Payload converted to a JSON compatible value. Values of other types are stored as their string form.
		Value any
	}

	// Record describes the evaluation of one input line.
	Record struct {
		Input  string
		Line   int
		Text   string
		Result string
		Error  string
		// Top-level tokens left after parsing.
		Tokens []Token
	}
)

const (
	FormatJSON Format = iota
	FormatProto
)

// Suffix of file names written with xz compression.
const CompressedSuffix = ".xz"

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatProto:
		return "proto"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts the name of a format into Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "proto":
		return FormatProto, nil
	default:
		return 0, fmt.Errorf("unknown dump format %q, expected json or proto", name)
	}
}

// FromToken converts a token into its serializable form.
func FromToken(tok *token.Token) Token {
	cursor := tok.Source.Cursor()
	result := Token{Text: tok.Text(), Line: cursor.Line, Column: cursor.Column, Value: tok.Value}
	if tok.Origin != nil {
		result.Rule = tok.Origin.Name()
	}
	if tok.Source != nil {
		result.Offset = tok.Source.Offset
	}
	return result
}

// FromTokens converts a token sequence into its serializable form.
func FromTokens(tokens []*token.Token) []Token {
	return collections.MapSlice(tokens, FromToken)
}

func (t Token) toValue() *structpb.Value {
	value, err := structpb.NewValue(t.Value)
	if err != nil {
		value = structpb.NewStringValue(fmt.Sprint(t.Value))
	}
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"rule":   structpb.NewStringValue(t.Rule),
		"text":   structpb.NewStringValue(t.Text),
		"offset": structpb.NewNumberValue(float64(t.Offset)),
		"line":   structpb.NewNumberValue(float64(t.Line)),
		"column": structpb.NewNumberValue(float64(t.Column)),
		"value":  value,
	}})
}

func (r Record) toValue() *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"input":  structpb.NewStringValue(r.Input),
		"line":   structpb.NewNumberValue(float64(r.Line)),
		"text":   structpb.NewStringValue(r.Text),
		"result": structpb.NewStringValue(r.Result),
		"error":  structpb.NewStringValue(r.Error),
		"tokens": structpb.NewListValue(&structpb.ListValue{Values: collections.MapSlice(r.Tokens, Token.toValue)}),
	}})
}

// Encode converts records into a protobuf message.
func Encode(records []Record) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"records": structpb.NewListValue(&structpb.ListValue{Values: collections.MapSlice(records, Record.toValue)}),
	}}
}

// Decode converts a message created by Encode back into records. Numeric token values are decoded as float64.
func Decode(msg *structpb.Struct) ([]Record, error) {
	list, ok := msg.GetFields()["records"]
	if !ok {
		return nil, errors.New("dump has no records")
	}
	records := make([]Record, 0, len(list.GetListValue().GetValues()))
	for i, value := range list.GetListValue().GetValues() {
		fields := value.GetStructValue().GetFields()
		if fields == nil {
			return nil, fmt.Errorf("record #%d is not a struct", i+1)
		}
		record := Record{
			Input:  fields["input"].GetStringValue(),
			Line:   int(fields["line"].GetNumberValue()),
			Text:   fields["text"].GetStringValue(),
			Result: fields["result"].GetStringValue(),
			Error:  fields["error"].GetStringValue(),
		}
		for _, tokValue := range fields["tokens"].GetListValue().GetValues() {
			tokFields := tokValue.GetStructValue().GetFields()
			record.Tokens = append(record.Tokens, Token{
				Rule:   tokFields["rule"].GetStringValue(),
				Text:   tokFields["text"].GetStringValue(),
				Offset: int(tokFields["offset"].GetNumberValue()),
				Line:   int(tokFields["line"].GetNumberValue()),
				Column: int(tokFields["column"].GetNumberValue()),
				Value:  tokFields["value"].AsInterface(),
			})
		}
		records = append(records, record)
	}
	return records, nil
}

// Marshal encodes records in the given format.
func Marshal(records []Record, format Format) ([]byte, error) {
	msg := Encode(records)
	switch format {
	case FormatJSON:
		return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	case FormatProto:
		return proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	default:
		return nil, fmt.Errorf("unsupported dump format %v", format)
	}
}

// Unmarshal decodes records encoded by Marshal.
func Unmarshal(data []byte, format Format) ([]Record, error) {
	var msg structpb.Struct
	var err error
	switch format {
	case FormatJSON:
		err = protojson.Unmarshal(data, &msg)
	case FormatProto:
		err = proto.Unmarshal(data, &msg)
	default:
		err = fmt.Errorf("unsupported dump format %v", format)
	}
	if err != nil {
		return nil, err
	}
	return Decode(&msg)
}

// Write encodes records into w, compressing them with xz if requested.
func Write(w io.Writer, records []Record, format Format, compress bool) error {
	data, err := Marshal(records, format)
	if err != nil {
		return err
	}
	if !compress {
		_, err = w.Write(data)
		return err
	}

	xzw, err := xz.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := xzw.Write(data); err != nil {
		xzw.Close()
		return err
	}
	return xzw.Close()
}

// Read decodes records written by Write.
func Read(r io.Reader, format Format, compressed bool) ([]Record, error) {
	if compressed {
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		r = xzr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, format)
}

// WriteFile writes records to path. Files with the CompressedSuffix are xz compressed.
func WriteFile(path string, records []Record, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, records, format, strings.HasSuffix(path, CompressedSuffix)); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// ReadFile reads records written by WriteFile.
func ReadFile(path string, format Format) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	records, err := Read(file, format, strings.HasSuffix(path, CompressedSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}
