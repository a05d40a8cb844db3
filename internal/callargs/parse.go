// Package callargs converts between user-entered argument text and call values.
package callargs

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var (
	errNotArray     = errors.New("not a JSON array")
	errTrailingData = errors.New("unexpected data after JSON value")
)

type absent struct{}

func (absent) String() string {
	return "<absent>"
}

func (absent) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Absent is returned for blank input. Callers drop it before building the argument list.
var Absent any = absent{}

func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

// Compact returns the arguments without absent ones.
func Compact(args []any) []any {
	res := make([]any, 0, len(args))
	for _, a := range args {
		if !IsAbsent(a) {
			res = append(res, a)
		}
	}
	return res
}

// Parse reads user-entered text as a value of the given Solidity type:
//   - nested arrays and tuple arrays are JSON;
//   - a tuple is a JSON array of its components;
//   - arrays of simple types are comma-separated lists, optionally in brackets;
//   - bool is true for "true" (any case) and "1";
//   - everything else is passed on as trimmed text.
//
// Numbers, addresses and bytes are not validated here.
func Parse(value, solidityType string) (any, error) {
	return parse(value, ParseType(solidityType))
}

func parse(value string, t TypeExpr) (any, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return Absent, nil
	}

	switch t.Kind {
	case KindComplex:
		v, err := decodeJson(text)
		if err != nil {
			return nil, &FormatError{Type: t.Type, Expected: "JSON nested array or tuple array", Err: err}
		}
		return v, nil

	case KindTuple:
		v, err := decodeJson(text)
		if err == nil {
			if _, ok := v.([]any); !ok {
				err = errNotArray
			}
		}
		if err != nil {
			return nil, &FormatError{Type: t.Type, Expected: "JSON array of tuple components", Err: err}
		}
		return v, nil

	case KindDynamicArray, KindFixedArray:
		elem := ParseType(t.Elem)
		res := make([]any, 0)
		for _, item := range splitList(text) {
			v, err := parse(item, elem)
			if err != nil {
				return nil, err
			}
			if !IsAbsent(v) {
				res = append(res, v)
			}
		}
		if t.Kind == KindFixedArray && len(res) != t.Len {
			return nil, &CountError{Type: t.Type, Want: t.Len, Got: len(res)}
		}
		return res, nil
	}

	if t.Type == "bool" {
		return strings.EqualFold(text, "true") || text == "1", nil
	}
	return text, nil
}

func decodeJson(text string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}
	return v, nil
}

func splitList(text string) []string {
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		text = text[1 : len(text)-1]
	}
	return strings.Split(text, ",")
}
