package callargs

import (
	"regexp"
	"strconv"
	"strings"
)

type Kind int

const (
	// KindScalar is a value type without array or tuple structure.
	KindScalar Kind = iota
	KindFixedArray
	KindDynamicArray
	// KindTuple is a single, non-array tuple.
	KindTuple
	// KindComplex covers nested arrays and tuple arrays. Values are entered as JSON.
	KindComplex
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindFixedArray:
		return "fixed array"
	case KindDynamicArray:
		return "dynamic array"
	case KindTuple:
		return "tuple"
	case KindComplex:
		return "complex"
	}
	return "unknown"
}

// TypeExpr is the shape of a Solidity type string.
type TypeExpr struct {
	Kind Kind
	// Type is the original type string.
	Type string
	// Elem is the element type of arrays.
	Elem string
	// Len is the length of fixed arrays.
	Len int
}

var fixedArrayRe = regexp.MustCompile(`^(.+)\[(\d+)\]$`)

func ParseType(solidityType string) TypeExpr {
	t := strings.TrimSpace(solidityType)
	expr := TypeExpr{Kind: KindScalar, Type: t}

	switch {
	case strings.Count(t, "[") > 1 || strings.HasPrefix(t, "tuple["):
		expr.Kind = KindComplex
	case strings.HasPrefix(t, "tuple"):
		expr.Kind = KindTuple
	case strings.HasSuffix(t, "[]"):
		expr.Kind = KindDynamicArray
		expr.Elem = strings.TrimSuffix(t, "[]")
	default:
		if m := fixedArrayRe.FindStringSubmatch(t); m != nil {
			if n, err := strconv.Atoi(m[2]); err == nil {
				expr.Kind = KindFixedArray
				expr.Elem = m[1]
				expr.Len = n
			}
		}
	}
	return expr
}

func (t TypeExpr) IsArray() bool {
	return t.Kind == KindFixedArray || t.Kind == KindDynamicArray
}

func (t TypeExpr) RequiresJson() bool {
	return t.Kind == KindTuple || t.Kind == KindComplex
}
