package callargs

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Format converts a call result into a display value built from strings, bools, slices and maps.
// Wide integers become decimal text, byte arrays become hex and tuple structs become objects
// keyed by field name.
func Format(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *big.Int:
		if x == nil {
			return nil
		}
		return x.String()
	case big.Int:
		return x.String()
	case *uint256.Int:
		if x == nil {
			return nil
		}
		return x.Dec()
	case uint256.Int:
		return x.Dec()
	case json.Number:
		return x.String()
	case common.Address:
		return x
	case []byte:
		return hexutil.Encode(x)
	case map[string]any:
		return formatNamed(x)
	case string, bool:
		return x
	}
	return formatValue(reflect.ValueOf(v))
}

func formatValue(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Format(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = Format(rv.Index(i).Interface())
		}
		return res

	case reflect.Struct:
		res := make(map[string]any, rv.NumField())
		for i := range rv.NumField() {
			f := rv.Type().Field(i)
			if !f.IsExported() {
				continue
			}
			res[fieldName(f)] = Format(rv.Field(i).Interface())
		}
		return res

	case reflect.Map:
		res := make(map[string]any, rv.Len())
		for it := rv.MapRange(); it.Next(); {
			res[fmt.Sprint(it.Key().Interface())] = Format(it.Value().Interface())
		}
		return res
	}
	return rv.Interface()
}

func fieldName(f reflect.StructField) string {
	if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
		return tag
	}
	return f.Name
}

// formatNamed keeps only the named keys of an object that has both named and positional ones.
// Objects with positional keys only become arrays.
func formatNamed(m map[string]any) any {
	named := make(map[string]any, len(m))
	positional := make(map[int]any)
	for k, v := range m {
		if i, err := strconv.Atoi(k); err == nil && i >= 0 {
			positional[i] = v
			continue
		}
		named[k] = Format(v)
	}
	if len(named) > 0 || len(positional) == 0 {
		return named
	}

	keys := make([]int, 0, len(positional))
	for i := range positional {
		keys = append(keys, i)
	}
	slices.Sort(keys)

	res := make([]any, 0, len(keys))
	for _, i := range keys {
		res = append(res, Format(positional[i]))
	}
	return res
}

// FormatLiteral renders a value as text that Parse reads back as the same value of the type.
func FormatLiteral(v any, solidityType string) (string, error) {
	return formatLiteral(v, ParseType(solidityType))
}

func formatLiteral(v any, t TypeExpr) (string, error) {
	if IsAbsent(v) || v == nil {
		return "", nil
	}

	switch t.Kind {
	case KindTuple, KindComplex:
		data, err := json.Marshal(positional(v))
		if err != nil {
			return "", err
		}
		return string(data), nil

	case KindDynamicArray, KindFixedArray:
		items, ok := Format(v).([]any)
		if !ok {
			return "", fmt.Errorf("%w: %T is not a list", ErrArgumentFormat, v)
		}
		elem := ParseType(t.Elem)
		parts := make([]string, len(items))
		for i, item := range items {
			s, err := formatLiteral(item, elem)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ","), nil
	}

	switch x := Format(v).(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case common.Address:
		return x.Hex(), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return fmt.Sprint(x), nil
	}
}

// positional is Format with tuple structs kept as arrays, the form tuple arguments are entered in.
func positional(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		if _, ok := rv.Interface().(*big.Int); ok {
			break
		}
		if _, ok := rv.Interface().(*uint256.Int); ok {
			break
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		if _, ok := rv.Interface().(big.Int); ok {
			break
		}
		if _, ok := rv.Interface().(uint256.Int); ok {
			break
		}
		res := make([]any, 0, rv.NumField())
		for i := range rv.NumField() {
			if rv.Type().Field(i).IsExported() {
				res = append(res, positional(rv.Field(i).Interface()))
			}
		}
		return res
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = positional(rv.Index(i).Interface())
		}
		return res
	}
	return Format(rv.Interface())
}
