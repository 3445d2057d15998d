package hcl

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ctyToNative converts a cty.Value to its most natural Go counterpart.
// Integral numbers come back as int so seeds like topology.b3 = 24 keep
// exact integer arithmetic downstream; fractional numbers become
// float64.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0)
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported cty type for conversion: %s", ty.FriendlyName())
	}
}

// nativeToCty converts a native Go value into its cty.Value equivalent
// for use in formula evaluation contexts.
func nativeToCty(v any) (cty.Value, error) {
	switch n := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case int:
		return cty.NumberIntVal(int64(n)), nil
	case int64:
		return cty.NumberIntVal(n), nil
	case float64:
		return cty.NumberFloatVal(n), nil
	case string:
		return cty.StringVal(n), nil
	case bool:
		return cty.BoolVal(n), nil

	case []any:
		if len(n) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(n))
		for i, elem := range n {
			val, err := nativeToCty(elem)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = val
		}
		return cty.TupleVal(elems), nil

	case map[string]any:
		if len(n) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(n))
		for key, elem := range n {
			val, err := nativeToCty(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in attribute '%s': %w", key, err)
			}
			attrs[key] = val
		}
		return cty.ObjectVal(attrs), nil

	default:
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return cty.NilVal, fmt.Errorf("unable to infer cty type for %T: %w", v, err)
		}
		return gocty.ToCtyValue(v, ty)
	}
}
