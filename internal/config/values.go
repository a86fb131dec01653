// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file bridges option values between cty and plain Go. YAML decodes to
// plain Go values and HCL to cty; both end up as Options.

package config

import (
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Options is the open bag of type-specific call (or extension) settings.
// Values are kept as cty values so that every file format shares one typed
// access path; handlers read them through the accessors below.
type Options map[string]cty.Value

// Has reports whether the key was set to a non-null value.
func (o Options) Has(key string) bool {
	v, ok := o[key]
	return ok && !v.IsNull()
}

// Keys returns the option names in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the raw option value.
func (o Options) Value(key string) (cty.Value, bool) {
	if !o.Has(key) {
		return cty.NilVal, false
	}
	return o[key], true
}

// String returns the option as a string, or def when it is absent.
func (o Options) String(key, def string) (string, error) {
	if !o.Has(key) {
		return def, nil
	}
	v, err := convert.Convert(o[key], cty.String)
	if err != nil {
		return "", fmt.Errorf("option %q: %w", key, err)
	}
	return v.AsString(), nil
}

// Bool returns the option as a bool, or def when it is absent.
func (o Options) Bool(key string, def bool) (bool, error) {
	if !o.Has(key) {
		return def, nil
	}
	v, err := convert.Convert(o[key], cty.Bool)
	if err != nil {
		return false, fmt.Errorf("option %q: %w", key, err)
	}
	return v.True(), nil
}

// Int returns the option as an int, or def when it is absent.
func (o Options) Int(key string, def int) (int, error) {
	if !o.Has(key) {
		return def, nil
	}
	v, err := convert.Convert(o[key], cty.Number)
	if err != nil {
		return 0, fmt.Errorf("option %q: %w", key, err)
	}
	var i int
	if err := gocty.FromCtyValue(v, &i); err != nil {
		return 0, fmt.Errorf("option %q: %w", key, err)
	}
	return i, nil
}

// Duration parses the option as a Go duration string ("1m30s"), or returns
// def when it is absent.
func (o Options) Duration(key string, def time.Duration) (time.Duration, error) {
	s, err := o.String(key, "")
	if err != nil {
		return 0, err
	}
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("option %q: %w", key, err)
	}
	return d, nil
}

// Strings returns the option as a list of strings. A single scalar is
// treated as a one-element list.
func (o Options) Strings(key string) ([]string, error) {
	if !o.Has(key) {
		return nil, nil
	}
	out, err := StringsFromValue(o[key])
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", key, err)
	}
	return out, nil
}

// Ints returns the option as a list of ints.
func (o Options) Ints(key string) ([]int, error) {
	if !o.Has(key) {
		return nil, nil
	}
	out, err := IntsFromValue(o[key])
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", key, err)
	}
	return out, nil
}

// StringMap returns the option as a map of strings.
func (o Options) StringMap(key string) (map[string]string, error) {
	if !o.Has(key) {
		return nil, nil
	}
	v, err := convert.Convert(o[key], cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", key, err)
	}
	out := make(map[string]string, v.LengthInt())
	if err := gocty.FromCtyValue(v, &out); err != nil {
		return nil, fmt.Errorf("option %q: %w", key, err)
	}
	return out, nil
}

// Native returns the option converted to plain Go values (string, int64,
// float64, bool, []any, map[string]any), or nil when it is absent.
func (o Options) Native(key string) any {
	if !o.Has(key) {
		return nil
	}
	return ValueToNative(o[key])
}

// StringsFromValue flattens a scalar or a sequence of scalars into strings.
// Numbers and booleans are rendered; nested collections are rejected.
func StringsFromValue(v cty.Value) ([]string, error) {
	if v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	if ty.IsPrimitiveType() {
		s, err := scalarString(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, fmt.Errorf("expected a list of values, got %s", ty.FriendlyName())
	}
	out := make([]string, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		if !el.Type().IsPrimitiveType() {
			return nil, fmt.Errorf("expected scalar list elements, got %s", el.Type().FriendlyName())
		}
		s, err := scalarString(el)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// IntsFromValue converts a number or a sequence of numbers to ints.
func IntsFromValue(v cty.Value) ([]int, error) {
	if v.IsNull() {
		return nil, nil
	}
	if v.Type().IsPrimitiveType() {
		v = cty.TupleVal([]cty.Value{v})
	}
	lv, err := convert.Convert(v, cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("expected a list of numbers: %w", err)
	}
	var out []int
	if err := gocty.FromCtyValue(lv, &out); err != nil {
		return nil, fmt.Errorf("expected a list of integers: %w", err)
	}
	return out, nil
}

func scalarString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("null value is not allowed here")
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", err
	}
	return s.AsString(), nil
}

// ValueFromNative converts plain Go values, as produced by generic
// decoders such as YAML, into a cty value. Maps become objects and slices
// become tuples so that heterogeneous content survives.
func ValueFromNative(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case uint64:
		return cty.NumberUIntVal(t), nil
	case float64:
		return cty.NumberFloatVal(t), nil
	case time.Time:
		return cty.StringVal(t.Format(time.RFC3339)), nil
	case []any:
		if len(t) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, 0, len(t))
		for i, el := range t {
			cv, err := ValueFromNative(el)
			if err != nil {
				return cty.NilVal, fmt.Errorf("[%d]: %w", i, err)
			}
			vals = append(vals, cv)
		}
		return cty.TupleVal(vals), nil
	case map[string]any:
		if len(t) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(t))
		for k, el := range t {
			cv, err := ValueFromNative(el)
			if err != nil {
				return cty.NilVal, fmt.Errorf("%s: %w", k, err)
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, el := range t {
			m[fmt.Sprint(k)] = el
		}
		return ValueFromNative(m)
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
}

// ValueToNative converts a cty value into plain Go values.
func ValueToNative(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i
			}
		}
		f, _ := bf.Float64()
		return f
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			out = append(out, ValueToNative(el))
		}
		return out
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			k, el := it.Element()
			out[k.AsString()] = ValueToNative(el)
		}
		return out
	}
	return nil
}
