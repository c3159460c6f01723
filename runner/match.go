// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package runner

import (
	"math"
	"reflect"

	"github.com/lucidledger/flow-core/flow"
	"github.com/lucidledger/flow-core/flow/descriptor"
)

// positionalCandidate reports whether the constructor can accept the ordered
// argument list: equal arity, every non-nil value assignable at its position.
func positionalCandidate(c *descriptor.Constructor, args []interface{}) bool {
	if len(c.Parameters) != len(args) {
		return false
	}
	for i, p := range c.Parameters {
		if args[i] == nil {
			continue
		}
		if !assignable(p.Type, args[i]) {
			return false
		}
	}
	return true
}

// matchNamed returns the first declared constructor fully satisfied by the
// named arguments: every parameter is either supplied with an acceptable
// value or optional-and-absent, and every supplied key is consumed by some
// parameter. Extra keys disqualify a constructor: the match fails closed
// rather than silently dropping arguments.
func matchNamed(d descriptor.Logic, args flow.Arguments) (descriptor.Constructor, bool) {
next:
	for _, c := range d.Constructors {
		consumed := 0
		for _, p := range c.Parameters {
			v, present := args[p.Name]
			switch {
			case !present:
				if !p.Optional {
					continue next
				}
			case v == nil:
				consumed++
				if !p.Nillable() {
					continue next
				}
			default:
				consumed++
				if !assignable(p.Type, v) {
					continue next
				}
			}
		}
		if consumed != len(args) {
			continue next
		}
		return c, true
	}
	return descriptor.Constructor{}, false
}

// bindArguments completes the argument set for invocation: absent optional
// parameters get their defaults, supplied values are normalized to the
// declared parameter types. Must only be called with a constructor returned
// by matchNamed for the same arguments.
func bindArguments(c descriptor.Constructor, args flow.Arguments) flow.Arguments {
	bound := make(flow.Arguments, len(c.Parameters))
	for _, p := range c.Parameters {
		v, present := args[p.Name]
		if !present {
			bound[p.Name] = p.Default
			continue
		}
		if v != nil {
			if converted, ok := convertValue(v, p.Type); ok {
				v = converted
			}
		}
		bound[p.Name] = v
	}
	return bound
}

// assignable reports whether a non-nil value may be bound to a parameter of
// the given type.
func assignable(pt reflect.Type, v interface{}) bool {
	_, ok := convertValue(v, pt)
	return ok
}

// convertValue normalizes a supplied value to the declared parameter type.
// Directly assignable values pass through. Beyond that it accepts the shapes
// wire decoders produce, which lose the declared Go types: integers widen to
// int64/uint64/float64, pointers flatten to their element value, and typed
// slices come back as []interface{}. Numerics convert when exactly
// representable, element values box into pointer parameters, and slices
// convert element-wise.
func convertValue(v interface{}, pt reflect.Type) (interface{}, bool) {
	if reflect.TypeOf(v).AssignableTo(pt) {
		return v, true
	}
	if converted, ok := convertNumeric(v, pt); ok {
		return converted, true
	}

	switch pt.Kind() {
	case reflect.Ptr:
		elem, ok := convertValue(v, pt.Elem())
		if !ok {
			return nil, false
		}
		out := reflect.New(pt.Elem())
		out.Elem().Set(reflect.ValueOf(elem))
		return out.Interface(), true
	case reflect.Slice:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return nil, false
		}
		out := reflect.MakeSlice(pt, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev := rv.Index(i).Interface()
			if ev == nil {
				if !nillableKind(pt.Elem().Kind()) {
					return nil, false
				}
				continue
			}
			converted, ok := convertValue(ev, pt.Elem())
			if !ok {
				return nil, false
			}
			out.Index(i).Set(reflect.ValueOf(converted))
		}
		return out.Interface(), true
	default:
		return nil, false
	}
}

func nillableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

func convertNumeric(v interface{}, pt reflect.Type) (interface{}, bool) {
	rv := reflect.ValueOf(v)
	if !isNumericKind(rv.Kind()) || !isNumericKind(pt.Kind()) {
		return nil, false
	}

	out := reflect.New(pt).Elem()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setFromInt(out, rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return setFromUint(out, rv.Uint())
	default:
		return setFromFloat(out, rv.Float())
	}
}

func setFromInt(out reflect.Value, i int64) (interface{}, bool) {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if out.OverflowInt(i) {
			return nil, false
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i < 0 || out.OverflowUint(uint64(i)) {
			return nil, false
		}
		out.SetUint(uint64(i))
	default:
		f := float64(i)
		if int64(f) != i || out.OverflowFloat(f) {
			return nil, false
		}
		out.SetFloat(f)
	}
	return out.Interface(), true
}

func setFromUint(out reflect.Value, u uint64) (interface{}, bool) {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if u > math.MaxInt64 {
			return nil, false
		}
		return setFromInt(out, int64(u))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if out.OverflowUint(u) {
			return nil, false
		}
		out.SetUint(u)
	default:
		f := float64(u)
		if uint64(f) != u || out.OverflowFloat(f) {
			return nil, false
		}
		out.SetFloat(f)
	}
	return out.Interface(), true
}

func setFromFloat(out reflect.Value, f float64) (interface{}, bool) {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, false
		}
		return setFromInt(out, int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return nil, false
		}
		return setFromUint(out, uint64(f))
	default:
		if out.OverflowFloat(f) {
			return nil, false
		}
		out.SetFloat(f)
	}
	return out.Interface(), true
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
