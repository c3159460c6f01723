// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package flow

import "reflect"

// Arguments maps a constructor parameter name to its value. A nil value is a
// legal argument. Insertion order is irrelevant; keys must match the declared
// parameter names of the target constructor exactly.
type Arguments map[string]interface{}

func (a Arguments) Copy() Arguments {
	if a == nil {
		return nil
	}
	rv := make(Arguments, len(a))
	for k, v := range a {
		rv[k] = v
	}
	return rv
}

func (a Arguments) Equal(other Arguments) bool {
	if len(a) != len(other) {
		return false
	}
	for k, v := range a {
		ov, ok := other[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}
