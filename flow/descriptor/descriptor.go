// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package descriptor declares flow logic classes ahead of time: each class
// registers its constructor signatures and factory functions once at startup,
// so references can be checked and resolved without runtime reflection over
// live types.
package descriptor

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/lucidledger/flow-core/flow"
	"github.com/lucidledger/flow-core/reference"
)

// Parameter is one declared constructor parameter.
type Parameter struct {
	Name string
	Type reflect.Type
	// Optional parameters may be absent from named arguments; Default is
	// bound in their place on invocation.
	Optional bool
	Default  interface{}
}

// Nillable reports whether a nil argument is a legal value for the parameter.
func (p Parameter) Nillable() bool {
	if p.Type == nil {
		return false
	}
	switch p.Type.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

// FactoryFunc builds a live logic instance from fully-bound arguments. The
// arguments passed in are complete: defaults are already filled in and
// numeric values already converted to the declared parameter kinds.
type FactoryFunc func(args flow.Arguments) (flow.Logic, error)

// Constructor is one declared constructor of a logic class. Declaration order
// is significant: named-argument resolution takes the first constructor that
// is fully satisfied.
type Constructor struct {
	Parameters []Parameter
	Factory    FactoryFunc
}

// Logic describes a registered flow logic class.
type Logic struct {
	// Class is the fully-qualified identifier the whitelist is keyed by.
	Class string
	// Code is the content digest of the artifact carrying the class. It is
	// recorded into produced references and checked back on resolution.
	Code         reference.Code
	Constructors []Constructor
}

// Validate checks the descriptor shape at registration time.
func (d Logic) Validate() error {
	if d.Class == "" {
		return errors.New("logic descriptor without a class identifier")
	}
	if len(d.Constructors) == 0 {
		return errors.Errorf("logic class %q declares no constructors", d.Class)
	}
	for i, c := range d.Constructors {
		if c.Factory == nil {
			return errors.Errorf("logic class %q: constructor %d has no factory", d.Class, i)
		}
		seen := make(map[string]struct{}, len(c.Parameters))
		for _, p := range c.Parameters {
			switch {
			case p.Name == "":
				return errors.Errorf("logic class %q: constructor %d has an unnamed parameter", d.Class, i)
			case p.Type == nil:
				return errors.Errorf("logic class %q: constructor %d parameter %q has no type", d.Class, i, p.Name)
			}
			if _, ok := seen[p.Name]; ok {
				return errors.Errorf("logic class %q: constructor %d duplicates parameter %q", d.Class, i, p.Name)
			}
			seen[p.Name] = struct{}{}
		}
	}
	return nil
}
