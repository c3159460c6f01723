// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package descriptor

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/lucidledger/flow-core/flow"
)

// Registry holds the logic descriptors of one trust domain. It is populated
// during startup and read-only afterwards, so lookups need no locking.
// A sender and a receiver each hold their own registry; nothing about a
// reference carries registration across the boundary.
type Registry interface {
	RegisterLogic(d Logic) error
	LogicByClass(class string) (Logic, error)
	Classes() []string
}

type defaultRegistry struct {
	descriptors map[string]Logic
}

func NewRegistry() Registry {
	return &defaultRegistry{descriptors: make(map[string]Logic)}
}

// RegisterLogic registers a descriptor for its class identifier.
func (r *defaultRegistry) RegisterLogic(d Logic) error {
	if err := d.Validate(); err != nil {
		return errors.Wrap(err, "failed to register logic")
	}
	if _, ok := r.descriptors[d.Class]; ok {
		return errors.Errorf("logic class %q is already registered", d.Class)
	}
	r.descriptors[d.Class] = d
	return nil
}

// LogicByClass returns the descriptor for the class if it was registered
// (RegisterLogic), returns ClassNotFoundError otherwise.
func (r *defaultRegistry) LogicByClass(class string) (Logic, error) {
	if d, ok := r.descriptors[class]; ok {
		return d, nil
	}
	return Logic{}, flow.ClassNotFoundError{Class: class}
}

func (r *defaultRegistry) Classes() []string {
	rv := make([]string, 0, len(r.descriptors))
	for class := range r.descriptors {
		rv = append(rv, class)
	}
	sort.Strings(rv)
	return rv
}
