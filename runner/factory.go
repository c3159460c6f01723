// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package runner turns logic class identifiers plus arguments into portable
// references, and references back into live logic instances, with constructor
// resolution constrained by the trust domain's whitelist and registry.
package runner

import (
	"github.com/lucidledger/flow-core/flow"
	"github.com/lucidledger/flow-core/flow/descriptor"
	"github.com/lucidledger/flow-core/flow/whitelist"
	"github.com/lucidledger/flow-core/reference"
)

// Factory is the reference constructor of one trust domain. All operations
// are synchronous and free of shared mutable state; the only side effects are
// those of the target constructor invoked by Resolve.
type Factory struct {
	registry descriptor.Registry
	guard    whitelist.Guard
}

func NewFactory(registry descriptor.Registry, guard whitelist.Guard) *Factory {
	if registry == nil {
		panic("illegal value: factory requires a registry")
	}
	return &Factory{registry: registry, guard: guard}
}

// CreateFromPositional builds a reference from an ordered argument list. It
// is a sender-side operation: the class must be registered locally, which
// stands in for the caller holding the real type. A constructor is a
// candidate iff its arity equals the argument count and every non-nil
// argument is assignable to the parameter at its position; nil arguments are
// not type-checked here (deferred to the named stage).
//
// Exactly one candidate must remain. Zero candidates fail with
// flow.NoMatchingConstructorError, several with flow.AmbiguousConstructorError:
// the positional path never guesses between equally-plausible constructors.
func (f *Factory) CreateFromPositional(class string, args ...interface{}) (flow.LogicRef, error) {
	d, err := f.registry.LogicByClass(class)
	if err != nil {
		return flow.LogicRef{}, err
	}

	var matched *descriptor.Constructor
	matches := 0
	for i := range d.Constructors {
		c := &d.Constructors[i]
		if !positionalCandidate(c, args) {
			continue
		}
		matched = c
		matches++
	}

	switch {
	case matches == 0:
		return flow.LogicRef{}, flow.NoMatchingConstructorError{
			Class: class, Detail: "positional arity or argument types mismatch",
		}
	case matches > 1:
		return flow.LogicRef{}, flow.AmbiguousConstructorError{Class: class, Matches: matches}
	}

	named := make(flow.Arguments, len(args))
	for i, p := range matched.Parameters {
		named[p.Name] = args[i]
	}
	return f.CreateFromNamed(class, named)
}

// CreateFromNamed validates the class against the whitelist, verifies that
// some declared constructor is fully satisfiable by the named arguments, and
// produces an immutable reference. The constructor is NOT invoked here.
//
// Named resolution takes the first declared constructor that is fully
// satisfied and never raises an ambiguity error; see Resolve.
func (f *Factory) CreateFromNamed(class string, args flow.Arguments) (flow.LogicRef, error) {
	if err := f.guard.Validate(class); err != nil {
		return flow.LogicRef{}, err
	}
	d, err := f.registry.LogicByClass(class)
	if err != nil {
		return flow.LogicRef{}, err
	}
	if _, ok := matchNamed(d, args); !ok {
		return flow.LogicRef{}, flow.NoMatchingConstructorError{Class: class}
	}

	ref := flow.LogicRef{Class: class, Arguments: args.Copy()}
	if !d.Code.IsZero() {
		ref.Context = []reference.Code{d.Code}
	}
	return ref, nil
}

// Resolve turns a reference back into a live logic instance. The class is
// re-validated against the CURRENT guard even if it was valid at creation
// time: the reference may have crossed a trust boundary and the creating
// domain's verdict is not inherited. Resolution then re-runs the same named
// matching as CreateFromNamed; a mismatch is a legitimate failure mode when
// the class shape changed between versioned deployments.
//
// Errors raised by the target constructor itself propagate unwrapped. They
// are the logic's own failures, not resolution failures.
func (f *Factory) Resolve(ref flow.LogicRef) (flow.Logic, error) {
	if err := f.guard.Validate(ref.Class); err != nil {
		return nil, err
	}
	d, err := f.registry.LogicByClass(ref.Class)
	if err != nil {
		return nil, err
	}
	if !ref.HasCode(d.Code) {
		return nil, flow.ClassNotFoundError{
			Class:  ref.Class,
			Detail: "local code digest is outside the reference's code context",
		}
	}

	c, ok := matchNamed(d, ref.Arguments)
	if !ok {
		return nil, flow.NoMatchingConstructorError{Class: ref.Class}
	}

	return c.Factory(bindArguments(c, ref.Arguments))
}
