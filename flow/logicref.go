// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package flow

import (
	"strings"

	"github.com/lucidledger/flow-core/reference"
)

// LogicRef is a portable descriptor of a deferred logic invocation: a class
// identifier, the code digests required to resolve it, and the named
// constructor arguments. It is a value: once produced by the factory it is
// never mutated, travels by copy, and carries no identity beyond its fields.
//
// A LogicRef is only ever produced after its class passed the whitelist guard
// of the producing domain. The check is NOT transitive: the consuming domain
// re-validates against its own guard on resolution.
type LogicRef struct {
	Class     string           `json:"class"`
	Context   []reference.Code `json:"context,omitempty"`
	Arguments Arguments        `json:"arguments"`
}

func (r LogicRef) IsZero() bool {
	return r.Class == "" && r.Context == nil && r.Arguments == nil
}

// Copy deep-copies the mutable parts so the result can cross goroutines or
// be handed out without aliasing.
func (r LogicRef) Copy() LogicRef {
	rv := LogicRef{Class: r.Class, Arguments: r.Arguments.Copy()}
	if r.Context != nil {
		rv.Context = make([]reference.Code, len(r.Context))
		copy(rv.Context, r.Context)
	}
	return rv
}

func (r LogicRef) Equal(other LogicRef) bool {
	if r.Class != other.Class || len(r.Context) != len(other.Context) {
		return false
	}
	for i := range r.Context {
		if !r.Context[i].Equal(other.Context[i]) {
			return false
		}
	}
	return r.Arguments.Equal(other.Arguments)
}

// HasCode reports whether the reference's code context admits the given
// digest. A reference without context admits any digest.
func (r LogicRef) HasCode(code reference.Code) bool {
	if len(r.Context) == 0 {
		return true
	}
	for _, c := range r.Context {
		if c.Equal(code) {
			return true
		}
	}
	return false
}

func (r LogicRef) String() string {
	b := strings.Builder{}
	b.WriteString(r.Class)
	for _, c := range r.Context {
		b.WriteByte('@')
		b.WriteString(c.String())
	}
	return b.String()
}
