// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package whitelist is the sole security boundary of the flow-reference
// mechanism: it decides which logic class identifiers may be referenced and
// invoked by name. The check is by identifier string, not by type, since the
// point of the mechanism is that the caller need not hold the real class.
package whitelist

import "github.com/lucidledger/flow-core/flow"

// Guard holds the permitted identifier set of one trust domain. The set is
// fixed at construction; concurrent reads need no locking. An empty set
// permits nothing.
//
// A Guard must be consulted both when a reference is created and again when
// it is resolved: the two checks may run in different trust domains with
// different configured sets, and the sender's verdict is never trusted.
type Guard struct {
	allowed map[string]struct{}
}

func NewGuard(classes []string) Guard {
	allowed := make(map[string]struct{}, len(classes))
	for _, class := range classes {
		allowed[class] = struct{}{}
	}
	return Guard{allowed: allowed}
}

func (g Guard) IsAllowed(class string) bool {
	_, ok := g.allowed[class]
	return ok
}

// Validate fails with flow.NotWhitelistedError when the class is not
// permitted. No side effects on success.
func (g Guard) Validate(class string) error {
	if !g.IsAllowed(class) {
		return flow.NotWhitelistedError{Class: class}
	}
	return nil
}

func (g Guard) Size() int {
	return len(g.allowed)
}
