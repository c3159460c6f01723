// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package flow

import "fmt"

// NotWhitelistedError reports a class identifier that is not in the permitted
// set of the checking trust domain. It is raised both at reference creation
// and at resolution; a reference valid on the sender is not thereby valid on
// the receiver.
type NotWhitelistedError struct {
	Class string
}

func (e NotWhitelistedError) Error() string {
	return fmt.Sprintf("flow logic class %q is not whitelisted", e.Class)
}

// ClassNotFoundError reports an identifier that cannot be resolved to a
// registered logic descriptor in the current domain, including the case where
// the reference's code context does not admit the local code digest.
type ClassNotFoundError struct {
	Class  string
	Detail string
}

func (e ClassNotFoundError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("flow logic class %q is not registered", e.Class)
	}
	return fmt.Sprintf("flow logic class %q is not resolvable: %s", e.Class, e.Detail)
}

// NoMatchingConstructorError reports that no declared constructor of the
// class satisfies the supplied arguments.
type NoMatchingConstructorError struct {
	Class  string
	Detail string
}

func (e NoMatchingConstructorError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("no constructor of %q matches the supplied arguments", e.Class)
	}
	return fmt.Sprintf("no constructor of %q matches the supplied arguments: %s", e.Class, e.Detail)
}

// AmbiguousConstructorError reports that positional arguments satisfy more
// than one declared constructor. Only the positional path raises this kind;
// named resolution takes the first declared match.
type AmbiguousConstructorError struct {
	Class   string
	Matches int
}

func (e AmbiguousConstructorError) Error() string {
	return fmt.Sprintf("positional arguments match %d constructors of %q", e.Matches, e.Class)
}
