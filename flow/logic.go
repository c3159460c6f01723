// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package flow holds the portable value model for remotely-invocable flow
// logic: the runnable unit, the serializable reference that names it, and the
// error kinds of reference construction and resolution.
package flow

import "context"

// Logic is a live, runnable unit of business logic produced by resolving a
// LogicRef. Suspension, checkpointing and scheduling of a running flow belong
// to the execution engine, not to this package.
type Logic interface {
	Call(ctx context.Context) (interface{}, error)
}
