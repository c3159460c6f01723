// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package testutils

import (
	"go.uber.org/goleak"
)

// LeakTester verifies no goroutines leaked out of a test, ignoring the
// long-lived runtime helpers.
func LeakTester(t goleak.TestingT, extraOpts ...goleak.Option) {
	extraOpts = append(extraOpts,
		goleak.IgnoreTopFunction("runtime/pprof.readProfile"))
	goleak.VerifyNone(t, extraOpts...)
}
