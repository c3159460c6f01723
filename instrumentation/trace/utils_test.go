// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID_Empty(t *testing.T) {
	require.Equal(t, "", ID(context.Background()))
}

func TestSetID(t *testing.T) {
	ctx, err := SetID(context.Background(), "trace-1")
	require.NoError(t, err)
	require.Equal(t, "trace-1", ID(ctx))

	// same id is idempotent
	ctx2, err := SetID(ctx, "trace-1")
	require.NoError(t, err)
	require.Equal(t, ctx, ctx2)

	// a different id overrides but reports the conflict
	ctx3, err := SetID(ctx, "trace-2")
	require.Error(t, err)
	require.Equal(t, "trace-2", ID(ctx3))
}

func TestRandID(t *testing.T) {
	id1 := RandID()
	id2 := RandID()
	require.Len(t, id1, 32)
	require.NotEqual(t, id1, id2)
}
