// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package descriptor

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucidledger/flow-core/flow"
	"github.com/lucidledger/flow-core/reference"
)

func nopFactory(args flow.Arguments) (flow.Logic, error) { return nil, nil }

func validDescriptor() Logic {
	return Logic{
		Class: "test.Valid",
		Code:  reference.CodeOf([]byte("test.Valid")),
		Constructors: []Constructor{{
			Parameters: []Parameter{{Name: "x", Type: reflect.TypeOf("")}},
			Factory:    nopFactory,
		}},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	d := validDescriptor()
	require.NoError(t, registry.RegisterLogic(d))

	got, err := registry.LogicByClass("test.Valid")
	require.NoError(t, err)
	assert.Equal(t, d.Class, got.Class)
	assert.True(t, d.Code.Equal(got.Code))
	require.Len(t, got.Constructors, 1)
}

func TestRegistry_DuplicateClass(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterLogic(validDescriptor()))

	err := registry.RegisterLogic(validDescriptor())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_UnknownClass(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.LogicByClass("test.Missing")
	notFound := flow.ClassNotFoundError{}
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "test.Missing", notFound.Class)
}

func TestRegistry_ClassesSorted(t *testing.T) {
	registry := NewRegistry()
	for _, class := range []string{"test.C", "test.A", "test.B"} {
		d := validDescriptor()
		d.Class = class
		require.NoError(t, registry.RegisterLogic(d))
	}
	assert.Equal(t, []string{"test.A", "test.B", "test.C"}, registry.Classes())
}

func TestLogicValidate(t *testing.T) {
	require.NoError(t, validDescriptor().Validate())

	table := []struct {
		name   string
		mutate func(d *Logic)
		detail string
	}{
		{
			name:   "empty class",
			mutate: func(d *Logic) { d.Class = "" },
			detail: "without a class identifier",
		},
		{
			name:   "no constructors",
			mutate: func(d *Logic) { d.Constructors = nil },
			detail: "declares no constructors",
		},
		{
			name:   "nil factory",
			mutate: func(d *Logic) { d.Constructors[0].Factory = nil },
			detail: "has no factory",
		},
		{
			name:   "unnamed parameter",
			mutate: func(d *Logic) { d.Constructors[0].Parameters[0].Name = "" },
			detail: "unnamed parameter",
		},
		{
			name:   "untyped parameter",
			mutate: func(d *Logic) { d.Constructors[0].Parameters[0].Type = nil },
			detail: "has no type",
		},
		{
			name: "duplicate parameter",
			mutate: func(d *Logic) {
				c := &d.Constructors[0]
				c.Parameters = append(c.Parameters, Parameter{Name: "x", Type: reflect.TypeOf(0)})
			},
			detail: "duplicates parameter",
		},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			d := validDescriptor()
			test.mutate(&d)
			err := d.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.detail)
		})
	}
}

func TestParameterNillable(t *testing.T) {
	memo := ""
	nillable := []interface{}{&memo, []string{}, map[string]int{}, make(chan int)}
	for _, v := range nillable {
		p := Parameter{Name: "p", Type: reflect.TypeOf(v)}
		assert.True(t, p.Nillable(), "%T", v)
	}

	scalar := []interface{}{"", 0, uint64(0), 0.5, false, struct{}{}}
	for _, v := range scalar {
		p := Parameter{Name: "p", Type: reflect.TypeOf(v)}
		assert.False(t, p.Nillable(), "%T", v)
	}

	assert.False(t, Parameter{Name: "p"}.Nillable())
}
