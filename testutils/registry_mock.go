// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package testutils

import (
	"github.com/gojuno/minimock/v3"

	"github.com/lucidledger/flow-core/flow/descriptor"
)

var _ descriptor.Registry = &RegistryMock{}

// RegistryMock is a hand-rolled registry test double. Set the *Func fields
// for the calls a test expects; unexpected calls fail the test.
type RegistryMock struct {
	t minimock.Tester

	RegisterLogicFunc func(d descriptor.Logic) error
	LogicByClassFunc  func(class string) (descriptor.Logic, error)
	ClassesFunc       func() []string
}

func NewRegistryMock(t minimock.Tester) *RegistryMock {
	return &RegistryMock{t: t}
}

func (m *RegistryMock) RegisterLogic(d descriptor.Logic) error {
	if m.RegisterLogicFunc == nil {
		m.t.Fatalf("unexpected call to RegistryMock.RegisterLogic with class %q", d.Class)
		return nil
	}
	return m.RegisterLogicFunc(d)
}

func (m *RegistryMock) LogicByClass(class string) (descriptor.Logic, error) {
	if m.LogicByClassFunc == nil {
		m.t.Fatalf("unexpected call to RegistryMock.LogicByClass with class %q", class)
		return descriptor.Logic{}, nil
	}
	return m.LogicByClassFunc(class)
}

func (m *RegistryMock) Classes() []string {
	if m.ClassesFunc == nil {
		m.t.Fatalf("unexpected call to RegistryMock.Classes")
		return nil
	}
	return m.ClassesFunc()
}
