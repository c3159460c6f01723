// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package builtin

import (
	"reflect"

	"github.com/lucidledger/flow-core/flow"
	"github.com/lucidledger/flow-core/flow/descriptor"
	"github.com/lucidledger/flow-core/reference"
)

// Builtin class identifiers.
const (
	ClassEcho           = "builtin.Echo"
	ClassPing           = "builtin.Ping"
	ClassTransferNotify = "builtin.TransferNotify"
)

var (
	stringType  = reflect.TypeOf("")
	intType     = reflect.TypeOf(int(0))
	uint64Type  = reflect.TypeOf(uint64(0))
	strPtrType  = reflect.TypeOf((*string)(nil))
	strListType = reflect.TypeOf([]string(nil))
)

// InitializeLogicDescriptors declares every builtin flow class. Constructor
// declaration order is part of the contract: named resolution takes the first
// full match.
func InitializeLogicDescriptors() []descriptor.Logic {
	return []descriptor.Logic{
		{
			Class: ClassEcho,
			Code:  reference.CodeOf([]byte(ClassEcho + ":v1")),
			Constructors: []descriptor.Constructor{
				{
					Parameters: []descriptor.Parameter{
						{Name: "message", Type: stringType},
						{Name: "target", Type: stringType},
					},
					Factory: func(args flow.Arguments) (flow.Logic, error) {
						message := args["message"].(string)
						if message == "" {
							return nil, ErrEmptyMessage
						}
						return &EchoFlow{Message: message, Target: args["target"].(string), Count: 1}, nil
					},
				},
				{
					Parameters: []descriptor.Parameter{
						{Name: "message", Type: stringType},
						{Name: "count", Type: intType},
					},
					Factory: func(args flow.Arguments) (flow.Logic, error) {
						message := args["message"].(string)
						if message == "" {
							return nil, ErrEmptyMessage
						}
						return &EchoFlow{Message: message, Count: args["count"].(int)}, nil
					},
				},
			},
		},
		{
			Class: ClassPing,
			Code:  reference.CodeOf([]byte(ClassPing + ":v1")),
			Constructors: []descriptor.Constructor{
				{
					Factory: func(flow.Arguments) (flow.Logic, error) {
						return &PingFlow{}, nil
					},
				},
			},
		},
		{
			Class: ClassTransferNotify,
			Code:  reference.CodeOf([]byte(ClassTransferNotify + ":v1")),
			Constructors: []descriptor.Constructor{
				{
					Parameters: []descriptor.Parameter{
						{Name: "amount", Type: uint64Type},
						{Name: "memo", Type: strPtrType},
						{Name: "tags", Type: strListType},
						{Name: "limit", Type: intType, Optional: true, Default: 10},
					},
					Factory: func(args flow.Arguments) (flow.Logic, error) {
						f := &TransferNotifyFlow{
							Amount: args["amount"].(uint64),
							Limit:  args["limit"].(int),
						}
						if memo, ok := args["memo"].(*string); ok {
							f.Memo = memo
						}
						if tags, ok := args["tags"].([]string); ok {
							f.Tags = tags
						}
						return f, nil
					},
				},
			},
		},
	}
}

// RegisterBuiltins populates a registry with every builtin descriptor.
func RegisterBuiltins(registry descriptor.Registry) error {
	for _, d := range InitializeLogicDescriptors() {
		if err := registry.RegisterLogic(d); err != nil {
			return err
		}
	}
	return nil
}

// DefaultWhitelist lists the builtin classes for whitelist configuration.
func DefaultWhitelist() []string {
	descriptors := InitializeLogicDescriptors()
	classes := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		classes = append(classes, d.Class)
	}
	return classes
}
