// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package builtin ships the flow logic classes built into the node, together
// with their ahead-of-time descriptors.
package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyMessage is raised by Echo constructors for a blank message. It must
// reach the caller of Resolve unwrapped.
var ErrEmptyMessage = errors.New("echo flow requires a non-empty message")

// EchoFlow repeats a message back, optionally addressed to a target party.
type EchoFlow struct {
	Message string
	Target  string
	Count   int
}

func (f *EchoFlow) Call(ctx context.Context) (interface{}, error) {
	line := f.Message
	if f.Target != "" {
		line = f.Target + ": " + f.Message
	}
	if f.Count <= 1 {
		return line, nil
	}
	parts := make([]string, f.Count)
	for i := range parts {
		parts[i] = line
	}
	return strings.Join(parts, "\n"), nil
}

// PingFlow answers liveness probes. It takes no arguments.
type PingFlow struct{}

func (f *PingFlow) Call(ctx context.Context) (interface{}, error) {
	return "pong", nil
}

// TransferNotifyFlow reports a transfer to interested parties.
type TransferNotifyFlow struct {
	Amount uint64
	// Memo is optional free text; nil means no memo.
	Memo  *string
	Tags  []string
	Limit int
}

func (f *TransferNotifyFlow) Call(ctx context.Context) (interface{}, error) {
	summary := fmt.Sprintf("transfer of %d", f.Amount)
	if f.Memo != nil {
		summary += " (" + *f.Memo + ")"
	}
	if len(f.Tags) > 0 {
		summary += " [" + strings.Join(f.Tags, ",") + "]"
	}
	return summary, nil
}
