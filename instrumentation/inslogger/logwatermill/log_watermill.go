// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package logwatermill

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

var _ watermill.LoggerAdapter = &WatermillLogAdapter{}

// WatermillLogAdapter surfaces watermill's internal logging through the
// node's zerolog logger.
type WatermillLogAdapter struct {
	log zerolog.Logger
}

func NewWatermillLogAdapter(log zerolog.Logger) *WatermillLogAdapter {
	return &WatermillLogAdapter{
		log: log.With().Str("service", "watermill").Logger(),
	}
}

func (w *WatermillLogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := w.log.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &WatermillLogAdapter{log: ctx.Logger()}
}

func (w *WatermillLogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	w.event(w.log.Error().Err(err), fields, msg)
}

func (w *WatermillLogAdapter) Info(msg string, fields watermill.LogFields) {
	w.event(w.log.Info(), fields, msg)
}

func (w *WatermillLogAdapter) Debug(msg string, fields watermill.LogFields) {
	w.event(w.log.Debug(), fields, msg)
}

func (w *WatermillLogAdapter) Trace(msg string, fields watermill.LogFields) {
	w.event(w.log.Debug(), fields, msg)
}

func (w *WatermillLogAdapter) event(e *zerolog.Event, fields watermill.LogFields, msg string) {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}
