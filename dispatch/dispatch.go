// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package dispatch moves serialized logic references between trust domains
// and resolves them on the receiving side. It carries the reference over an
// in-process watermill pub/sub; real network transport is a collaborator
// outside this core and plugs in at the same topic boundary.
package dispatch

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"

	"github.com/lucidledger/flow-core/configuration"
	"github.com/lucidledger/flow-core/flow"
	"github.com/lucidledger/flow-core/instrumentation/inslogger"
	"github.com/lucidledger/flow-core/instrumentation/inslogger/logwatermill"
	"github.com/lucidledger/flow-core/instrumentation/trace"
	"github.com/lucidledger/flow-core/runner"
)

// TraceIDMetadataKey carries the trace id across the boundary.
const TraceIDMetadataKey = "traceID"

// Result is the outcome of one dispatched reference, published on the result
// topic. A rejection (not whitelisted, unknown class, no constructor) is a
// Result with Error set. It is reported, never retried.
type Result struct {
	TraceID string
	Class   string
	Payload interface{}
	Error   string
}

// Service receives logic references, re-validates them against the receiving
// domain's factory and runs the resolved logic. Implements the
// component-manager Starter/Stopper lifecycle.
type Service struct {
	ctx     context.Context
	cfg     configuration.Dispatcher
	factory *runner.Factory
	logger  *logwatermill.WatermillLogAdapter
	pubsub  *gochannel.GoChannel
	stopFn  func()
}

func NewService(ctx context.Context, cfg configuration.Dispatcher, factory *runner.Factory) *Service {
	if factory == nil {
		panic("illegal value: dispatch service requires a factory")
	}
	wmLogger := logwatermill.NewWatermillLogAdapter(inslogger.FromContext(ctx))
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	return &Service{
		ctx:     ctx,
		cfg:     cfg,
		factory: factory,
		logger:  wmLogger,
		pubsub:  pubsub,
	}
}

// Send publishes a reference to the incoming topic. The reference must have
// been produced by a factory; Send performs no checks of its own.
func (s *Service) Send(ctx context.Context, ref flow.LogicRef) error {
	payload, err := flow.Serialize(ref)
	if err != nil {
		return errors.Wrap(err, "failed to encode logic reference")
	}

	traceID := trace.ID(ctx)
	if traceID == "" {
		traceID = trace.RandID()
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(TraceIDMetadataKey, traceID)
	return errors.Wrap(s.pubsub.Publish(s.cfg.IncomingTopic, msg), "failed to publish logic reference")
}

// SubscribeResults exposes the result topic.
func (s *Service) SubscribeResults(ctx context.Context) (<-chan *message.Message, error) {
	return s.pubsub.Subscribe(ctx, s.cfg.ResultTopic)
}

func (s *Service) Start(ctx context.Context) error {
	if s.stopFn != nil {
		return errors.New("dispatch service is already started")
	}

	router, err := message.NewRouter(message.RouterConfig{}, s.logger)
	if err != nil {
		return errors.Wrap(err, "failed to create message router")
	}

	router.AddHandler(
		"LogicRefHandler",
		s.cfg.IncomingTopic,
		s.pubsub,
		s.cfg.ResultTopic,
		s.pubsub,
		s.handleRef,
	)

	go func() {
		if err := router.Run(s.ctx); err != nil {
			l := inslogger.FromContext(s.ctx)
			l.Error().Err(err).Msg("message router stopped")
		}
	}()
	<-router.Running()

	s.stopFn = func() {
		if err := router.Close(); err != nil {
			l := inslogger.FromContext(s.ctx)
			l.Error().Err(err).Msg("failed to close message router")
		}
	}
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	if s.stopFn != nil {
		s.stopFn()
		s.stopFn = nil
	}
	return s.pubsub.Close()
}

// handleRef resolves and runs one incoming reference. Failures are encoded
// into the published Result and never returned to watermill: this core does
// not retry, and a malformed or rejected reference must not be redelivered.
func (s *Service) handleRef(msg *message.Message) ([]*message.Message, error) {
	traceID := msg.Metadata.Get(TraceIDMetadataKey)
	if traceID == "" {
		traceID = trace.RandID()
	}
	ctx, logger := inslogger.WithTraceField(s.ctx, traceID)

	result := Result{TraceID: traceID}

	ref := flow.LogicRef{}
	if err := flow.Deserialize(msg.Payload, &ref); err != nil {
		logger.Warn().Err(err).Msg("rejected undecodable logic reference")
		result.Error = err.Error()
		return s.resultMessage(result, traceID), nil
	}
	result.Class = ref.Class

	logic, err := s.factory.Resolve(ref)
	if err != nil {
		logger.Warn().Err(err).Str("class", ref.Class).Msg("rejected logic reference")
		result.Error = err.Error()
		return s.resultMessage(result, traceID), nil
	}

	payload, err := logic.Call(ctx)
	switch {
	case err != nil:
		logger.Error().Err(err).Str("class", ref.Class).Msg("logic execution failed")
		result.Error = err.Error()
	default:
		logger.Info().Str("class", ref.Class).Msg("logic executed")
		result.Payload = payload
	}
	return s.resultMessage(result, traceID), nil
}

func (s *Service) resultMessage(result Result, traceID string) []*message.Message {
	out := message.NewMessage(watermill.NewUUID(), flow.MustSerialize(result))
	out.Metadata.Set(TraceIDMetadataKey, traceID)
	return []*message.Message{out}
}
