// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	component "github.com/insolar/component-manager"
	"github.com/insolar/insconfig"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/lucidledger/flow-core/application/builtin"
	"github.com/lucidledger/flow-core/configuration"
	"github.com/lucidledger/flow-core/dispatch"
	"github.com/lucidledger/flow-core/flow/descriptor"
	"github.com/lucidledger/flow-core/flow/whitelist"
	"github.com/lucidledger/flow-core/instrumentation/inslogger"
	"github.com/lucidledger/flow-core/log/global"
	"github.com/lucidledger/flow-core/runner"
	"github.com/lucidledger/flow-core/version"
)

func main() {
	jww.SetStdoutThreshold(jww.LevelDebug)

	cfg := configuration.NewConfiguration()
	paramsCfg := insconfig.Params{
		EnvPrefix:        configuration.EnvPrefix,
		ConfigPathGetter: &insconfig.DefaultPathGetter{},
	}
	insConfigurator := insconfig.New(paramsCfg)
	if err := insConfigurator.Load(&cfg); err != nil {
		global.Warn("failed to load configuration from file: ", err.Error())
	}

	if err := global.SetLevel(cfg.Log.Level); err != nil {
		global.Fatal("invalid log level: ", err.Error())
	}

	fmt.Println("Version: ", version.GetFullVersion())
	fmt.Println("Starts with configuration:\n", configuration.ToString(cfg))

	logger, err := inslogger.NewLogger(os.Stderr, cfg.Log.Level)
	if err != nil {
		global.Fatal("failed to initialize logger: ", err.Error())
	}
	ctx := inslogger.SetLogger(context.Background(), logger)

	cm, err := initComponents(ctx, cfg)
	if err != nil {
		global.Fatal("failed to init components: ", err.Error())
	}

	if err := cm.Start(ctx); err != nil {
		global.Fatal("failed to start components: ", err.Error())
	}

	defer func() {
		if err := cm.Stop(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to stop components")
		}
	}()

	var gracefulStop = make(chan os.Signal, 1)
	signal.Notify(gracefulStop, syscall.SIGTERM)
	signal.Notify(gracefulStop, syscall.SIGINT)

	sig := <-gracefulStop
	global.Infof("%v signal received", sig)
}

func initComponents(ctx context.Context, cfg configuration.Configuration) (*component.Manager, error) {
	registry := descriptor.NewRegistry()
	if err := builtin.RegisterBuiltins(registry); err != nil {
		return nil, err
	}

	guard := whitelist.NewGuard(cfg.Whitelist.Classes)
	factory := runner.NewFactory(registry, guard)
	service := dispatch.NewService(ctx, cfg.Dispatcher, factory)

	cm := component.NewManager(nil)
	cm.Register(service)

	if err := cm.Init(ctx); err != nil {
		return nil, err
	}
	return cm, nil
}
