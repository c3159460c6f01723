package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/lucidledger/flow-core/application/builtin"
	"github.com/lucidledger/flow-core/configuration"
	"github.com/lucidledger/flow-core/dispatch"
	"github.com/lucidledger/flow-core/flow"
	"github.com/lucidledger/flow-core/flow/descriptor"
	"github.com/lucidledger/flow-core/flow/whitelist"
	"github.com/lucidledger/flow-core/log/global"
	"github.com/lucidledger/flow-core/runner"
)

var (
	requests int
	message  string
	target   string
)

func parseInputParams() {
	pflag.IntVarP(&requests, "requests", "n", 10, "number of echo references to dispatch")
	pflag.StringVarP(&message, "message", "m", "hello", "message to echo")
	pflag.StringVarP(&target, "target", "t", "", "target party for the echo")
	pflag.Parse()
}

func check(msg string, err error) {
	if err != nil {
		fmt.Println(msg, err)
		os.Exit(1)
	}
}

func main() {
	parseInputParams()

	check("invalid log level: ", global.SetLevel("error"))

	registry := descriptor.NewRegistry()
	check("can't register builtin flows: ", builtin.RegisterBuiltins(registry))
	factory := runner.NewFactory(registry, whitelist.NewGuard(builtin.DefaultWhitelist()))

	ctx := context.Background()
	service := dispatch.NewService(ctx, configuration.NewConfiguration().Dispatcher, factory)
	check("can't start dispatch service: ", service.Start(ctx))
	defer service.Stop(ctx)

	results, err := service.SubscribeResults(ctx)
	check("can't subscribe to results: ", err)

	var ref flow.LogicRef
	if target != "" {
		ref, err = factory.CreateFromPositional(builtin.ClassEcho, message, target)
	} else {
		ref, err = factory.CreateFromNamed(builtin.ClassEcho, flow.Arguments{"message": message, "count": 1})
	}
	check("can't create logic reference: ", err)

	started := time.Now()
	go func() {
		for i := 0; i < requests; i++ {
			if err := service.Send(ctx, ref); err != nil {
				fmt.Println("send failed: ", err)
			}
		}
	}()

	received, failures := 0, 0
	deadline := time.After(30 * time.Second)
loop:
	for received < requests {
		select {
		case msg, ok := <-results:
			if !ok {
				break loop
			}
			msg.Ack()
			received++

			result := dispatch.Result{}
			if err := flow.Deserialize(msg.Payload, &result); err != nil || result.Error != "" {
				failures++
			}
		case <-deadline:
			fmt.Printf("timed out after receiving %d of %d results\n", received, requests)
			break loop
		}
	}

	fmt.Printf("dispatched %d references in %s, %d failed\n", received, time.Since(started), failures)
}
