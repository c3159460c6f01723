// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lucidledger/flow-core/application/builtin"
	"github.com/lucidledger/flow-core/configuration"
	"github.com/lucidledger/flow-core/flow"
	"github.com/lucidledger/flow-core/flow/descriptor"
	"github.com/lucidledger/flow-core/flow/whitelist"
	"github.com/lucidledger/flow-core/log/global"
	"github.com/lucidledger/flow-core/runner"
	"github.com/lucidledger/flow-core/version"
)

const cmdName = "flowrefctl"

var configPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:     cmdName,
		Short:   "Inspect and validate flow logic references against the local trust domain",
		Version: version.GetFullVersion(),
	}
	rootCmd.AddCommand(
		validateCommand(),
		classesCommand(),
		version.GetCommand(cmdName),
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to node config; builtin defaults when omitted")

	if err := rootCmd.Execute(); err != nil {
		global.Fatal(cmdName, " execution failed: ", err.Error())
	}
}

// loadDomain assembles the local trust domain the same way flownoded does.
func loadDomain() (descriptor.Registry, whitelist.Guard, error) {
	registry := descriptor.NewRegistry()
	if err := builtin.RegisterBuiltins(registry); err != nil {
		return nil, whitelist.Guard{}, err
	}

	classes := builtin.DefaultWhitelist()
	if configPath != "" {
		holder := configuration.NewHolder(configPath)
		if err := holder.Load(); err != nil {
			return nil, whitelist.Guard{}, err
		}
		classes = holder.Configuration.Whitelist.Classes
	}
	return registry, whitelist.NewGuard(classes), nil
}

func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <logicref.json>",
		Short: "Check that a JSON logic reference would resolve in this trust domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ioutil.ReadFile(filepath.Clean(args[0]))
			if err != nil {
				return err
			}
			ref, err := flow.UnmarshalLogicRefJSON(data)
			if err != nil {
				return err
			}

			registry, guard, err := loadDomain()
			if err != nil {
				return err
			}
			factory := runner.NewFactory(registry, guard)

			// CreateFromNamed replays whitelist and constructor checks without
			// invoking anything; the code context is verified separately.
			if _, err := factory.CreateFromNamed(ref.Class, ref.Arguments); err != nil {
				fmt.Printf("REJECTED %s: %s\n", ref.String(), err.Error())
				os.Exit(1)
			}
			if d, err := registry.LogicByClass(ref.Class); err == nil && !ref.HasCode(d.Code) {
				fmt.Printf("REJECTED %s: local code digest is outside the reference's code context\n", ref.String())
				os.Exit(1)
			}

			fmt.Printf("OK %s\n", ref.String())
			return nil
		},
	}
}

func classesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List registered logic classes of this trust domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, guard, err := loadDomain()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Class", "Constructors", "Whitelisted", "Code"})
			for _, class := range registry.Classes() {
				d, err := registry.LogicByClass(class)
				if err != nil {
					return err
				}
				table.Append([]string{
					class,
					strconv.Itoa(len(d.Constructors)),
					strconv.FormatBool(guard.IsAllowed(class)),
					d.Code.String(),
				})
			}
			table.Render()
			return nil
		},
	}
}
