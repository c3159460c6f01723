// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package version provides the build identity stamped in at link time.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Version is release semver or branch name. Overridden by ldflags.
	Version = "unset"
	// BuildDate is the compilation date.
	BuildDate = "unset"
	// GitHash is the git commit the binary was built from.
	GitHash = "unset"
)

func GetFullVersion() string {
	return fmt.Sprintf("%s %s (git=%s, go=%s)", Version, BuildDate, GitHash, runtime.Version())
}

// GetCommand returns a cobra version subcommand for the given binary name.
func GetCommand(binName string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Print %s version", binName),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version: %s\n", binName, GetFullVersion())
		},
	}
}
