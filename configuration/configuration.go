// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package configuration holds the node configuration: logging, the permitted
// logic class whitelist, and dispatcher topics.
package configuration

import (
	"github.com/insolar/insconfig"
	yaml "gopkg.in/yaml.v2"
)

// EnvPrefix is the environment prefix for configuration overrides,
// e.g. FLOWNODE_LOG_LEVEL.
const EnvPrefix = "flownode"

// Log holds configuration for logging.
type Log struct {
	// Level is the default logging level: debug, info, warn, error.
	Level string
}

// Whitelist holds the permitted logic class identifiers of this trust
// domain. An empty list permits nothing. The set is fixed for the lifetime
// of the process; changing it requires a restart.
type Whitelist struct {
	Classes []string
}

// Dispatcher holds configuration for the logic reference dispatcher.
type Dispatcher struct {
	// IncomingTopic is the topic carrying serialized logic references.
	IncomingTopic string
	// ResultTopic is the topic carrying execution outcomes.
	ResultTopic string
}

// Configuration is the root of the node configuration.
type Configuration struct {
	Log        Log
	Whitelist  Whitelist
	Dispatcher Dispatcher
}

// NewConfiguration creates the default configuration.
func NewConfiguration() Configuration {
	return Configuration{
		Log: Log{
			Level: "info",
		},
		Whitelist: Whitelist{
			Classes: []string{},
		},
		Dispatcher: Dispatcher{
			IncomingTopic: "flow.logicref.incoming",
			ResultTopic:   "flow.logicref.results",
		},
	}
}

// Holder loads a Configuration from a file with environment overrides.
type Holder struct {
	Configuration *Configuration
	path          string
}

func NewHolder(path string) *Holder {
	return &Holder{Configuration: &Configuration{}, path: path}
}

type stringPathGetter struct {
	Path string
}

func (g *stringPathGetter) GetConfigPath() string {
	return g.Path
}

// Load reads the configuration file, applying FLOWNODE_* env overrides.
func (h *Holder) Load() error {
	params := insconfig.Params{
		EnvPrefix:        EnvPrefix,
		ConfigPathGetter: &stringPathGetter{Path: h.path},
	}
	configurator := insconfig.New(params)
	return configurator.Load(h.Configuration)
}

// ToString renders any configuration struct as yaml for startup logging.
func ToString(in interface{}) string {
	d, err := yaml.Marshal(in)
	if err != nil {
		return "failed to marshal config data"
	}
	return string(d)
}
