// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

// Package global holds the process-wide fallback logger used by daemon
// entrypoints before and beside context-scoped loggers.
package global

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetLevel adjusts the global logger level.
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(lvl)
	return nil
}

func Debug(args ...interface{}) { l := Logger(); l.Debug().Msg(fmt.Sprint(args...)) }
func Info(args ...interface{})  { l := Logger(); l.Info().Msg(fmt.Sprint(args...)) }
func Warn(args ...interface{})  { l := Logger(); l.Warn().Msg(fmt.Sprint(args...)) }
func Error(args ...interface{}) { l := Logger(); l.Error().Msg(fmt.Sprint(args...)) }

// Fatal logs and terminates the process.
func Fatal(args ...interface{}) { l := Logger(); l.Fatal().Msg(fmt.Sprint(args...)) }

func Debugf(format string, args ...interface{}) { l := Logger(); l.Debug().Msgf(format, args...) }
func Infof(format string, args ...interface{})  { l := Logger(); l.Info().Msgf(format, args...) }
func Warnf(format string, args ...interface{})  { l := Logger(); l.Warn().Msgf(format, args...) }
func Errorf(format string, args ...interface{}) { l := Logger(); l.Error().Msgf(format, args...) }
func Fatalf(format string, args ...interface{}) { l := Logger(); l.Fatal().Msgf(format, args...) }
