// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/gsconvert/internal/convert"
	"github.com/pdiddy/gsconvert/internal/ghostscript"
	"github.com/pdiddy/gsconvert/internal/journal"
	"github.com/pdiddy/gsconvert/internal/logging"
	"github.com/pdiddy/gsconvert/pkg/types"
)

// envKeyReplacer maps nested keys such as engine.library_path to
// GSCONVERT_ENGINE_LIBRARY_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

func init() {
	viper.SetDefault("render.device", string(types.DevicePNG16m))
	viper.SetDefault("engine.encoding", "auto")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// loadConfig reads the merged configuration.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.Render.Device = types.ParseDevice(string(cfg.Render.Device))
	return cfg, nil
}

// environment holds what every converting command needs.
type environment struct {
	cfg     types.Config
	log     zerolog.Logger
	lib     *ghostscript.Library
	journal *journal.Store
	svc     *convert.Service
}

// openEnvironment loads the interpreter library and, when configured, the
// journal. Close must be called when done.
func openEnvironment() (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log)

	lib, err := ghostscript.Open(cfg.Engine, log)
	if err != nil {
		return nil, fmt.Errorf("loading interpreter: %w", err)
	}

	env := &environment{cfg: cfg, log: log, lib: lib}
	opts := []convert.Option{
		convert.WithLogger(log),
		convert.WithEncoding(lib.Encoding()),
		convert.WithTempDir(cfg.Engine.TempDir),
	}
	if cfg.Journal.Path != "" {
		store, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			lib.Close()
			return nil, err
		}
		env.journal = store
		opts = append(opts, convert.WithRecorder(store))
	}
	env.svc = convert.New(lib, opts...)
	return env, nil
}

func (e *environment) Close() {
	if e.journal != nil {
		if err := e.journal.Close(); err != nil {
			e.log.Warn().Err(err).Msg("closing journal")
		}
	}
	if err := e.lib.Close(); err != nil {
		e.log.Warn().Err(err).Msg("closing interpreter library")
	}
}
