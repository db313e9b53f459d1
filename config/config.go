// SPDX-License-Identifier: MIT

// Package config loads the markup command's settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/markup"
)

type (
	// File holds the settings read from a config file.
	//
	//	log_level = "debug"
	//	debug = true
	//	attributes = false
	//	max_source_len = 1048576
	//	pool_size = 4
	File struct {
		LogLevel     string `toml:"log_level"`
		Debug        bool   `toml:"debug"`
		Attributes   *bool  `toml:"attributes"`
		MaxSourceLen *int   `toml:"max_source_len"`
		PoolSize     int    `toml:"pool_size"`
	}
)

const defLogLevel = "info"

// Errors encountered when loading a File.
var (
	ErrUnknownKey = errors.New("unknown config key")
	ErrLogLevel   = errors.New("invalid log level")
)

// Default instantiates a File with default values.
func Default() *File {
	f := &File{}
	f.applyDefaults()

	return f
}

// Load reads a TOML config file, an empty path yields the defaults.
func Load(path string) (f *File, err error) {
	if path == "" {
		return Default(), nil
	}

	path = os.ExpandEnv(path)

	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		err = fmt.Errorf("config file %s: %w", path, err)
		return
	}

	if f, err = Decode(string(data)); err != nil {
		err = fmt.Errorf("config file %s: %w", path, err)
	}

	return
}

// Decode parses TOML config data, rejecting unknown keys.
func Decode(data string) (f *File, err error) {
	f = &File{}

	meta, err := toml.Decode(data, f)
	if err != nil {
		return nil, err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for index := range undecoded {
			keys[index] = undecoded[index].String()
		}

		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	f.applyDefaults()

	if _, err = f.Level(); err != nil {
		return nil, err
	}

	return
}

// Level parses the File's log level.
func (f *File) Level() (level logrus.Level, err error) {
	if level, err = logrus.ParseLevel(f.LogLevel); err != nil {
		err = fmt.Errorf("%w: %w", ErrLogLevel, err)
	}

	return
}

// Logger instantiates a logger at the File's log level, debug forces the debug level.
func (f *File) Logger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if level, err := f.Level(); err == nil {
		logger.SetLevel(level)
	}
	if f.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

// Markup converts the File into the library's Config.
func (f *File) Markup(logger logrus.FieldLogger) *markup.Config {
	cfg := markup.DefConfig()
	cfg.Logger = logger
	cfg.Debug = f.Debug

	if f.Attributes != nil {
		cfg.Attributes = *f.Attributes
	}
	if f.MaxSourceLen != nil {
		cfg.MaxSourceLen = *f.MaxSourceLen
	}

	return cfg
}

func (f *File) applyDefaults() {
	if f.LogLevel == "" {
		f.LogLevel = defLogLevel
	}
}
