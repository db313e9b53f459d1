// SPDX-License-Identifier: MIT
package markup

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/markup/ast"
	"gitlab.com/fisherprime/markup/parser"
	"gitlab.com/fisherprime/markup/transform"
)

type (
	// Config holds the settings shared by the package's operations.
	Config struct {
		// Logger receives debug output, the package logger is used when unset.
		Logger logrus.FieldLogger

		// Debug enables verbose logging of the lexed tokens & parsed tree.
		Debug bool

		// MaxSourceLen caps the source length in bytes, 0 disables the check.
		MaxSourceLen int

		// Attributes enables rendering of tag attributes into HTML.
		Attributes bool
	}
)

// DefMaxSourceLen is the default source length limit (16MiB).
const DefMaxSourceLen = 16 << 20

// Errors encountered when handling a Config.
var (
	ErrInvalidConfig = errors.New("invalid config")
)

var fLogger logrus.FieldLogger = logrus.NewEntry(logrus.New())

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		fLogger = l
	}
}

// DefConfig instantiates a Config with default values.
func DefConfig() *Config {
	return &Config{
		Logger:       fLogger,
		MaxSourceLen: DefMaxSourceLen,
		Attributes:   true,
	}
}

// Validate checks the Config's values, filling in the unset logger.
func (c *Config) Validate() (err error) {
	if c.MaxSourceLen < 0 {
		err = fmt.Errorf("%w: negative max source length (%d)", ErrInvalidConfig, c.MaxSourceLen)
		return
	}

	if c.Logger == nil {
		c.Logger = fLogger
	}

	return
}

// Parse reads the source into a forest of nodes.
func Parse(ctx context.Context, src []byte, cfg *Config) (nodes []ast.Node, err error) {
	if cfg, err = prepare(cfg); err != nil {
		return
	}

	p := parser.New(
		parser.WithLogger(cfg.Logger),
		parser.WithDebug(cfg.Debug),
		parser.WithMaxSourceLen(cfg.MaxSourceLen),
	)

	return p.Parse(ctx, src)
}

// RenderHTML parses the source & renders it into HTML.
//
// No output is produced for a source that fails to parse.
func RenderHTML(ctx context.Context, src []byte, cfg *Config) (output string, err error) {
	if cfg, err = prepare(cfg); err != nil {
		return
	}

	nodes, err := Parse(ctx, src, cfg)
	if err != nil {
		return
	}

	return NewHTML(cfg).Transform(ctx, nodes)
}

// RenderYAML parses the source & serializes its tree into YAML.
func RenderYAML(ctx context.Context, src []byte, cfg *Config) (output []byte, err error) {
	nodes, err := Parse(ctx, src, cfg)
	if err != nil {
		return
	}

	return transform.NewYAML().Transform(ctx, nodes)
}

// Levels parses the source & lists its tag names by depth.
func Levels(ctx context.Context, src []byte, cfg *Config) (names [][]string, err error) {
	nodes, err := Parse(ctx, src, cfg)
	if err != nil {
		return
	}

	levels, err := ast.ByLevel(ctx, nodes)
	if err != nil {
		return
	}

	names = make([][]string, len(levels))
	for index := range levels {
		names[index] = levels[index].Names()
	}

	return
}

// NewHTML instantiates an HTML renderer configured by cfg.
func NewHTML(cfg *Config, opts ...transform.HTMLOption) *transform.HTML {
	if cfg == nil {
		cfg = DefConfig()
	}

	return transform.NewHTML(append([]transform.HTMLOption{
		transform.WithLogger(cfg.Logger),
		transform.WithDebug(cfg.Debug),
		transform.WithAttributes(cfg.Attributes),
	}, opts...)...)
}

// NewBatch instantiates a parallel renderer configured by cfg.
func NewBatch(cfg *Config, poolSize int) *transform.Batch {
	if cfg == nil {
		cfg = DefConfig()
	}

	return transform.NewBatch(
		transform.WithBatchLogger(cfg.Logger),
		transform.WithBatchDebug(cfg.Debug),
		transform.WithBatchMaxSourceLen(cfg.MaxSourceLen),
		transform.WithPoolSize(poolSize),
		transform.WithHTML(NewHTML(cfg)),
	)
}

func prepare(cfg *Config) (*Config, error) {
	if cfg == nil {
		return DefConfig(), nil
	}

	return cfg, cfg.Validate()
}
