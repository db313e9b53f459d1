// SPDX-License-Identifier: MIT
package markup

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/markup/ast"
	"gitlab.com/fisherprime/markup/lexer"
	"gitlab.com/fisherprime/markup/parser"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       *Config
		wantErr bool
	}{
		{name: "default", c: DefConfig()},
		{name: "zero value", c: &Config{}},
		{name: "negative max source length", c: &Config{MaxSourceLen: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Config.Validate() error = %v, want %v", err, ErrInvalidConfig)
				}
				return
			}
			if tt.c.Logger == nil {
				t.Error("Config.Validate() left the logger unset")
			}
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse(context.Background(), []byte(`p(id: 1) {"x"}`), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []ast.Node{ast.Tag{
		Name:       "p",
		Attributes: []ast.Attribute{{Name: "id", Value: ast.Number(1)}},
		Children:   []ast.Node{ast.Text{Value: "x"}},
	}}
	if !ast.Equal(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		cfg     *Config
		want    string
		wantErr error
	}{
		{
			name: "nested",
			src:  `div { div {"item1"} div {"item2"} }`,
			want: "<div><div>item1</div><div>item2</div></div>",
		},
		{
			name: "attributes",
			src:  `p(class: "a") {"x"}`,
			cfg:  DefConfig(),
			want: `<p class="a">x</p>`,
		},
		{
			name: "attributes disabled",
			src:  `p(class: "a") {"x"}`,
			cfg:  &Config{Attributes: false, Debug: true, Logger: logrus.New()},
			want: "<p>x</p>",
		},
		{name: "unclosed tag", src: `div { "x"`, wantErr: parser.ErrExpectedToken},
		{name: "unclosed string", src: `"x`, wantErr: lexer.ErrUnclosedStringLiteral},
		{name: "source too large", src: `p {}`, cfg: &Config{MaxSourceLen: 2}, wantErr: lexer.ErrSourceTooLarge},
		{name: "invalid config", src: `p {}`, cfg: &Config{MaxSourceLen: -1}, wantErr: ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderHTML(context.Background(), []byte(tt.src), tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("RenderHTML() error = %v, wantErr %v", err, tt.wantErr)
				}
				if got != "" {
					t.Errorf("RenderHTML() = %v, want no output", got)
				}
				return
			}
			if err != nil {
				t.Errorf("RenderHTML() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("RenderHTML() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderYAML(t *testing.T) {
	got, err := RenderYAML(context.Background(), []byte(`p {"x"}`), nil)
	if err != nil {
		t.Fatalf("RenderYAML() error = %v", err)
	}

	if !strings.Contains(string(got), "tag: p") || !strings.Contains(string(got), "text: x") {
		t.Errorf("RenderYAML() = %s, want a p tag holding x", got)
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    [][]string
		wantErr error
	}{
		{
			name: "nested",
			src:  `row { p {"a"} p { b {} } } "c"`,
			want: [][]string{{"row"}, {"p", "p"}, {"b"}},
		},
		{name: "text only", src: `"c"`, wantErr: ast.ErrNoTags},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Levels(context.Background(), []byte(tt.src), nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Levels() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Levels() error = %v", err)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Levels() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewBatch(t *testing.T) {
	cfg := DefConfig()
	cfg.Attributes = false

	got, err := NewBatch(cfg, 2).RenderAll(context.Background(), [][]byte{[]byte(`p(id: 1) {}`), []byte(`"a"`)})
	if err != nil {
		t.Fatalf("Batch.RenderAll() error = %v", err)
	}

	if want := []string{"<p></p>", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Batch.RenderAll() = %v, want %v", got, want)
	}
}
