// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/fisherprime/markup/parser"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	renderExpr, renderOutput, astOutput, astDump = "", "", "", false
	batchOutDir, batchPoolSize = ".", 0

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.mu")
	if err := os.WriteFile(page, []byte(`row { p {"a"} p { b {} } }`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{name: "render expr", args: []string{"render", "-e", `p(id: 1) {"x"}`}, want: "<p id=\"1\">x</p>\n"},
		{name: "render stdin", stdin: `div {}`, args: []string{"render"}, want: "<div></div>\n"},
		{name: "render file", args: []string{"render", page}, want: "<row><p>a</p><p><b></b></p></row>\n"},
		{name: "tree", args: []string{"tree", page}, want: "0: row\n1: p p\n2: b\n"},
		{name: "ast", stdin: `"x"`, args: []string{"ast"}, want: "- text: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Errorf("execute() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("execute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_error(t *testing.T) {
	got, err := execute(t, "", "render", "-e", `div { "x"`)
	if !errors.Is(err, parser.ErrExpectedToken) {
		t.Errorf("execute() error = %v, wantErr %v", err, parser.ErrExpectedToken)
	}
	if got != "" {
		t.Errorf("execute() = %q, want no output", got)
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	good, bad := filepath.Join(dir, "good.mu"), filepath.Join(dir, "bad.mu")
	if err := os.WriteFile(good, []byte(`p {"ok"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`p {"ok"`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "", "batch", "--out-dir", outDir, good, bad); !errors.Is(err, parser.ErrParse) {
		t.Errorf("execute() error = %v, wantErr %v", err, parser.ErrParse)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "good.html"))
	if err != nil || string(data) != "<p>ok</p>\n" {
		t.Errorf("good.html = %q, %v, want %q", data, err, "<p>ok</p>\n")
	}
	if _, err = os.Stat(filepath.Join(outDir, "bad.html")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("bad.html stat error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestOutputName(t *testing.T) {
	for path, want := range map[string]string{"a/b.mu": "b.html", "c": "c.html", "d.x.mu": "d.x.html"} {
		if got := outputName(path); got != want {
			t.Errorf("outputName(%q) = %v, want %v", path, got, want)
		}
	}
}
