// SPDX-License-Identifier: MIT
package transform

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"gitlab.com/fisherprime/markup/lexer"
	"gitlab.com/fisherprime/markup/parser"
)

func TestBatch_RenderAll(t *testing.T) {
	docs := [][]byte{
		[]byte(`p {"first"}`),
		[]byte(`p {"second"`),
		[]byte(`div(id: 1) { "third" }`),
	}

	output, err := NewBatch(WithPoolSize(2)).RenderAll(context.Background(), docs)
	if err == nil {
		t.Fatalf("Batch.RenderAll() error = %v, wantErr true", err)
	}
	if !errors.Is(err, parser.ErrParse) {
		t.Errorf("Batch.RenderAll() error = %v, want %v", err, parser.ErrParse)
	}
	if !strings.Contains(err.Error(), "document 1") {
		t.Errorf("Batch.RenderAll() error = %v, want mention of document 1", err)
	}

	if got := FailedDocuments(err); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("FailedDocuments() = %v, want [1]", got)
	}

	want := []string{"<p>first</p>", "", `<div id="1">third</div>`}
	if !reflect.DeepEqual(output, want) {
		t.Errorf("Batch.RenderAll() = %v, want %v", output, want)
	}
}

func TestBatch_RenderAll_options(t *testing.T) {
	tests := []struct {
		name    string
		opts    []BatchOption
		docs    [][]byte
		want    []string
		wantErr error
	}{
		{name: "empty", want: []string{}},
		{
			name: "shared renderer",
			opts: []BatchOption{WithHTML(NewHTML(WithAttributes(false)))},
			docs: [][]byte{[]byte(`p(id: 1) {}`), []byte(`"a"`)},
			want: []string{"<p></p>", "a"},
		},
		{
			name:    "source too large",
			opts:    []BatchOption{WithBatchMaxSourceLen(4)},
			docs:    [][]byte{[]byte(`p {}`), []byte(`div {}`)},
			wantErr: lexer.ErrSourceTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBatch(tt.opts...).RenderAll(context.Background(), tt.docs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Batch.RenderAll() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Batch.RenderAll() error = %v", err)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Batch.RenderAll() = %v, want %v", got, tt.want)
			}
		})
	}
}
