// SPDX-License-Identifier: MIT
package transform

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/markup/parser"
)

type (
	// Batch parses & renders independent documents in parallel on a worker pool.
	//
	// Every document gets its own Parser; the HTML renderer is shared read-only.
	Batch struct {
		logger       logrus.FieldLogger
		debug        bool
		poolSize     int
		maxSourceLen int

		html *HTML
	}

	// BatchOption defines the Batch functional option type.
	BatchOption func(*Batch)

	// DocumentError reports the failure of a single batch document.
	DocumentError struct {
		Index int
		Err   error
	}
)

// ErrPanicked reports a recovered panic of a batch task.
var ErrPanicked = errors.New("recovery from panic")

// NewBatch instantiates a Batch.
func NewBatch(opts ...BatchOption) *Batch {
	b := &Batch{
		logger:   logrus.New(),
		poolSize: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.html == nil {
		b.html = NewHTML(WithLogger(b.logger), WithDebug(b.debug))
	}

	return b
}

// WithBatchLogger configures the logger option.
func WithBatchLogger(logger logrus.FieldLogger) BatchOption {
	return func(b *Batch) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBatchDebug configures the debug option.
func WithBatchDebug(debug bool) BatchOption { return func(b *Batch) { b.debug = debug } }

// WithPoolSize configures the number of workers, a value < 1 keeps the default.
func WithPoolSize(size int) BatchOption {
	return func(b *Batch) {
		if size > 0 {
			b.poolSize = size
		}
	}
}

// WithBatchMaxSourceLen caps the length of every document in bytes.
func WithBatchMaxSourceLen(n int) BatchOption { return func(b *Batch) { b.maxSourceLen = n } }

// WithHTML configures the renderer shared by the tasks.
func WithHTML(html *HTML) BatchOption { return func(b *Batch) { b.html = html } }

// RenderAll renders every document into HTML, output[i] corresponding to docs[i].
//
// All documents are attempted; the failures are joined into the returned error as DocumentErrors
// & their outputs are left empty.
func (b *Batch) RenderAll(ctx context.Context, docs [][]byte) (output []string, err error) {
	output = make([]string, len(docs))
	if len(docs) < 1 {
		return
	}

	errs := make([]error, len(docs))

	pool, err := ants.NewPool(b.poolSize,
		ants.WithLogger(b.logger),
		ants.WithPanicHandler(func(r interface{}) {
			b.logger.Errorf("batch task: %v: %v", ErrPanicked, r)
		}),
	)
	if err != nil {
		return
	}
	defer pool.Release()

	wg := new(sync.WaitGroup)
	for index := range docs {
		index := index

		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[index] = fmt.Errorf("%w: %v", ErrPanicked, r)
				}
			}()

			output[index], errs[index] = b.render(ctx, docs[index])
		}

		if submitErr := pool.Submit(task); submitErr != nil {
			wg.Done()
			errs[index] = submitErr
		}
	}
	wg.Wait()

	for index := range errs {
		if errs[index] != nil {
			errs[index] = &DocumentError{Index: index, Err: errs[index]}
		}
	}
	err = errors.Join(errs...)

	if b.debug {
		b.logger.Debugf("batch rendered %d documents on %d workers", len(docs), b.poolSize)
	}

	return
}

func (e *DocumentError) Error() string { return fmt.Sprintf("document %d: %v", e.Index, e.Err) }

func (e *DocumentError) Unwrap() error { return e.Err }

// FailedDocuments lists the indices of the documents reported by a RenderAll error.
func FailedDocuments(err error) (indices []int) {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else if err != nil {
		errs = []error{err}
	}

	for _, e := range errs {
		var docErr *DocumentError
		if errors.As(e, &docErr) {
			indices = append(indices, docErr.Index)
		}
	}

	return
}

func (b *Batch) render(ctx context.Context, doc []byte) (string, error) {
	p := parser.New(
		parser.WithLogger(b.logger),
		parser.WithDebug(b.debug),
		parser.WithMaxSourceLen(b.maxSourceLen),
	)

	nodes, err := p.Parse(ctx, doc)
	if err != nil {
		return "", err
	}

	return b.html.Transform(ctx, nodes)
}
