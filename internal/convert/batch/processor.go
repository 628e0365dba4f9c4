// Package batch provides a generic bounded-concurrency processor for
// per-item pipelines such as bulk conversion and batch validation.
//
// Items are independent: a failing item never aborts the batch. Failures
// are collected per item and reported alongside the success count, matching
// the per-item success/failure contract of the bulk endpoints.
package batch

import (
	"context"
	"errors"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Default processing configuration.
const (
	// DefaultConcurrency is the worker bound when the caller passes 0.
	DefaultConcurrency = 8

	// MaxConcurrency caps the worker bound.
	MaxConcurrency = 64
)

// ErrEmptyItems indicates an empty input slice.
var ErrEmptyItems = errors.New("items slice cannot be empty")

// ErrNilHandler indicates a nil item handler.
var ErrNilHandler = errors.New("item handler cannot be nil")

// Handler processes one item, identified by its index in the input slice.
type Handler[T any] func(ctx context.Context, index int, item T) error

// ItemError records a single item's failure.
type ItemError struct {
	// Index is the item's position in the input slice.
	Index int `json:"index"`

	// Err is the failure. Serialized as its message.
	Err error `json:"-"`

	// Message mirrors Err for serialization.
	Message string `json:"error"`
}

// Result summarizes a batch run.
type Result struct {
	// Total is the number of items submitted.
	Total int `json:"total"`

	// Succeeded is the number of items processed without error.
	Succeeded int `json:"succeeded"`

	// Failed is the number of items whose handler returned an error.
	Failed int `json:"failed"`

	// Errors holds one entry per failed item, ordered by item index.
	Errors []ItemError `json:"errors,omitempty"`
}

// Run processes every item with at most concurrency workers. A concurrency
// of 0 selects DefaultConcurrency; values above MaxConcurrency are clamped.
//
// Handler errors are collected, not propagated: the batch always runs to
// completion unless the context is canceled, in which case the context
// error is returned and the partial Result reflects completed items only.
func Run[T any](ctx context.Context, items []T, concurrency int, handler Handler[T]) (Result, error) {
	if len(items) == 0 {
		return Result{}, ErrEmptyItems
	}
	if handler == nil {
		return Result{}, ErrNilHandler
	}

	switch {
	case concurrency <= 0:
		concurrency = DefaultConcurrency
	case concurrency > MaxConcurrency:
		concurrency = MaxConcurrency
	}

	var (
		mu       sync.Mutex
		failures []ItemError
	)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if err := handler(gctx, i, item); err != nil {
				mu.Lock()
				failures = append(failures, ItemError{Index: i, Err: err, Message: err.Error()})
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	slices.SortFunc(failures, func(a, b ItemError) int {
		return a.Index - b.Index
	})

	return Result{
		Total:     len(items),
		Succeeded: len(items) - len(failures),
		Failed:    len(failures),
		Errors:    failures,
	}, nil
}
