// Package workflow coordinates the multi-resource operations behind the
// client's views: per-type collections and the analysis submission flow.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"resumatch/internal/client/api"
)

// ErrNotConfirmed is returned by Delete when the caller has not collected
// an explicit confirmation first.
var ErrNotConfirmed = errors.New("deletion not confirmed")

// Collection tracks one resource type's list together with its own
// loading/error state. Collections are independent of each other: a
// failure here never blocks or clears any other collection.
type Collection[T any] struct {
	client *api.Client
	path   string

	items   []T
	loading bool
	err     error
}

// NewCollection wires a collection to its endpoint, e.g. "/api/resumes/".
func NewCollection[T any](client *api.Client, path string) *Collection[T] {
	return &Collection[T]{client: client, path: path}
}

func (c *Collection[T]) Items() []T    { return c.items }
func (c *Collection[T]) Err() error    { return c.err }
func (c *Collection[T]) Loading() bool { return c.loading }

// List refreshes the collection, accepting either a bare array or a
// paginated envelope. On failure the previous items are kept and the
// error recorded.
func (c *Collection[T]) List(ctx context.Context) error {
	c.loading = true
	defer func() { c.loading = false }()
	var items []T
	if err := c.client.GetList(ctx, c.path, &items); err != nil {
		c.err = err
		return err
	}
	c.items, c.err = items, nil
	return nil
}

// Create submits payload and then re-fetches the list, so callers see
// server-assigned fields like ids and timestamps instead of an echo of
// what they sent. A failed create leaves the current items untouched.
func (c *Collection[T]) Create(ctx context.Context, payload any) error {
	if err := c.client.PostJSON(ctx, c.path, payload, nil); err != nil {
		c.err = err
		return err
	}
	return c.List(ctx)
}

// Upload is Create for binary file content, posted as a multipart form.
// Nothing about the file is validated locally; the server's rejection
// surfaces through the error path.
func (c *Collection[T]) Upload(ctx context.Context, filename string, content []byte) error {
	if err := c.client.Upload(ctx, c.path, "file", filename, content, nil); err != nil {
		c.err = err
		return err
	}
	return c.List(ctx)
}

// Delete removes the identified item and refreshes the list. Confirmation
// is a precondition, not a courtesy: without it no request is issued.
func (c *Collection[T]) Delete(ctx context.Context, id int, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := c.client.Delete(ctx, fmt.Sprintf("%s%d/", c.path, id)); err != nil {
		c.err = err
		return err
	}
	return c.List(ctx)
}
