package market

import (
	"context"
	"encoding/json"
	"fmt"
)

// document is a typed view of one storage key. A missing or undecodable value
// reads as the fallback.
type document[T any] struct {
	store    Store
	logger   Logger
	key      string
	fallback func() T
}

func newDocument[T any](store Store, logger Logger, key string, fallback func() T) document[T] {
	return document[T]{store: store, logger: logger, key: key, fallback: fallback}
}

func (d document[T]) load(ctx context.Context) (T, error) {
	data, err := d.store.Get(ctx, d.key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("reading %s: %w", d.key, err)
	}
	if len(data) == 0 {
		return d.fallback(), nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		d.logger.Warn("discarding undecodable document", "key", d.key, "error", err)
		return d.fallback(), nil
	}
	return v, nil
}

func (d document[T]) save(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", d.key, err)
	}
	if err := d.store.Put(ctx, d.key, data); err != nil {
		return fmt.Errorf("writing %s: %w", d.key, err)
	}
	return nil
}

func (d document[T]) remove(ctx context.Context) error {
	if err := d.store.Delete(ctx, d.key); err != nil {
		return fmt.Errorf("deleting %s: %w", d.key, err)
	}
	return nil
}

func emptyOf[T any]() func() []T {
	return func() []T { return []T{} }
}
