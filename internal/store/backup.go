package store

import (
	"context"
	"fmt"

	"skillora/internal/market"
)

// snapshotter is implemented by backends that can write a native snapshot.
type snapshotter interface {
	BackupTo(ctx context.Context, dest string) error
}

// Backup copies the documents of src to dest and returns how many were
// written. Backends with a native snapshot (sqlite) write it to the file
// dest and report every stored key. Other backends are copied document by
// document into a filesystem store rooted at dest. Values are copied as
// stored, so an encrypted store yields an encrypted backup.
func Backup(ctx context.Context, src market.Store, dest string) (int, error) {
	if e, ok := src.(*EncryptedStore); ok {
		src = e.inner
	}

	if snap, ok := src.(snapshotter); ok {
		keys, err := src.Keys(ctx)
		if err != nil {
			return 0, err
		}
		if err := snap.BackupTo(ctx, dest); err != nil {
			return 0, err
		}
		return len(keys), nil
	}

	out, err := NewFileSystemStore(dest)
	if err != nil {
		return 0, fmt.Errorf("opening backup directory: %w", err)
	}
	defer out.Close()

	n := 0
	for _, key := range market.AllKeys {
		value, err := src.Get(ctx, key)
		if err != nil {
			return n, fmt.Errorf("reading %s: %w", key, err)
		}
		if value == nil {
			continue
		}
		if err := out.Put(ctx, key, value); err != nil {
			return n, fmt.Errorf("writing %s: %w", key, err)
		}
		n++
	}
	return n, nil
}
