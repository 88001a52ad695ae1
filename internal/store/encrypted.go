package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"skillora/internal/market"
)

// ErrLocked is returned when reading from an EncryptedStore that was built
// without a decryption context.
var ErrLocked = errors.New("store is locked: no decryption context")

// EncryptedStore wraps a market.Store and encrypts every value at rest. Keys
// stay in plaintext so listing and deletion work without unlocking.
type EncryptedStore struct {
	inner market.Store
	enc   market.Encryptor
	dec   market.DecryptionContext
}

// NewEncryptedStore wraps inner. dec may be nil for a write-only store.
func NewEncryptedStore(inner market.Store, enc market.Encryptor, dec market.DecryptionContext) *EncryptedStore {
	return &EncryptedStore{inner: inner, enc: enc, dec: dec}
}

func (e *EncryptedStore) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := e.inner.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	if e.dec == nil {
		return nil, ErrLocked
	}

	var plain bytes.Buffer
	if err := e.dec.Decrypt(bytes.NewReader(sealed), &plain); err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", key, err)
	}
	return plain.Bytes(), nil
}

func (e *EncryptedStore) Put(ctx context.Context, key string, value []byte) error {
	var sealed bytes.Buffer
	if err := e.enc.Encrypt(bytes.NewReader(value), &sealed); err != nil {
		return fmt.Errorf("encrypting %s: %w", key, err)
	}
	return e.inner.Put(ctx, key, sealed.Bytes())
}

func (e *EncryptedStore) Delete(ctx context.Context, key string) error {
	return e.inner.Delete(ctx, key)
}

func (e *EncryptedStore) Clear(ctx context.Context) error {
	return e.inner.Clear(ctx)
}

func (e *EncryptedStore) Keys(ctx context.Context) ([]string, error) {
	return e.inner.Keys(ctx)
}

func (e *EncryptedStore) Close() error {
	return e.inner.Close()
}

// Compile-time check that EncryptedStore implements market.Store interface
var _ market.Store = (*EncryptedStore)(nil)
