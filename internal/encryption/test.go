package encryption

import (
	"bytes"
	"fmt"
	"io"

	"skillora/internal/market"
)

// testMagic marks values sealed by TestEncryptor.
var testMagic = []byte("SKLTEST:")

// TestEncryptor is a deterministic, reversible stand-in for AgeEncryptor.
// Sealed output is the plaintext behind a fixed prefix, so stored values never
// equal their plaintext yet need no keys.
type TestEncryptor struct {
	setupCalled bool
}

var _ market.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(string) error {
	e.setupCalled = true
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(testMagic); err != nil {
		return fmt.Errorf("writing test prefix: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

// Unlock accepts any passphrase.
func (e *TestEncryptor) Unlock(string) (market.DecryptionContext, error) {
	return TestDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool {
	return true
}

// TestDecryptionContext strips the prefix written by TestEncryptor.
type TestDecryptionContext struct{}

var _ market.DecryptionContext = TestDecryptionContext{}

func (TestDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	prefix := make([]byte, len(testMagic))
	if _, err := io.ReadFull(r, prefix); err != nil {
		return fmt.Errorf("reading test prefix: %w", err)
	}
	if !bytes.Equal(prefix, testMagic) {
		return fmt.Errorf("value was not sealed by the test encryptor")
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}
