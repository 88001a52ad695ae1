package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"filippo.io/age"

	"skillora/internal/config"
	"skillora/internal/market"
)

// ErrKeysExist is returned by Setup when a key pair is already on disk.
var ErrKeysExist = errors.New("encryption keys already exist")

// AgeEncryptor implements market.Encryptor with an age X25519 key pair. Each
// stored value is sealed as its own age message to the public key. The
// private key is kept on disk as an age message sealed to the passphrase.
type AgeEncryptor struct {
	keys keyFiles

	mu        sync.Mutex
	recipient age.Recipient
}

var _ market.Encryptor = (*AgeEncryptor)(nil)

// NewAgeEncryptor creates a new AgeEncryptor from configuration.
func NewAgeEncryptor(cfg config.EncryptionConfig) *AgeEncryptor {
	return &AgeEncryptor{keys: keyFiles{public: cfg.PublicKeyPath, private: cfg.PrivateKeyPath}}
}

// Setup generates a key pair and writes both key files. Existing keys are
// never replaced: values sealed to them would become unreadable.
func (e *AgeEncryptor) Setup(passphrase string) error {
	if e.keys.exist() {
		return fmt.Errorf("%w at %s", ErrKeysExist, filepath.Dir(e.keys.private))
	}
	if passphrase == "" {
		return errors.New("passphrase must not be empty")
	}

	id, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}
	if err := e.keys.write(id, passphrase); err != nil {
		return err
	}

	e.mu.Lock()
	e.recipient = id.Recipient()
	e.mu.Unlock()
	return nil
}

// Encrypt reads one whole value from r and writes it to w sealed to the
// public key.
func (e *AgeEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	recipient, err := e.publicKey()
	if err != nil {
		return err
	}
	value, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading value: %w", err)
	}
	sealed, err := seal(value, recipient)
	if err != nil {
		return err
	}
	if _, err := w.Write(sealed); err != nil {
		return fmt.Errorf("writing sealed value: %w", err)
	}
	return nil
}

// Unlock opens the private key with passphrase. A wrong passphrase is an error.
func (e *AgeEncryptor) Unlock(passphrase string) (market.DecryptionContext, error) {
	id, err := e.keys.readIdentity(passphrase)
	if err != nil {
		return nil, err
	}
	return &AgeDecryptionContext{identity: id}, nil
}

// IsConfigured reports whether both key files exist.
func (e *AgeEncryptor) IsConfigured() bool {
	return e.keys.exist()
}

// publicKey returns the recipient, reading the public key file on first use.
func (e *AgeEncryptor) publicKey() (age.Recipient, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.recipient == nil {
		r, err := e.keys.readRecipient()
		if err != nil {
			return nil, err
		}
		e.recipient = r
	}
	return e.recipient, nil
}

// AgeDecryptionContext holds an unlocked age identity for the life of the process.
type AgeDecryptionContext struct {
	identity age.Identity
}

var _ market.DecryptionContext = (*AgeDecryptionContext)(nil)

// Decrypt reads one sealed value from r and writes the plaintext to w.
func (c *AgeDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	sealed, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading sealed value: %w", err)
	}
	value, err := open(sealed, c.identity)
	if err != nil {
		return err
	}
	if _, err := w.Write(value); err != nil {
		return fmt.Errorf("writing value: %w", err)
	}
	return nil
}

// seal encrypts value as a single age message to r.
func seal(value []byte, r age.Recipient) ([]byte, error) {
	var out bytes.Buffer
	w, err := age.Encrypt(&out, r)
	if err != nil {
		return nil, fmt.Errorf("starting age message: %w", err)
	}
	if _, err := w.Write(value); err != nil {
		return nil, fmt.Errorf("sealing value: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("sealing value: %w", err)
	}
	return out.Bytes(), nil
}

// open decrypts a message produced by seal.
func open(sealed []byte, id age.Identity) ([]byte, error) {
	r, err := age.Decrypt(bytes.NewReader(sealed), id)
	if err != nil {
		return nil, fmt.Errorf("opening age message: %w", err)
	}
	value, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("opening age message: %w", err)
	}
	return value, nil
}

// keyFiles locates the key pair on disk. The public file holds the recipient
// string; the private file holds the identity sealed to a scrypt passphrase.
type keyFiles struct {
	public  string
	private string
}

func (k keyFiles) exist() bool {
	for _, p := range []string{k.public, k.private} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

func (k keyFiles) write(id *age.X25519Identity, passphrase string) error {
	lock, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("deriving passphrase key: %w", err)
	}
	sealedID, err := seal([]byte(id.String()+"\n"), lock)
	if err != nil {
		return fmt.Errorf("sealing private key: %w", err)
	}

	files := []struct {
		path string
		data []byte
		perm os.FileMode
	}{
		{k.public, []byte(id.Recipient().String() + "\n"), 0644},
		{k.private, sealedID, 0600},
	}
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
			return fmt.Errorf("creating key directory: %w", err)
		}
		if err := os.WriteFile(f.path, f.data, f.perm); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
	}
	return nil
}

func (k keyFiles) readRecipient() (age.Recipient, error) {
	data, err := os.ReadFile(k.public)
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	r, err := age.ParseX25519Recipient(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return r, nil
}

func (k keyFiles) readIdentity(passphrase string) (age.Identity, error) {
	sealed, err := os.ReadFile(k.private)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	unlock, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("deriving passphrase key: %w", err)
	}
	plain, err := open(sealed, unlock)
	if err != nil {
		return nil, fmt.Errorf("unlocking private key: %w", err)
	}
	id, err := age.ParseX25519Identity(strings.TrimSpace(string(plain)))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	return id, nil
}
