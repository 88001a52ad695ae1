package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"skillora/internal/assist"
	"skillora/internal/config"
	"skillora/internal/encryption"
	"skillora/internal/market"
	"skillora/internal/store"
)

// ErrKeysNotConfigured is returned when encryption is enabled but the key
// pair has not been generated yet.
var ErrKeysNotConfigured = errors.New("encryption keys not configured; run `skillora config keys`")

// PassphraseFunc supplies the passphrase that unlocks the private key.
type PassphraseFunc func() (string, error)

// Options tune NewApp. The zero value is usable: no passphrase source and
// logs to stderr.
type Options struct {
	Passphrase PassphraseFunc
	Stderr     io.Writer // nil means os.Stderr; use io.Discard to silence
}

// SkilloraApp is the application layer between the CLI or HTTP server and
// market.Service. It constructs all dependencies from config and releases
// them on Close.
type SkilloraApp struct {
	cfg       *config.Config
	store     market.Store
	service   *market.Service
	assistant assist.Assistant
	logger    *slog.Logger
	clock     market.Clock
	op        *Operation
	logFile   *os.File
}

// NewApp creates a fully wired SkilloraApp from the given config.
// operation names the command being run (e.g. "PostJob", "Serve").
// The caller must call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, operation string, opts Options) (*SkilloraApp, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	clock := market.RealClock{}
	op := NewOperation(operation, clock)
	logger, logFile, err := newLogger(cfg.LogDir, op.ID, level, stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	s, err := openStore(ctx, cfg, opts.Passphrase)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	var latency market.Latency = market.NoLatency{}
	if cfg.Latency.Enabled {
		latency = market.RealLatency{}
	}

	adapter := &slogAdapter{l: logger}
	svc := market.NewService(s, adapter, clock, market.UUIDGenerator{}, market.MathRandom{}, latency)
	logger.Debug("operation started", "operation", operation, "store", cfg.Store.Type)

	return &SkilloraApp{
		cfg:       cfg,
		store:     s,
		service:   svc,
		assistant: assist.Offline{},
		logger:    logger,
		clock:     clock,
		op:        op,
		logFile:   logFile,
	}, nil
}

// openStore builds the configured backend and, when encryption is enabled,
// wraps it in an EncryptedStore unlocked with the passphrase.
func openStore(ctx context.Context, cfg *config.Config, passphrase PassphraseFunc) (market.Store, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	var dec market.DecryptionContext
	if enc != nil {
		if !enc.IsConfigured() {
			return nil, ErrKeysNotConfigured
		}
		if passphrase == nil {
			return nil, fmt.Errorf("encryption enabled but no passphrase source")
		}
		p, err := passphrase()
		if err != nil {
			return nil, fmt.Errorf("reading passphrase: %w", err)
		}
		dec, err = enc.Unlock(p)
		if err != nil {
			return nil, fmt.Errorf("unlocking encryption key: %w", err)
		}
	}

	s, err := store.NewStoreFromConfig(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	if enc != nil {
		return store.NewEncryptedStore(s, enc, dec), nil
	}
	return s, nil
}

// SetupKeys generates the encryption key pair configured in cfg.
func SetupKeys(cfg *config.Config, passphrase string) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		return fmt.Errorf("encryption type %q needs no keys", cfg.Encryption.Type)
	}
	if err := enc.Setup(passphrase); err != nil {
		return fmt.Errorf("setting up keys: %w", err)
	}
	return nil
}

func (a *SkilloraApp) Config() *config.Config      { return a.cfg }
func (a *SkilloraApp) Service() *market.Service    { return a.service }
func (a *SkilloraApp) Assistant() assist.Assistant { return a.assistant }
func (a *SkilloraApp) Logger() market.Logger       { return &slogAdapter{l: a.logger} }

// Session returns the session of the logged-in user, or nil when nobody is.
func (a *SkilloraApp) Session(ctx context.Context) (*market.Session, error) {
	return a.service.Session(ctx)
}

// Backup copies the stored documents to dest. See store.Backup for the
// layout of dest.
func (a *SkilloraApp) Backup(ctx context.Context, dest string) (int, error) {
	n, err := store.Backup(ctx, a.store, dest)
	if err != nil {
		return n, fmt.Errorf("backing up to %s: %w", dest, err)
	}
	a.logger.Info("backup written", "dest", dest, "documents", n)
	return n, nil
}

// Fail records err against the operation and returns it unchanged.
func (a *SkilloraApp) Fail(err error) error {
	a.op.Fail(err)
	return err
}

// Close logs the operation outcome and releases the store and log file.
func (a *SkilloraApp) Close() error {
	args := []any{"operation", a.op.Name, "status", a.op.Status, "elapsed", a.op.Elapsed(a.clock).String()}
	if a.op.Err != nil {
		a.logger.Error("operation finished", append(args, "error", a.op.Err)...)
	} else {
		a.logger.Debug("operation finished", args...)
	}

	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
