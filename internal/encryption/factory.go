package encryption

import (
	"fmt"

	"skillora/internal/config"
	"skillora/internal/market"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration type.
// The "none" type (and an empty type) yields a nil Encryptor: values are
// stored in plaintext.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (market.Encryptor, error) {
	switch cfg.Type {
	case "none", "":
		return nil, nil
	case "age":
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
