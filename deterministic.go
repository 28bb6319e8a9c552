package blsms

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// EntropySource supplies the key generation seed for each signer index.
// Implementations must be safe for concurrent use when Setup runs with
// more than one worker.
type EntropySource interface {
	Seed(index int) ([]byte, error)
}

// CryptoEntropy draws every seed from crypto/rand
type CryptoEntropy struct{}

// Seed returns MinSeedLength fresh random bytes
func (CryptoEntropy) Seed(index int) ([]byte, error) {
	seed, err := SecureRandom(MinSeedLength)
	if err != nil {
		return nil, ErrRandomnessGeneration.WithContext("signer", index).WithCause(err)
	}
	return seed, nil
}

// DeterministicEntropy expands a master secret into per-signer seeds with
// HKDF, so the same master always yields the same signer set.
type DeterministicEntropy struct {
	Master []byte
}

// NewDeterministicEntropy validates master and returns a deterministic source
func NewDeterministicEntropy(master []byte) (*DeterministicEntropy, error) {
	if len(master) < MinSeedLength {
		return nil, ErrInvalidConfiguration.WithDetails("master seed length %d below minimum %d", len(master), MinSeedLength)
	}
	return &DeterministicEntropy{Master: append([]byte(nil), master...)}, nil
}

// Seed derives the seed for index from the master secret
func (d *DeterministicEntropy) Seed(index int) ([]byte, error) {
	if index < 0 {
		return nil, fmt.Errorf("negative signer index %d", index)
	}
	salt := []byte("BLSMS_DETERMINISTIC_SEED_v1")

	indexBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(indexBytes, uint32(index))
	info := append([]byte("index:"), indexBytes...)

	seed := make([]byte, MinSeedLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, d.Master, salt, info), seed); err != nil {
		return nil, fmt.Errorf("failed to derive seed from HKDF: %w", err)
	}
	return seed, nil
}

// FixedSeeds hands out caller-supplied seeds by index. It is used for
// reproducible test vectors.
type FixedSeeds [][]byte

// Seed returns a copy of the seed at index
func (f FixedSeeds) Seed(index int) ([]byte, error) {
	if index < 0 || index >= len(f) {
		return nil, fmt.Errorf("no fixed seed for signer %d (have %d)", index, len(f))
	}
	return append([]byte(nil), f[index]...), nil
}
