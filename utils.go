package blsms

import (
	"crypto/sha256"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashAlgorithm selects the digest used for scalar derivation
type HashAlgorithm string

const (
	HashSHA256     HashAlgorithm = "sha256"
	HashBLAKE2b256 HashAlgorithm = "blake2b-256"
	HashSHA3_256   HashAlgorithm = "sha3-256"
)

// DefaultHashAlgorithm is SHA-256, the digest both schemes were defined with
const DefaultHashAlgorithm = HashSHA256

// ParseHashAlgorithm maps a user supplied name onto a supported algorithm.
// The empty string selects the default.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch alg := HashAlgorithm(strings.ToLower(strings.TrimSpace(name))); alg {
	case "":
		return DefaultHashAlgorithm, nil
	case HashSHA256, HashBLAKE2b256, HashSHA3_256:
		return alg, nil
	default:
		return "", ErrUnsupportedHash.WithContext("hash", name)
	}
}

// New returns a fresh hash.Hash for the algorithm
func (h HashAlgorithm) New() (hash.Hash, error) {
	switch h {
	case HashSHA256, "":
		return sha256.New(), nil
	case HashBLAKE2b256:
		// Unkeyed blake2b never errors.
		return blake2b.New256(nil)
	case HashSHA3_256:
		return sha3.New256(), nil
	default:
		return nil, ErrUnsupportedHash.WithContext("hash", string(h))
	}
}

func (h HashAlgorithm) String() string {
	if h == "" {
		return string(DefaultHashAlgorithm)
	}
	return string(h)
}

// Digest hashes the concatenation of data
func (h HashAlgorithm) Digest(data ...[]byte) ([]byte, error) {
	hasher, err := h.New()
	if err != nil {
		return nil, err
	}
	for _, d := range data {
		hasher.Write(d)
	}
	return hasher.Sum(nil), nil
}

// ZeroizeBytes securely clears a byte slice
func ZeroizeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
