package blsms

import (
	"context"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/sync/errgroup"
)

const (
	// MinSeedLength is the minimum input keying material accepted by KeyGen
	MinSeedLength = 32

	keyGenSalt   = "BLS-SIG-KEYGEN-SALT-"
	keyGenOKMLen = 48
)

// KeyPairFromSeed derives a BLS key pair from seed following the
// draft-irtf-cfrg-bls-signature KeyGen procedure.
func KeyPairFromSeed(curve Curve, seed []byte) (*KeyPair, error) {
	if len(seed) < MinSeedLength {
		return nil, ErrKeyGenerationFailed.WithDetails("seed length %d below minimum %d", len(seed), MinSeedLength)
	}

	ikm := make([]byte, len(seed)+1)
	copy(ikm, seed)
	defer ZeroizeBytes(ikm)

	// key_info is empty, so info is just I2OSP(L, 2).
	info := []byte{0, keyGenOKMLen}
	okm := make([]byte, keyGenOKMLen)
	defer ZeroizeBytes(okm)

	salt := []byte(keyGenSalt)
	for {
		digest := sha256.Sum256(salt)
		salt = digest[:]

		prk := hkdf.Extract(sha256.New, ikm, salt)
		if _, err := io.ReadFull(hkdf.Expand(sha256.New, prk, info), okm); err != nil {
			ZeroizeBytes(prk)
			return nil, ErrKeyGenerationFailed.WithCause(err)
		}
		ZeroizeBytes(prk)

		secret := curve.ScalarFromUniformBytes(okm)
		if secret.IsZero() {
			continue
		}

		public := curve.LongGenerator().Mul(secret)
		kp := &KeyPair{Secret: secret.Bytes(), Public: public.Bytes()}
		secret.Zeroize()
		return kp, nil
	}
}

// GenerateKeyPair creates a key pair from a fresh crypto/rand seed
func GenerateKeyPair(curve Curve) (*KeyPair, error) {
	return KeyPairFromSource(curve, CryptoEntropy{}, 0)
}

// KeyPairFromSource draws the seed for signer index from entropy
func KeyPairFromSource(curve Curve, entropy EntropySource, index int) (*KeyPair, error) {
	seed, err := entropy.Seed(index)
	if err != nil {
		return nil, ErrKeyGenerationFailed.WithContext("signer", index).WithCause(err)
	}
	defer ZeroizeBytes(seed)

	kp, err := KeyPairFromSeed(curve, seed)
	if err != nil {
		return nil, ErrKeyGenerationFailed.WithContext("signer", index).WithCause(err)
	}
	return kp, nil
}

// Setup generates n independent key pairs in signer order. Any failure
// aborts the whole setup; nothing is retried.
func Setup(ctx context.Context, curve Curve, n int, entropy EntropySource, workers int) (*SignerSet, error) {
	if n <= 0 {
		return nil, ErrEmptySignerSet.WithContext("signers", n)
	}
	if entropy == nil {
		entropy = CryptoEntropy{}
	}

	signers := make([]*KeyPair, n)
	err := forEachSigner(ctx, n, workers, func(i int) error {
		kp, err := KeyPairFromSource(curve, entropy, i)
		if err != nil {
			return err
		}
		signers[i] = kp
		return nil
	})
	if err != nil {
		for _, kp := range signers {
			kp.Zeroize()
		}
		return nil, err
	}
	return &SignerSet{Signers: signers}, nil
}

// forEachSigner runs fn for every index in [0, n). With more than one worker
// the calls run on a bounded errgroup; fn must only write to slot i.
func forEachSigner(ctx context.Context, n, workers int, fn func(i int) error) error {
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
