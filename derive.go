package blsms

// MaxBitLength is the largest number of signature-hash bits OUR-MS feeds into
// its combiner offset.
const MaxBitLength = 64

// ValidateBitLength checks that bitLen is a multiple of 8 in [0, MaxBitLength]
func ValidateBitLength(bitLen int) error {
	if bitLen < 0 || bitLen > MaxBitLength || bitLen%8 != 0 {
		return ErrInvalidBitLength.WithContext("bit_len", bitLen)
	}
	return nil
}

// DeriveFromKeySet computes H(pk || allPKs) read as a big-endian integer mod r.
// allPKs is the concatenation of every public key in signer order, so the
// result depends on the whole ordered set.
func DeriveFromKeySet(curve Curve, alg HashAlgorithm, pk, allPKs []byte) (Scalar, error) {
	digest, err := alg.Digest(pk, allPKs)
	if err != nil {
		return nil, err
	}
	return curve.ScalarFromUniformBytes(digest), nil
}

// DeriveFromSignature turns the first bitLen bits of H(sig) into a scalar.
// A bitLen of zero yields zero without hashing.
func DeriveFromSignature(curve Curve, alg HashAlgorithm, sig []byte, bitLen int) (Scalar, error) {
	if err := ValidateBitLength(bitLen); err != nil {
		return nil, err
	}
	if bitLen == 0 {
		return curve.ScalarZero(), nil
	}

	digest, err := alg.Digest(sig)
	if err != nil {
		return nil, err
	}
	// Left-pad the prefix to the scalar width so it reads as a small integer.
	buf := make([]byte, curve.ScalarSize())
	copy(buf[len(buf)-bitLen/8:], digest[:bitLen/8])
	return curve.ScalarFromUniformBytes(buf), nil
}

// signerOffset returns start + index + 1, the per-signer term shared by the
// OUR-MS combiner and key aggregation.
func signerOffset(curve Curve, start Scalar, index int) Scalar {
	return start.Add(curve.ScalarFromUint64(uint64(index) + 1))
}
