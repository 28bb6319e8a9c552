package blsms

// Aggregates encode as the concatenation of their compressed points in
// field order, so every encoding has a fixed width per curve.

// MarshalBinary encodes sigma
func (sig *BDNSignature) MarshalBinary() ([]byte, error) {
	if sig == nil || sig.Sigma == nil {
		return nil, ErrInvalidEncoding.WithDetails("nil BDN signature")
	}
	return sig.Sigma.Bytes(), nil
}

// UnmarshalBDNSignature decodes a BDN signature
func UnmarshalBDNSignature(curve Curve, data []byte) (*BDNSignature, error) {
	sigma, err := curve.ShortPointFromBytes(data)
	if err != nil {
		return nil, err
	}
	return &BDNSignature{Sigma: sigma}, nil
}

// MarshalBinary encodes apk
func (pk *BDNPublicKey) MarshalBinary() ([]byte, error) {
	if pk == nil || pk.APK == nil {
		return nil, ErrInvalidEncoding.WithDetails("nil BDN public key")
	}
	return pk.APK.Bytes(), nil
}

// UnmarshalBDNPublicKey decodes a BDN aggregate key
func UnmarshalBDNPublicKey(curve Curve, data []byte) (*BDNPublicKey, error) {
	apk, err := curve.LongPointFromBytes(data)
	if err != nil {
		return nil, err
	}
	return &BDNPublicKey{APK: apk}, nil
}

// MarshalBinary encodes S1 || S2
func (sig *OurMSSignature) MarshalBinary() ([]byte, error) {
	if sig == nil || sig.S1 == nil || sig.S2 == nil {
		return nil, ErrInvalidEncoding.WithDetails("nil OUR-MS signature")
	}
	return append(sig.S1.Bytes(), sig.S2.Bytes()...), nil
}

// UnmarshalOurMSSignature decodes S1 || S2
func UnmarshalOurMSSignature(curve Curve, data []byte) (*OurMSSignature, error) {
	size := curve.ShortPointSize()
	if len(data) != 2*size {
		return nil, ErrInvalidEncoding.WithDetails("OUR-MS signature length %d, want %d", len(data), 2*size)
	}
	s1, err := curve.ShortPointFromBytes(data[:size])
	if err != nil {
		return nil, err
	}
	s2, err := curve.ShortPointFromBytes(data[size:])
	if err != nil {
		return nil, err
	}
	return &OurMSSignature{S1: s1, S2: s2}, nil
}

// MarshalBinary encodes K1 || K2
func (pk *OurMSPublicKey) MarshalBinary() ([]byte, error) {
	if pk == nil || pk.K1 == nil || pk.K2 == nil {
		return nil, ErrInvalidEncoding.WithDetails("nil OUR-MS public key")
	}
	return append(pk.K1.Bytes(), pk.K2.Bytes()...), nil
}

// UnmarshalOurMSPublicKey decodes K1 || K2
func UnmarshalOurMSPublicKey(curve Curve, data []byte) (*OurMSPublicKey, error) {
	size := curve.LongPointSize()
	if len(data) != 2*size {
		return nil, ErrInvalidEncoding.WithDetails("OUR-MS public key length %d, want %d", len(data), 2*size)
	}
	k1, err := curve.LongPointFromBytes(data[:size])
	if err != nil {
		return nil, err
	}
	k2, err := curve.LongPointFromBytes(data[size:])
	if err != nil {
		return nil, err
	}
	return &OurMSPublicKey{K1: k1, K2: k2}, nil
}
