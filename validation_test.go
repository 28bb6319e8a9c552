package blsms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateBitLengthParameter(t *testing.T) {
	tests := []struct {
		bitLen int
		valid  bool
		level  SecurityLevel
	}{
		{0, true, SecurityLevelLow},
		{8, true, SecurityLevelMedium},
		{24, true, SecurityLevelMedium},
		{32, true, SecurityLevelHigh},
		{64, true, SecurityLevelHigh},
		{7, false, SecurityLevelLow},
		{72, false, SecurityLevelLow},
	}
	for _, tt := range tests {
		result := ValidateBitLengthParameter(tt.bitLen)
		require.Equal(t, tt.valid, result.Valid, "bitLen %d", tt.bitLen)
		require.Equal(t, tt.level, result.SecurityLevel, "bitLen %d", tt.bitLen)
	}
}

func TestValidateSignerSet(t *testing.T) {
	curve := NewGnarkCurve()
	set := fixedSet(t, curve, 3)

	result := ValidateSignerSet(curve, set)
	require.True(t, result.Valid, result.Errors)
	require.Equal(t, SecurityLevelHigh, result.SecurityLevel)

	single := ValidateSignerSet(curve, NewSignerSet(set.Signers[0]))
	require.True(t, single.Valid)
	require.Equal(t, SecurityLevelMedium, single.SecurityLevel)
	require.NotEmpty(t, single.Warnings)

	dup := ValidateSignerSet(curve, NewSignerSet(set.Signers[0], set.Signers[1], set.Signers[0]))
	require.False(t, dup.Valid)
	require.Len(t, dup.Errors, 1)
	require.Contains(t, dup.Errors[0], "[0 2]")

	identity := &KeyPair{Public: curve.LongIdentity().Bytes()}
	require.False(t, ValidateSignerSet(curve, NewSignerSet(set.Signers[0], identity)).Valid)

	garbage := &KeyPair{Public: []byte{0xde, 0xad}}
	require.False(t, ValidateSignerSet(curve, NewSignerSet(garbage)).Valid)

	require.False(t, ValidateSignerSet(curve, NewSignerSet()).Valid)
	require.False(t, ValidateSignerSet(nil, set).Valid)
	require.False(t, ValidateSignerSet(curve, NewSignerSet(nil)).Valid)
}

func TestMinSecurityLevel(t *testing.T) {
	require.Equal(t, SecurityLevelLow, minSecurityLevel(SecurityLevelHigh, SecurityLevelLow))
	require.Equal(t, SecurityLevelMedium, minSecurityLevel(SecurityLevelMedium, SecurityLevelHigh))
	require.Equal(t, SecurityLevelHigh, minSecurityLevel(SecurityLevelHigh, SecurityLevelHigh))
}
