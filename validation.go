package blsms

import (
	"encoding/hex"
	"fmt"
)

// SecurityLevel represents the assessed security level of scheme parameters
type SecurityLevel string

const (
	SecurityLevelLow    SecurityLevel = "low"
	SecurityLevelMedium SecurityLevel = "medium"
	SecurityLevelHigh   SecurityLevel = "high"
)

// ValidationResult contains the result of parameter validation
type ValidationResult struct {
	Valid           bool          `json:"valid"`
	SecurityLevel   SecurityLevel `json:"security_level"`
	Warnings        []string      `json:"warnings,omitempty"`
	Errors          []string      `json:"errors,omitempty"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

func newValidationResult(level SecurityLevel) *ValidationResult {
	return &ValidationResult{
		Valid:           true,
		SecurityLevel:   level,
		Warnings:        []string{},
		Errors:          []string{},
		Recommendations: []string{},
	}
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.SecurityLevel = SecurityLevelLow
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// merge folds other into r, keeping the lower security level
func (r *ValidationResult) merge(other *ValidationResult) {
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Recommendations = append(r.Recommendations, other.Recommendations...)
	r.SecurityLevel = minSecurityLevel(r.SecurityLevel, other.SecurityLevel)
}

// ValidateBitLengthParameter assesses an OUR-MS bit length
func ValidateBitLengthParameter(bitLen int) *ValidationResult {
	result := newValidationResult(SecurityLevelHigh)

	if err := ValidateBitLength(bitLen); err != nil {
		result.fail("bit length %d must be a multiple of 8 in [0, %d]", bitLen, MaxBitLength)
		return result
	}

	switch {
	case bitLen == 0:
		result.SecurityLevel = SecurityLevelLow
		result.Warnings = append(result.Warnings, "bit length 0 disables signature-derived randomisation of combiner coefficients")
		result.Recommendations = append(result.Recommendations, "use a bit length of at least 32")
	case bitLen < 32:
		result.SecurityLevel = SecurityLevelMedium
		result.Warnings = append(result.Warnings, fmt.Sprintf("bit length %d gives a small offset space", bitLen))
	}
	return result
}

// ValidateSignerSet checks that every public key decodes, is not the
// identity, and appears only once.
func ValidateSignerSet(curve Curve, set *SignerSet) *ValidationResult {
	result := newValidationResult(SecurityLevelHigh)

	if curve == nil {
		result.fail("curve cannot be nil")
		return result
	}
	if set.Len() == 0 {
		result.fail("signer set cannot be empty")
		return result
	}

	for i, kp := range set.Signers {
		if kp == nil {
			result.fail("signer %d is nil", i)
			continue
		}
		pk, err := kp.PublicPoint(curve)
		if err != nil {
			result.fail("signer %d public key does not decode: %v", i, err)
			continue
		}
		if pk.IsIdentity() {
			result.fail("signer %d public key is the identity", i)
		}
	}

	if duplicates := findDuplicatePublicKeys(set); len(duplicates) > 0 {
		for key, indices := range duplicates {
			result.fail("public key %s... shared by signers %v", key, indices)
		}
	}

	if result.Valid && set.Len() == 1 {
		result.SecurityLevel = SecurityLevelMedium
		result.Warnings = append(result.Warnings, "single signer, the multi-signature reduces to plain BLS")
	}
	return result
}

// findDuplicatePublicKeys groups signer indices by public key prefix
func findDuplicatePublicKeys(set *SignerSet) map[string][]int {
	seen := make(map[string][]int)
	for i, kp := range set.Signers {
		if kp == nil {
			continue
		}
		key := string(kp.Public)
		seen[key] = append(seen[key], i)
	}

	duplicates := make(map[string][]int)
	for key, indices := range seen {
		if len(indices) > 1 {
			prefix := []byte(key)
			if len(prefix) > 8 {
				prefix = prefix[:8]
			}
			duplicates[hex.EncodeToString(prefix)] = indices
		}
	}
	return duplicates
}

// minSecurityLevel returns the minimum security level between two SecurityLevel values
func minSecurityLevel(level1, level2 SecurityLevel) SecurityLevel {
	levelRanking := map[SecurityLevel]int{
		SecurityLevelLow:    1,
		SecurityLevelMedium: 2,
		SecurityLevelHigh:   3,
	}

	rank1, exists1 := levelRanking[level1]
	if !exists1 {
		rank1 = 2 // Default to medium if unknown
	}

	rank2, exists2 := levelRanking[level2]
	if !exists2 {
		rank2 = 2
	}

	if rank1 <= rank2 {
		return level1
	}
	return level2
}
