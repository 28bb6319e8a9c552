package blsms

import (
	"os"
	"strings"

	"github.com/ghodss/yaml"
)

// Configuration defaults
const (
	DefaultSigners   = 3
	DefaultBitLength = 32
	DefaultRounds    = 1
	DefaultMessage   = "test message"
	MaxSigners       = 1 << 16
	SchemeBoth       = "both"
)

// Config describes one benchmark or single-execution run
type Config struct {
	// Scheme is "bdn", "ourms" or "both"
	Scheme      string `json:"scheme"`
	Signers     int    `json:"signers"`
	BitLen      int    `json:"bit_len"`
	Rounds      int    `json:"rounds"`
	Curve       string `json:"curve"`
	Hash        string `json:"hash"`
	Workers     int    `json:"workers"`
	Message     string `json:"message"`
	Benchmark   bool   `json:"benchmark"`
	MetricsFile string `json:"metrics_file,omitempty"`
}

// DefaultConfig returns a single execution of both schemes with three signers
func DefaultConfig() *Config {
	return &Config{
		Scheme:  SchemeBoth,
		Signers: DefaultSigners,
		BitLen:  DefaultBitLength,
		Rounds:  DefaultRounds,
		Curve:   string(BLS12381),
		Hash:    string(DefaultHashAlgorithm),
		Workers: 1,
		Message: DefaultMessage,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrInvalidConfiguration.WithContext("path", path).WithCause(err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ErrInvalidConfiguration.WithContext("path", path).WithCause(err)
	}
	return cfg, nil
}

// Schemes returns the schemes selected by the config in run order
func (c *Config) Schemes() ([]SchemeType, error) {
	switch strings.ToLower(strings.TrimSpace(c.Scheme)) {
	case "", SchemeBoth:
		return []SchemeType{SchemeBDN, SchemeOurMS}, nil
	default:
		s, err := ParseSchemeType(c.Scheme)
		if err != nil {
			return nil, err
		}
		return []SchemeType{s}, nil
	}
}

// Options converts the config into scheme options
func (c *Config) Options() ([]Option, error) {
	alg, err := ParseHashAlgorithm(c.Hash)
	if err != nil {
		return nil, err
	}
	return []Option{WithHashAlgorithm(alg), WithWorkers(c.Workers)}, nil
}

// ConfigurationValidator provides validation for run configurations
type ConfigurationValidator struct {
	maxSigners      int
	supportedCurves map[CurveType]bool
}

// NewDefaultConfigurationValidator creates a validator with default limits
func NewDefaultConfigurationValidator() *ConfigurationValidator {
	return &ConfigurationValidator{
		maxSigners: MaxSigners,
		supportedCurves: map[CurveType]bool{
			BLS12381:      true,
			BLS12381Kyber: true,
		},
	}
}

// ValidateConfig checks every field of cfg and aggregates the findings
func (cv *ConfigurationValidator) ValidateConfig(cfg *Config) *ValidationResult {
	result := newValidationResult(SecurityLevelHigh)
	if cfg == nil {
		result.fail("configuration cannot be nil")
		return result
	}

	schemes, err := cfg.Schemes()
	if err != nil {
		result.fail("unsupported scheme %q", cfg.Scheme)
	}

	if cfg.Signers <= 0 {
		result.fail("signer count must be positive, got %d", cfg.Signers)
	} else if cfg.Signers > cv.maxSigners {
		result.fail("signer count %d exceeds maximum %d", cfg.Signers, cv.maxSigners)
	} else if cfg.Signers == 1 {
		result.Warnings = append(result.Warnings, "single signer, the multi-signature reduces to plain BLS")
		result.SecurityLevel = minSecurityLevel(result.SecurityLevel, SecurityLevelMedium)
	}

	if cfg.Rounds <= 0 {
		result.fail("rounds must be positive, got %d", cfg.Rounds)
	}
	if !cfg.Benchmark && cfg.Rounds > 1 {
		result.Warnings = append(result.Warnings, "rounds is ignored outside benchmark mode")
	}

	curve := CurveType(cfg.Curve)
	if curve == "" {
		curve = BLS12381
	}
	if !cv.supportedCurves[curve] {
		result.fail("unsupported curve %q", cfg.Curve)
	}

	if _, err := ParseHashAlgorithm(cfg.Hash); err != nil {
		result.fail("unsupported hash %q", cfg.Hash)
	}

	if cfg.Workers < 0 {
		result.fail("workers cannot be negative, got %d", cfg.Workers)
	}

	for _, s := range schemes {
		if s == SchemeOurMS {
			result.merge(ValidateBitLengthParameter(cfg.BitLen))
		}
	}
	return result
}

// Validate returns ErrInvalidConfiguration listing every error found
func (c *Config) Validate() error {
	result := NewDefaultConfigurationValidator().ValidateConfig(c)
	if result.Valid {
		return nil
	}
	return ErrInvalidConfiguration.
		WithDetails("%s", strings.Join(result.Errors, "; ")).
		WithContext("errors", result.Errors)
}
