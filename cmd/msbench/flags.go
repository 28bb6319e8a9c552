package main

import (
	"github.com/urfave/cli/v2"

	"github.com/canopy-network/canopy/lib/blsms"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config-file",
		Usage: "YAML file with run parameters; flags override its values",
	}
	schemeFlag = &cli.StringFlag{
		Name:  "scheme",
		Usage: "Scheme to run: bdn, ourms or both",
		Value: blsms.SchemeBoth,
	}
	signersFlag = &cli.IntFlag{
		Name:  "signers",
		Usage: "Number of multi-signature signers",
		Value: blsms.DefaultSigners,
	}
	bitLenFlag = &cli.IntFlag{
		Name:  "ell",
		Usage: "Bit length of the OUR-MS signature hash prefix, a multiple of 8 in [0, 64]",
		Value: blsms.DefaultBitLength,
	}
	benchmarkFlag = &cli.BoolFlag{
		Name:  "benchmark",
		Usage: "Average timings over --rounds instead of a single execution",
	}
	roundsFlag = &cli.IntFlag{
		Name:  "rounds",
		Usage: "Number of benchmark rounds",
		Value: blsms.DefaultRounds,
	}
	curveFlag = &cli.StringFlag{
		Name:  "curve",
		Usage: "Curve backend: bls12-381 (gnark-crypto) or bls12-381-kyber",
		Value: string(blsms.BLS12381),
	}
	hashFlag = &cli.StringFlag{
		Name:  "hash",
		Usage: "Digest for coefficient derivation: sha256, blake2b-256 or sha3-256",
		Value: string(blsms.DefaultHashAlgorithm),
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Signers processed concurrently during setup and signing",
		Value: 1,
	}
	messageFlag = &cli.StringFlag{
		Name:  "message",
		Usage: "Message every signer signs",
		Value: blsms.DefaultMessage,
	}
	metricsFileFlag = &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "Write Prometheus text-format phase metrics to this path",
	}
	interactiveFlag = &cli.BoolFlag{
		Name:  "interactive",
		Usage: "Ask for run parameters on the terminal",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info, warn, error)",
		Value: "info",
	}
	auditFlag = &cli.BoolFlag{
		Name:  "audit",
		Usage: "Log every scheme phase as a structured audit event",
	}
)

var appFlags = []cli.Flag{
	configFileFlag,
	schemeFlag,
	signersFlag,
	bitLenFlag,
	benchmarkFlag,
	roundsFlag,
	curveFlag,
	hashFlag,
	workersFlag,
	messageFlag,
	metricsFileFlag,
	interactiveFlag,
	verbosityFlag,
	auditFlag,
}

// configFromContext builds a Config from the optional file and any flags set
func configFromContext(c *cli.Context) (*blsms.Config, error) {
	cfg := blsms.DefaultConfig()
	if path := c.String(configFileFlag.Name); path != "" {
		loaded, err := blsms.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flag defaults only apply when no file supplied the value.
	fromFile := c.String(configFileFlag.Name) != ""
	use := func(name string) bool { return c.IsSet(name) || !fromFile }

	if use(schemeFlag.Name) {
		cfg.Scheme = c.String(schemeFlag.Name)
	}
	if use(signersFlag.Name) {
		cfg.Signers = c.Int(signersFlag.Name)
	}
	if use(bitLenFlag.Name) {
		cfg.BitLen = c.Int(bitLenFlag.Name)
	}
	if use(benchmarkFlag.Name) {
		cfg.Benchmark = c.Bool(benchmarkFlag.Name)
	}
	if use(roundsFlag.Name) {
		cfg.Rounds = c.Int(roundsFlag.Name)
	}
	if use(curveFlag.Name) {
		cfg.Curve = c.String(curveFlag.Name)
	}
	if use(hashFlag.Name) {
		cfg.Hash = c.String(hashFlag.Name)
	}
	if use(workersFlag.Name) {
		cfg.Workers = c.Int(workersFlag.Name)
	}
	if use(messageFlag.Name) {
		cfg.Message = c.String(messageFlag.Name)
	}
	if c.IsSet(metricsFileFlag.Name) {
		cfg.MetricsFile = c.String(metricsFileFlag.Name)
	}
	return cfg, nil
}
