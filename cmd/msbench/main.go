// Command msbench runs and benchmarks the BDN-MS and OUR-MS multi-signature
// schemes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/canopy-network/canopy/lib/blsms"
	"github.com/canopy-network/canopy/lib/blsms/bench"
)

var log = logrus.WithField("prefix", "main")

func main() {
	app := cli.App{}
	app.Name = "msbench"
	app.Usage = "Run and benchmark pairing-based multi-signatures over BLS12-381"
	app.Flags = appFlags
	app.Before = func(c *cli.Context) error {
		level, err := logrus.ParseLevel(c.String(verbosityFlag.Name))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		formatter := new(logrus.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		logrus.SetFormatter(formatter)
		return nil
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	if c.Bool(interactiveFlag.Name) {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	result := blsms.NewDefaultConfigurationValidator().ValidateConfig(cfg)
	for _, w := range result.Warnings {
		log.Warn(w)
	}
	if !result.Valid {
		return cfg.Validate()
	}

	var opts []bench.RunnerOption
	if c.Bool(auditFlag.Name) {
		opts = append(opts, bench.WithSchemeOptions(blsms.WithAuditHandler(blsms.NewLogrusAuditHandler(nil))))
	}
	runner, err := bench.NewRunner(cfg, os.Stdout, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.WithFields(logrus.Fields{
		"scheme":    cfg.Scheme,
		"signers":   cfg.Signers,
		"ell":       cfg.BitLen,
		"curve":     cfg.Curve,
		"benchmark": cfg.Benchmark,
	}).Info("Starting run")

	results, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Rejected > 0 {
			return fmt.Errorf("%s: %d of %d rounds failed verification", res.Scheme, res.Rejected, res.Rounds)
		}
	}
	return nil
}
