// Package bench drives rounds of setup, signing, combination, key
// aggregation and verification for the multi-signature schemes and reports
// per-phase timings.
package bench

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/canopy-network/canopy/lib/blsms"
)

var log = logrus.WithField("prefix", "bench")

// Phase names one timed step of a round
type Phase string

const (
	PhaseSetup         Phase = "setup"
	PhaseSign          Phase = "sign"
	PhaseCombine       Phase = "combine"
	PhaseAggregateKeys Phase = "aggregate_keys"
	PhaseVerify        Phase = "verify"
)

// Timings holds one duration per phase
type Timings struct {
	Setup         time.Duration
	Sign          time.Duration
	Combine       time.Duration
	AggregateKeys time.Duration
	Verify        time.Duration
}

func (t Timings) add(o Timings) Timings {
	return Timings{
		Setup:         t.Setup + o.Setup,
		Sign:          t.Sign + o.Sign,
		Combine:       t.Combine + o.Combine,
		AggregateKeys: t.AggregateKeys + o.AggregateKeys,
		Verify:        t.Verify + o.Verify,
	}
}

func (t Timings) div(n int) Timings {
	d := time.Duration(n)
	return Timings{
		Setup:         t.Setup / d,
		Sign:          t.Sign / d,
		Combine:       t.Combine / d,
		AggregateKeys: t.AggregateKeys / d,
		Verify:        t.Verify / d,
	}
}

// Artifacts are the hex encoded outputs of the last round
type Artifacts struct {
	Signature map[string]string
	PublicKey map[string]string
}

// Result summarises the rounds run for one scheme
type Result struct {
	Scheme   blsms.SchemeType
	Signers  int
	BitLen   int
	Rounds   int
	Average  Timings
	Verified int
	Rejected int
	Last     *Artifacts
}

// Runner executes a Config against the selected schemes
type Runner struct {
	cfg     *blsms.Config
	curve   blsms.Curve
	opts    []blsms.Option
	out     io.Writer
	metrics *Metrics
}

// RunnerOption customises a Runner
type RunnerOption func(*Runner)

// WithSchemeOptions appends options passed to every scheme
func WithSchemeOptions(opts ...blsms.Option) RunnerOption {
	return func(r *Runner) { r.opts = append(r.opts, opts...) }
}

// WithMetrics replaces the runner's metrics collector
func WithMetrics(m *Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner validates cfg and prepares the curve. Progress and results are
// written to out; a nil out discards them.
func NewRunner(cfg *blsms.Config, out io.Writer, opts ...RunnerOption) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	curve, err := blsms.NewCurve(blsms.CurveType(cfg.Curve))
	if err != nil {
		return nil, err
	}
	schemeOpts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}
	r := &Runner{
		cfg:     cfg,
		curve:   curve,
		opts:    schemeOpts,
		out:     out,
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Metrics returns the collector fed by the runner
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run executes every selected scheme and returns one Result per scheme
func (r *Runner) Run(ctx context.Context) ([]*Result, error) {
	schemes, err := r.cfg.Schemes()
	if err != nil {
		return nil, err
	}

	rounds := 1
	if r.cfg.Benchmark {
		rounds = r.cfg.Rounds
	}

	results := make([]*Result, 0, len(schemes))
	for _, scheme := range schemes {
		res, err := r.runScheme(ctx, scheme, rounds)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	if r.cfg.MetricsFile != "" {
		if err := r.metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
			return results, fmt.Errorf("write metrics to %s: %w", r.cfg.MetricsFile, err)
		}
	}
	return results, nil
}

func (r *Runner) runScheme(ctx context.Context, scheme blsms.SchemeType, rounds int) (*Result, error) {
	round, err := r.roundFunc(scheme)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(r.out, "\n=================================\n")
	fmt.Fprintf(r.out, "This is %s with %d signers\n", displayName(scheme), r.cfg.Signers)
	fmt.Fprintf(r.out, "=================================\n\n")

	res := &Result{Scheme: scheme, Signers: r.cfg.Signers, Rounds: rounds}
	if scheme == blsms.SchemeOurMS {
		res.BitLen = r.cfg.BitLen
	}

	var total Timings
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.cfg.Benchmark {
			fmt.Fprintf(r.out, "\rRunning round %d/%d", i, rounds)
		}

		t, valid, artifacts, err := round(ctx)
		if err != nil {
			log.WithError(err).WithField("scheme", scheme).WithField("round", i).Error("Round failed")
			return nil, err
		}
		r.observe(scheme, t, valid)
		total = total.add(t)
		if valid {
			res.Verified++
		} else {
			res.Rejected++
		}
		res.Last = artifacts

		if !r.cfg.Benchmark {
			r.printSingle(t, valid, artifacts)
		}
	}
	res.Average = total.div(rounds)

	if r.cfg.Benchmark {
		fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", 30))
		r.printAverages(rounds, res.Average)
	}
	return res, nil
}

type roundFunc func(ctx context.Context) (Timings, bool, *Artifacts, error)

func (r *Runner) roundFunc(scheme blsms.SchemeType) (roundFunc, error) {
	msg := []byte(r.cfg.Message)
	switch scheme {
	case blsms.SchemeBDN:
		s, err := blsms.NewBDNScheme(r.curve, r.opts...)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (Timings, bool, *Artifacts, error) {
			return RunBDNRound(ctx, s, r.cfg.Signers, msg)
		}, nil
	case blsms.SchemeOurMS:
		s, err := blsms.NewOurMSScheme(r.curve, r.cfg.BitLen, r.opts...)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (Timings, bool, *Artifacts, error) {
			return RunOurMSRound(ctx, s, r.cfg.Signers, msg)
		}, nil
	default:
		return nil, blsms.ErrUnsupportedScheme.WithContext("scheme", string(scheme))
	}
}

// RunBDNRound runs one full BDN round with fresh keys
func RunBDNRound(ctx context.Context, s *blsms.BDNScheme, n int, msg []byte) (Timings, bool, *Artifacts, error) {
	var t Timings

	start := time.Now()
	set, err := s.Setup(ctx, n)
	t.Setup = time.Since(start)
	if err != nil {
		return t, false, nil, err
	}
	defer set.Zeroize()

	start = time.Now()
	shares, err := s.Sign(ctx, set, msg)
	t.Sign = time.Since(start)
	if err != nil {
		return t, false, nil, err
	}

	start = time.Now()
	sig, err := s.Combine(shares)
	t.Combine = time.Since(start)
	if err != nil {
		return t, false, nil, err
	}

	start = time.Now()
	apk, err := s.AggregateKeys(set)
	t.AggregateKeys = time.Since(start)
	if err != nil {
		return t, false, nil, err
	}

	start = time.Now()
	valid := s.Verify(msg, sig, apk)
	t.Verify = time.Since(start)

	artifacts := &Artifacts{
		Signature: map[string]string{"sigma": hex.EncodeToString(sig.Sigma.Bytes())},
		PublicKey: map[string]string{"apk": hex.EncodeToString(apk.APK.Bytes())},
	}
	return t, valid, artifacts, nil
}

// RunOurMSRound runs one full OUR-MS round with fresh keys
func RunOurMSRound(ctx context.Context, s *blsms.OurMSScheme, n int, msg []byte) (Timings, bool, *Artifacts, error) {
	var t Timings

	start := time.Now()
	set, err := s.Setup(ctx, n)
	t.Setup = time.Since(start)
	if err != nil {
		return t, false, nil, err
	}
	defer set.Zeroize()

	start = time.Now()
	shares, err := s.Sign(ctx, set, msg)
	t.Sign = time.Since(start)
	if err != nil {
		return t, false, nil, err
	}

	start = time.Now()
	sig, err := s.Combine(shares, set)
	t.Combine = time.Since(start)
	if err != nil {
		return t, false, nil, err
	}

	start = time.Now()
	pk, err := s.AggregateKeys(set, sig.S2)
	t.AggregateKeys = time.Since(start)
	if err != nil {
		return t, false, nil, err
	}

	start = time.Now()
	valid := s.Verify(msg, sig, pk)
	t.Verify = time.Since(start)

	artifacts := &Artifacts{
		Signature: map[string]string{
			"s1": hex.EncodeToString(sig.S1.Bytes()),
			"s2": hex.EncodeToString(sig.S2.Bytes()),
		},
		PublicKey: map[string]string{
			"k1": hex.EncodeToString(pk.K1.Bytes()),
			"k2": hex.EncodeToString(pk.K2.Bytes()),
		},
	}
	return t, valid, artifacts, nil
}

func (r *Runner) observe(scheme blsms.SchemeType, t Timings, valid bool) {
	name := string(scheme)
	r.metrics.Observe(name, PhaseSetup, t.Setup)
	r.metrics.Observe(name, PhaseSign, t.Sign)
	r.metrics.Observe(name, PhaseCombine, t.Combine)
	r.metrics.Observe(name, PhaseAggregateKeys, t.AggregateKeys)
	r.metrics.Observe(name, PhaseVerify, t.Verify)
	r.metrics.RecordVerification(name, valid)
}

func (r *Runner) printSingle(t Timings, valid bool, a *Artifacts) {
	fmt.Fprintf(r.out, "%d BLS Setup OK, completed in %s\n", r.cfg.Signers, FormatNanos(t.Setup))
	fmt.Fprintf(r.out, "All %d signers signed in: %s\n\n", r.cfg.Signers, FormatNanos(t.Sign))
	printHex(r.out, a.Signature)
	fmt.Fprintf(r.out, "Combining time taken: %s\n\n", FormatNanos(t.Combine))
	printHex(r.out, a.PublicKey)
	fmt.Fprintf(r.out, "AggPK time taken: %s\n\n", FormatNanos(t.AggregateKeys))
	if valid {
		fmt.Fprintln(r.out, "Signature verified.")
	} else {
		fmt.Fprintln(r.out, "Signature NOT verified.")
	}
	fmt.Fprintf(r.out, "Verify time taken: %s\n\n", FormatNanos(t.Verify))
}

func (r *Runner) printAverages(rounds int, avg Timings) {
	fmt.Fprintf(r.out, "Average timing for %d rounds:\n\n", rounds)
	fmt.Fprintf(r.out, "Setup time taken  : %s\n", FormatNanos(avg.Setup))
	fmt.Fprintf(r.out, "Signing time taken: %s\n", FormatNanos(avg.Sign))
	fmt.Fprintf(r.out, "Combine time taken: %s\n", FormatNanos(avg.Combine))
	fmt.Fprintf(r.out, "PK Agg time taken : %s\n", FormatNanos(avg.AggregateKeys))
	fmt.Fprintf(r.out, "Verify time taken : %s\n", FormatNanos(avg.Verify))
}

func printHex(out io.Writer, values map[string]string) {
	for _, key := range []string{"sigma", "s1", "s2", "apk", "k1", "k2"} {
		if v, ok := values[key]; ok {
			fmt.Fprintf(out, "%s: 0x%s\n", strings.ToUpper(key), v)
		}
	}
}

func displayName(scheme blsms.SchemeType) string {
	switch scheme {
	case blsms.SchemeBDN:
		return "BDN-MS"
	case blsms.SchemeOurMS:
		return "OUR-MS"
	default:
		return string(scheme)
	}
}
