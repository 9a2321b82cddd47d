// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// dist reads newline-separated numbers from stdin and describes their
// distribution. With --components k, it also fits a mixture of k
// normal distributions to the numbers by expectation-maximization.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-probdist/stats"
	"github.com/aclements/go-probdist/stats/mixture"
	"github.com/spf13/cobra"
)

type config struct {
	components    int
	maxIterations int
	threshold     float64
	logarithm     bool
	parallel      int
	verbose       bool
	plot          bool
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:   "dist",
		Short: "Describe the distribution of numbers read from stdin",
		Long: `dist reads newline-separated numbers from stdin and prints summary
statistics, quantiles, and a kernel density estimate of their
distribution. With --components, it also fits a Gaussian mixture.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if cfg.verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			s, err := readInput(cmd.InOrStdin())
			if err != nil {
				return err
			}
			log.Debug("read input", "n", len(s.Xs))
			return describe(cmd.OutOrStdout(), s, &cfg, log)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&cfg.components, "components", "k", 0, "fit a mixture of `k` normal distributions")
	f.IntVar(&cfg.maxIterations, "max-iterations", stats.DefaultMaxIterations, "maximum EM iterations")
	f.Float64Var(&cfg.threshold, "threshold", stats.DefaultThreshold, "relative log-likelihood change at which EM stops")
	f.BoolVar(&cfg.logarithm, "log", false, "run EM in the log domain")
	f.IntVar(&cfg.parallel, "parallel", 1, "number of goroutines for the EM expectation step")
	f.BoolVarP(&cfg.verbose, "verbose", "v", false, "log EM progress to stderr")
	f.BoolVar(&cfg.plot, "plot", false, "plot the kernel density estimate")
	return cmd
}

func readInput(r io.Reader) (sample stats.Sample, err error) {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}
		value, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return sample, fmt.Errorf("line %d: %w", line, err)
		}
		if math.IsNaN(value) {
			return sample, fmt.Errorf("line %d: NaN", line)
		}
		sample.Xs = append(sample.Xs, value)
	}
	if err := scanner.Err(); err != nil {
		return sample, err
	}
	if len(sample.Xs) == 0 {
		return sample, fmt.Errorf("no input")
	}
	return sample, nil
}

func describe(w io.Writer, s stats.Sample, cfg *config, log *slog.Logger) error {
	s.Sort()

	fmt.Fprintf(w, "N %d  sum %.6g  mean %.6g", len(s.Xs), s.Sum(), s.Mean())
	gmean := s.GeoMean()
	if !math.IsNaN(gmean) {
		fmt.Fprintf(w, "  gmean %.6g", gmean)
	}
	fmt.Fprintf(w, "  std dev %.6g  variance %.6g\n", s.StdDev(), s.Variance())
	fmt.Fprintln(w)

	// Quartiles and tails.
	labels := map[int]string{0: "min", 50: "median", 100: "max"}
	for _, p := range []int{0, 1, 5, 25, 50, 75, 95, 99, 100} {
		label, ok := labels[p]
		if !ok {
			label = fmt.Sprintf("%d%%ile", p)
		}
		fmt.Fprintf(w, "%8s %.6g\n", label, s.Percentile(float64(p)))
	}
	lo, hi := s.QuantileCI(0.5, 0.95)
	fmt.Fprintf(w, "median 95%% CI [%.6g, %.6g]\n", lo, hi)
	fmt.Fprintln(w)

	// Kernel density estimate.
	kde := stats.KDE{}
	if s.StdDev() == 0 || len(s.Xs) < 2 {
		kde.Kernel = stats.DeltaKernel
	}
	d := kde.From(s)
	fmt.Fprintf(w, "KDE %v  median %.6g  mode %.6g\n", kde.Kernel, d.Median(), d.Mode())
	if cfg.plot && kde.Kernel != stats.DeltaKernel {
		fprintPDF(w, d)
	}

	if cfg.components <= 0 {
		return nil
	}
	fmt.Fprintln(w)
	return fitMixture(w, s, cfg, log)
}

// fitMixture fits a mixture of cfg.components normal distributions to
// s, starting from normals spread evenly over s's quantiles.
func fitMixture(w io.Writer, s stats.Sample, cfg *config, log *slog.Logger) error {
	k := cfg.components
	sigma := s.StdDev() / float64(k)
	if !(sigma > 0) {
		sigma = 1
	}
	comps := make([]*stats.Continuous, k)
	for i := range comps {
		comps[i] = stats.NewNormal(s.Quantile((float64(i)+0.5)/float64(k)), sigma)
	}
	mix, err := mixture.NewUnivariate(comps, nil)
	if err != nil {
		return err
	}

	opts := &stats.FitOptions{
		MaxIterations: cfg.maxIterations,
		Threshold:     cfg.threshold,
		Logarithm:     cfg.logarithm,
		Parallelism:   cfg.parallel,
		Logger:        log,
		Inner: &stats.FitOptions{
			// Keep components that collapse onto a single
			// value well defined.
			Model: stats.NormalOptions{Regularization: 1e-9 * (1 + s.Variance())},
		},
	}
	if err := mix.Fit(s.Xs, nil, opts); err != nil {
		return fmt.Errorf("fitting %d-component mixture: %w", k, err)
	}

	fmt.Fprintf(w, "mixture of %d normals  iterations %d  log-likelihood %.6g\n", k, opts.Iterations, mix.LogLikelihood(s.Xs, nil))
	fmt.Fprintf(w, "%8s %12s %12s %12s\n", "", "mean", "std dev", "coefficient")
	for i := 0; i < mix.Len(); i++ {
		c := mix.Component(i)
		fmt.Fprintf(w, "%8d %12.6g %12.6g %12.6g\n", i, c.Distribution.Mean(), c.Distribution.StdDev(), c.Coefficient)
	}
	return nil
}
