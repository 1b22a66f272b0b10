package main

import (
	"fmt"
	"io"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// benchReport holds the statistics of a benchmark run. Times are in
// milliseconds, sizes in bytes.
type benchReport struct {
	Iterations int
	Sign       summary
	Verify     summary
	Size       summary
}

type summary struct {
	Mean, Median, StdDev, Min, Max float64
}

func summarize(data stats.Float64Data) (summary, error) {
	var s summary
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	s.Max, err = stats.Max(data)
	return s, err
}

func (r *benchReport) print(w io.Writer) {
	fmt.Fprintf(w, "iterations: %d\n", r.Iterations)
	row := func(name, unit string, s summary) {
		fmt.Fprintf(w, "%-8s mean %10.2f  median %10.2f  stddev %8.2f  min %10.2f  max %10.2f %s\n",
			name, s.Mean, s.Median, s.StdDev, s.Min, s.Max, unit)
	}
	row("sign", "ms", r.Sign)
	row("verify", "ms", r.Verify)
	row("size", "B", r.Size)
}

func (a *app) benchCmd() *cobra.Command {
	var iterations, msgLen int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure key generation, signing and verification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations < 1 || msgLen < 1 {
				return errors.New("iterations and message length must be positive")
			}
			s, err := a.scheme()
			if err != nil {
				return err
			}
			rng, err := a.entropy()
			if err != nil {
				return err
			}
			sk, pk, err := s.KeyGen(rng)
			if err != nil {
				return err
			}

			var signT, verifyT, sizes stats.Float64Data
			msg := make([]byte, msgLen)
			for i := 0; i < iterations; i++ {
				msg[0] = byte(i)
				start := time.Now()
				sig, err := s.Sign(rng, sk, msg)
				if err != nil {
					return err
				}
				signT = append(signT, ms(time.Since(start)))

				start = time.Now()
				if !s.Verify(pk, msg, sig) {
					return errBadSignature
				}
				verifyT = append(verifyT, ms(time.Since(start)))
				sizes = append(sizes, float64(len(sig)))
				a.log.Debug("iteration", zap.Int("i", i), zap.Int("signature", len(sig)))
			}

			r := &benchReport{Iterations: iterations}
			if r.Sign, err = summarize(signT); err != nil {
				return err
			}
			if r.Verify, err = summarize(verifyT); err != nil {
				return err
			}
			if r.Size, err = summarize(sizes); err != nil {
				return err
			}
			r.print(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10, "number of sign/verify runs")
	cmd.Flags().IntVar(&msgLen, "msg-len", 64, "message length in bytes")
	return cmd
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
