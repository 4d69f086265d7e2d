package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/hengadev/blindx"
)

func newSelftestCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Derives a session, verifies the matrix and round-trips a message",
		Long: `Derives the session material with orthonormality verification forced on,
reports how long the derivation took, blinds a unit vector and checks its
norm, then encrypts and decrypts a sample message.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cfg.VerifyOrthonormality = true

			collector := blindx.NewInMemoryMetricsCollector()
			session, logger, err := opts.newSession(cfg, blindx.NewMetricsTraceHook(collector))
			if err != nil {
				return err
			}
			defer session.Clear()

			stop := startSpinner("Deriving blinding matrix and key...", opts.verbose)
			start := time.Now()
			err = opts.initialize(ctx, session)
			elapsed := time.Since(start)
			stop()
			if err != nil {
				fmt.Fprintf(out, "%s derivation      failed\n", failMark)
				return err
			}
			logger.InfoContext(ctx, "selftest derivation finished", "session_id", session.ID(), "duration", elapsed)
			fmt.Fprintf(out, "%s derivation      ok  %s (dimension %d, tolerance %g)\n", okMark, elapsed.Round(time.Millisecond), blindx.Dimension, cfg.Tolerance)

			unit := make([]float64, blindx.Dimension)
			unit[0] = 1
			blinded, err := session.Transform(ctx, unit)
			if err != nil {
				return err
			}
			var sum float64
			for _, v := range blinded {
				sum += v * v
			}
			if n := math.Sqrt(sum); math.Abs(n-1) > 1e-9 {
				fmt.Fprintf(out, "%s transform       failed\n", failMark)
				return fmt.Errorf("%w: blinded unit vector has norm %g", blindx.ErrMatrixConstruction, n)
			}
			fmt.Fprintf(out, "%s transform       ok  unit vector norm preserved\n", okMark)

			const sample = "blindx selftest ✓"
			ciphertext, err := session.EncryptText(ctx, sample)
			if err != nil {
				return err
			}
			plaintext, err := session.DecryptText(ctx, ciphertext)
			if err != nil {
				return err
			}
			if plaintext != sample {
				fmt.Fprintf(out, "%s encrypt/decrypt failed\n", failMark)
				return fmt.Errorf("%w: round trip returned different text", blindx.ErrDecryptionFailed)
			}
			fmt.Fprintf(out, "%s encrypt/decrypt ok  round trip matches\n", okMark)

			for _, op := range []string{blindx.OperationTransform, blindx.OperationEncrypt, blindx.OperationDecrypt} {
				timings := collector.GetTimings("blindx.operation.duration", map[string]string{"operation": op})
				if len(timings) > 0 {
					fmt.Fprintf(out, "  %-9s %s\n", op, timings[0])
				}
			}
			return nil
		},
	}
}
