package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errBadSignature = errors.New("signature verification failed")

func (a *app) verifyCmd() *cobra.Command {
	var key keySource
	var in, sigFile string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature",
		Long: "Verify a signature. Prints OK and exits with status 0 on " +
			"success; exits with a non-zero status otherwise.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := a.loadKey(key, false)
			if err != nil {
				return err
			}
			msg, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			sig, err := readHexFile(sigFile)
			if err != nil {
				return err
			}
			s, err := a.scheme()
			if err != nil {
				return err
			}
			start := time.Now()
			ok := s.Verify(pk, msg, sig)
			a.log.Info("verified signature",
				zap.Bool("valid", ok),
				zap.Int("signature", len(sig)),
				zap.Duration("elapsed", time.Since(start)))
			if !ok {
				return errBadSignature
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	key.bind(cmd, "pub", "public key")
	cmd.Flags().StringVar(&in, "in", "-", "message file (- for stdin)")
	cmd.Flags().StringVar(&sigFile, "sig", "", "signature file (hex)")
	cmd.MarkFlagRequired("sig")
	return cmd
}
