package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) signCmd() *cobra.Command {
	var key keySource
	var in, out string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sk, err := a.loadKey(key, true)
			if err != nil {
				return err
			}
			msg, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			s, err := a.scheme()
			if err != nil {
				return err
			}
			rng, err := a.entropy()
			if err != nil {
				return err
			}
			start := time.Now()
			sig, err := s.Sign(rng, sk, msg)
			if err != nil {
				return errors.Wrap(err, "signing")
			}
			a.log.Info("signed message",
				zap.Int("message", len(msg)),
				zap.Int("signature", len(sig)),
				zap.Duration("elapsed", time.Since(start)))
			return writeHexFile(out, sig, 0644)
		},
	}
	key.bind(cmd, "key", "secret key")
	cmd.Flags().StringVar(&in, "in", "-", "message file (- for stdin)")
	cmd.Flags().StringVar(&out, "out", "", "signature output file")
	cmd.MarkFlagRequired("out")
	return cmd
}
