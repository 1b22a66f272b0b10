package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pornin/go-shipovnik/internal/keystore"
)

func (a *app) keygenCmd() *cobra.Command {
	var out, name string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new key pair",
		Long: "Generate a new key pair. With --out, the keys are written " +
			"in hex to <out>.sk and <out>.pub; with --name they are " +
			"saved in the key store.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (out == "") == (name == "") {
				return errors.New("exactly one of --out and --name is required")
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
			sk, pk, err := s.KeyGen(rng)
			if err != nil {
				return errors.Wrap(err, "key generation")
			}
			a.log.Info("generated key pair", zap.Duration("elapsed", time.Since(start)))

			if name != "" {
				ks, err := a.openStore()
				if err != nil {
					return err
				}
				defer ks.Close()
				if err := ks.Put(name, keystore.KeyPair{Secret: sk, Public: pk}); err != nil {
					return err
				}
				a.log.Info("stored key pair", zap.String("name", name))
				return nil
			}
			if err := writeHexFile(out+".sk", sk, 0600); err != nil {
				return err
			}
			if err := writeHexFile(out+".pub", pk, 0644); err != nil {
				return err
			}
			a.log.Info("wrote key pair", zap.String("secret", out+".sk"),
				zap.String("public", out+".pub"))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file prefix")
	cmd.Flags().StringVar(&name, "name", "", "key store entry name")
	return cmd
}

// keySource selects a key either from a hex file or from the key store.
type keySource struct {
	file string
	name string
}

func (ks *keySource) bind(cmd *cobra.Command, fileFlag, what string) {
	cmd.Flags().StringVar(&ks.file, fileFlag, "", what+" file (hex)")
	cmd.Flags().StringVar(&ks.name, "name", "", "key store entry name")
}

func (a *app) loadKey(src keySource, secret bool) ([]byte, error) {
	if (src.file == "") == (src.name == "") {
		return nil, errors.New("exactly one key file or key name is required")
	}
	if src.file != "" {
		return readHexFile(src.file)
	}
	st, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	kp, err := st.Get(src.name)
	if err != nil {
		return nil, err
	}
	if !secret {
		return kp.Public, nil
	}
	if kp.Secret == nil {
		return nil, errors.Errorf("no secret key stored for %s", src.name)
	}
	return kp.Secret, nil
}
