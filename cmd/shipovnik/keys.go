package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pornin/go-shipovnik/internal/keystore"
)

func (a *app) keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the key store",
	}
	cmd.AddCommand(a.keysListCmd())
	cmd.AddCommand(a.keysImportCmd())
	cmd.AddCommand(a.keysExportCmd())
	cmd.AddCommand(a.keysDeleteCmd())
	return cmd
}

func (a *app) keysListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			names, err := st.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				kp, err := st.Get(name)
				if err != nil {
					return err
				}
				kind := "public"
				if kp.Secret != nil {
					kind = "secret"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, kind)
			}
			return nil
		},
	}
}

func (a *app) keysImportCmd() *cobra.Command {
	var skFile, pkFile string
	cmd := &cobra.Command{
		Use:   "import NAME",
		Short: "Import a key from hex files",
		Long: "Import a key. With --key the public key is recomputed from " +
			"the secret key; with --pub only the public key is stored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kp keystore.KeyPair
			switch {
			case skFile != "" && pkFile == "":
				sk, err := readHexFile(skFile)
				if err != nil {
					return err
				}
				s, err := a.scheme()
				if err != nil {
					return err
				}
				pk, err := s.PublicKey(sk)
				if err != nil {
					return err
				}
				kp = keystore.KeyPair{Secret: sk, Public: pk}
			case pkFile != "" && skFile == "":
				pk, err := readHexFile(pkFile)
				if err != nil {
					return err
				}
				kp = keystore.KeyPair{Public: pk}
			default:
				return errors.New("exactly one of --key and --pub is required")
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Put(args[0], kp); err != nil {
				return err
			}
			a.log.Info("imported key", zap.String("name", args[0]),
				zap.Bool("secret", kp.Secret != nil))
			return nil
		},
	}
	cmd.Flags().StringVar(&skFile, "key", "", "secret key file (hex)")
	cmd.Flags().StringVar(&pkFile, "pub", "", "public key file (hex)")
	return cmd
}

func (a *app) keysExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Write a stored key to hex files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			kp, err := st.Get(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = args[0]
			}
			if err := writeHexFile(out+".pub", kp.Public, 0644); err != nil {
				return err
			}
			if kp.Secret != nil {
				return writeHexFile(out+".sk", kp.Secret, 0600)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file prefix (default NAME)")
	return cmd
}

func (a *app) keysDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			return st.Delete(args[0])
		},
	}
}
