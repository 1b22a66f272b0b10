package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pornin/go-shipovnik/shipovnik"
)

func (a *app) matrixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Public matrix utilities",
	}
	cmd.AddCommand(a.matrixExportCmd())
	return cmd
}

func (a *app) matrixExportCmd() *cobra.Command {
	var out, seed string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the public matrix in raw form",
		Long: "Write the configured public matrix (or, with --from-seed, " +
			"the matrix expanded from the given seed) in the raw format " +
			"accepted by --matrix.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var m *shipovnik.Matrix
			if seed != "" {
				m = shipovnik.ExpandMatrix([]byte(seed))
			} else {
				s, err := a.scheme()
				if err != nil {
					return err
				}
				m = s.Matrix()
			}
			if err := os.WriteFile(out, m.Bytes(), 0644); err != nil {
				return errors.Wrap(err, "writing matrix")
			}
			a.log.Info("exported matrix", zap.String("path", out),
				zap.Int("size", shipovnik.MatrixSize))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file")
	cmd.Flags().StringVar(&seed, "from-seed", "", "expand a new matrix from this seed string")
	cmd.MarkFlagRequired("out")
	return cmd
}
