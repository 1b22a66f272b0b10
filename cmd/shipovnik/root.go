package main

import (
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pornin/go-shipovnik/internal/keystore"
	"github.com/pornin/go-shipovnik/shipovnik"
)

const envPrefix = "SHIPOVNIK"

// Configuration keys, shared by flags, environment and config file.
const (
	keyConfig   = "config"
	keyLogLevel = "log-level"
	keyMatrix   = "matrix"
	keyWorkers  = "workers"
	keyKeystore = "keystore"
	keySeed     = "seed"
)

// app carries what every command needs once the configuration has been
// resolved.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "shipovnik",
		Short:         "Shipovnik code-based signatures",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "configuration file (yaml, json or toml)")
	flags.String(keyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(keyMatrix, "", "raw public matrix file (empty for the built-in matrix)")
	flags.Int(keyWorkers, 0, "rounds computed concurrently (0 for GOMAXPROCS)")
	flags.String(keyKeystore, "", "key store file")
	flags.String(keySeed, "", "hex seed for deterministic entropy (testing only)")
	a.v.BindPFlags(flags)

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(a.keygenCmd())
	root.AddCommand(a.signCmd())
	root.AddCommand(a.verifyCmd())
	root.AddCommand(a.keysCmd())
	root.AddCommand(a.matrixCmd())
	root.AddCommand(a.benchCmd())
	return root
}

func (a *app) init() error {
	if path := a.v.GetString(keyConfig); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", path)
		}
	}
	log, err := newLogger(a.v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

// scheme builds the signature scheme from the configured matrix and
// worker count.
func (a *app) scheme() (*shipovnik.Scheme, error) {
	var m *shipovnik.Matrix
	if path := a.v.GetString(keyMatrix); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening matrix")
		}
		defer f.Close()
		if m, err = shipovnik.LoadMatrix(f); err != nil {
			return nil, errors.Wrapf(err, "loading matrix %s", path)
		}
		a.log.Debug("loaded public matrix", zap.String("path", path))
	}
	return shipovnik.NewScheme(m, a.v.GetInt(keyWorkers)), nil
}

// entropy returns the random source: nil (the OS RNG) unless a seed is
// configured.
func (a *app) entropy() (io.Reader, error) {
	s := a.v.GetString(keySeed)
	if s == "" {
		return nil, nil
	}
	seed, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid seed")
	}
	a.log.Warn("using deterministic entropy from seed")
	return shipovnik.NewSeededReader(seed), nil
}

func (a *app) openStore() (*keystore.Store, error) {
	path := a.v.GetString(keyKeystore)
	if path == "" {
		return nil, errors.New("no key store configured")
	}
	return keystore.Open(path)
}

func readHexFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return b, nil
}

func writeHexFile(path string, b []byte, perm os.FileMode) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(b)+"\n"), perm)
}

// readInput reads a whole file, or standard input for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
