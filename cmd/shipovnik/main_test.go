package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pornin/go-shipovnik/shipovnik"
)

// run executes the command line with args and returns its standard
// output.
func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path string, data []byte) {
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestFileKeys(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "alice")
	msgFile := filepath.Join(dir, "msg")
	sigFile := filepath.Join(dir, "msg.sig")
	writeFile(t, msgFile, []byte("the message"))

	_, err := run(t, nil, "keygen", "--out", prefix, "--seed", "0102")
	require.NoError(t, err)
	sk, err := readHexFile(prefix + ".sk")
	require.NoError(t, err)
	require.Len(t, sk, shipovnik.SecretKeySize)
	pk, err := readHexFile(prefix + ".pub")
	require.NoError(t, err)
	require.Len(t, pk, shipovnik.PublicKeySize)

	_, err = run(t, nil, "sign", "--key", prefix+".sk", "--in", msgFile, "--out", sigFile)
	require.NoError(t, err)
	sig, err := readHexFile(sigFile)
	require.NoError(t, err)
	require.True(t, shipovnik.Verify(pk, []byte("the message"), sig))

	out, err := run(t, nil, "verify", "--pub", prefix+".pub", "--in", msgFile, "--sig", sigFile)
	require.NoError(t, err)
	require.Contains(t, out, "OK")

	// Message from standard input.
	_, err = run(t, []byte("the message"), "verify", "--pub", prefix+".pub", "--sig", sigFile)
	require.NoError(t, err)
	_, err = run(t, []byte("another message"), "verify", "--pub", prefix+".pub", "--sig", sigFile)
	require.ErrorIs(t, err, errBadSignature)
}

func TestSeedDeterminism(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	_, err := run(t, nil, "keygen", "--out", a, "--seed", "aabb")
	require.NoError(t, err)
	_, err = run(t, nil, "keygen", "--out", b, "--seed", "aabb", "--workers", "3")
	require.NoError(t, err)
	ka, err := os.ReadFile(a + ".sk")
	require.NoError(t, err)
	kb, err := os.ReadFile(b + ".sk")
	require.NoError(t, err)
	require.Equal(t, ka, kb)

	_, err = run(t, nil, "keygen", "--out", a, "--seed", "not-hex")
	require.Error(t, err)
}

func TestKeystoreFlow(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "keys.db")
	msgFile := filepath.Join(dir, "msg")
	sigFile := filepath.Join(dir, "msg.sig")
	writeFile(t, msgFile, []byte("stored keys"))

	_, err := run(t, nil, "--keystore", db, "keygen", "--name", "alice")
	require.NoError(t, err)
	_, err = run(t, nil, "--keystore", db, "sign", "--name", "alice", "--in", msgFile, "--out", sigFile)
	require.NoError(t, err)
	out, err := run(t, nil, "--keystore", db, "verify", "--name", "alice", "--in", msgFile, "--sig", sigFile)
	require.NoError(t, err)
	require.Contains(t, out, "OK")

	// Export, then import the public key alone under another name.
	prefix := filepath.Join(dir, "exported")
	_, err = run(t, nil, "--keystore", db, "keys", "export", "alice", "--out", prefix)
	require.NoError(t, err)
	_, err = run(t, nil, "--keystore", db, "keys", "import", "bob", "--pub", prefix+".pub")
	require.NoError(t, err)
	_, err = run(t, nil, "--keystore", db, "keys", "import", "carol", "--key", prefix+".sk")
	require.NoError(t, err)

	out, err = run(t, nil, "--keystore", db, "keys", "list")
	require.NoError(t, err)
	require.Equal(t, "alice\tsecret\nbob\tpublic\ncarol\tsecret\n", out)

	_, err = run(t, nil, "--keystore", db, "verify", "--name", "bob", "--in", msgFile, "--sig", sigFile)
	require.NoError(t, err)
	_, err = run(t, nil, "--keystore", db, "sign", "--name", "bob", "--in", msgFile, "--out", sigFile)
	require.Error(t, err)

	_, err = run(t, nil, "--keystore", db, "keys", "delete", "bob")
	require.NoError(t, err)
	_, err = run(t, nil, "--keystore", db, "keys", "delete", "bob")
	require.Error(t, err)
}

func TestConfigSources(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "keys.db")

	// Key store path from a config file.
	conf := filepath.Join(dir, "conf.yaml")
	writeFile(t, conf, []byte("keystore: "+db+"\nworkers: 2\n"))
	_, err := run(t, nil, "--config", conf, "keygen", "--name", "fromfile")
	require.NoError(t, err)

	// Same path from the environment.
	t.Setenv("SHIPOVNIK_KEYSTORE", db)
	out, err := run(t, nil, "keys", "list")
	require.NoError(t, err)
	require.Equal(t, "fromfile\tsecret\n", out)

	_, err = run(t, nil, "--config", filepath.Join(dir, "missing.yaml"), "keys", "list")
	require.Error(t, err)
	_, err = run(t, nil, "--log-level", "loud", "keys", "list")
	require.Error(t, err)
}

func TestNoKeystore(t *testing.T) {
	_, err := run(t, nil, "keys", "list")
	require.Error(t, err)
	_, err = run(t, nil, "keygen")
	require.Error(t, err)
}

func TestMatrixExport(t *testing.T) {
	dir := t.TempDir()
	mfile := filepath.Join(dir, "h.bin")
	_, err := run(t, nil, "matrix", "export", "--out", mfile, "--from-seed", "other matrix")
	require.NoError(t, err)
	raw, err := os.ReadFile(mfile)
	require.NoError(t, err)
	require.Equal(t, shipovnik.ExpandMatrix([]byte("other matrix")).Bytes(), raw)

	// Keys made under the exported matrix only verify under it.
	prefix := filepath.Join(dir, "k")
	msgFile := filepath.Join(dir, "msg")
	sigFile := filepath.Join(dir, "msg.sig")
	writeFile(t, msgFile, []byte("matrix"))
	_, err = run(t, nil, "--matrix", mfile, "keygen", "--out", prefix)
	require.NoError(t, err)
	_, err = run(t, nil, "--matrix", mfile, "sign", "--key", prefix+".sk", "--in", msgFile, "--out", sigFile)
	require.NoError(t, err)
	_, err = run(t, nil, "--matrix", mfile, "verify", "--pub", prefix+".pub", "--in", msgFile, "--sig", sigFile)
	require.NoError(t, err)
	_, err = run(t, nil, "verify", "--pub", prefix+".pub", "--in", msgFile, "--sig", sigFile)
	require.ErrorIs(t, err, errBadSignature)

	// A truncated matrix file is rejected.
	writeFile(t, mfile, raw[:100])
	_, err = run(t, nil, "--matrix", mfile, "keygen", "--out", prefix)
	require.Error(t, err)

	// Default export is the built-in matrix.
	_, err = run(t, nil, "matrix", "export", "--out", mfile)
	require.NoError(t, err)
	raw, err = os.ReadFile(mfile)
	require.NoError(t, err)
	require.Equal(t, shipovnik.DefaultMatrix().Bytes(), raw)
}

func TestBench(t *testing.T) {
	out, err := run(t, nil, "bench", "-n", "2", "--seed", "00")
	require.NoError(t, err)
	require.Contains(t, out, "iterations: 2")
	for _, name := range []string{"sign", "verify", "size"} {
		require.True(t, strings.Contains(out, "\n"+name), name)
	}

	_, err = run(t, nil, "bench", "-n", "0")
	require.Error(t, err)
}
