package keystore

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/pornin/go-shipovnik/shipovnik"
)

func openTestStore(t *testing.T) (*Store, string) {
	path := filepath.Join(t.TempDir(), "keys.db")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestPutGet(t *testing.T) {
	s, path := openTestStore(t)

	sk, pk, err := shipovnik.KeyGen(shipovnik.NewSeededReader([]byte("keystore")))
	require.NoError(t, err)
	require.NoError(t, s.Put("alice", KeyPair{Secret: sk, Public: pk}))
	require.NoError(t, s.Put("bob", KeyPair{Public: pk}))

	kp, err := s.Get("alice")
	require.NoError(t, err)
	require.Equal(t, sk, kp.Secret)
	require.Equal(t, pk, kp.Public)

	kp, err = s.Get("bob")
	require.NoError(t, err)
	require.Nil(t, kp.Secret)
	require.True(t, bytes.Equal(pk, kp.Public))

	names, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, names)

	// Data survives a reopen.
	require.NoError(t, s.Close())
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	kp, err = s.Get("alice")
	require.NoError(t, err)
	require.Equal(t, sk, kp.Secret)
}

func TestDelete(t *testing.T) {
	s, _ := openTestStore(t)
	defer s.Close()

	pk := make([]byte, shipovnik.PublicKeySize)
	require.NoError(t, s.Put("carol", KeyPair{Public: pk}))
	require.NoError(t, s.Delete("carol"))

	_, err := s.Get("carol")
	require.True(t, errors.Is(err, ErrNotFound))
	require.True(t, errors.Is(s.Delete("carol"), ErrNotFound))
}

func TestPutInvalid(t *testing.T) {
	s, _ := openTestStore(t)
	defer s.Close()

	pk := make([]byte, shipovnik.PublicKeySize)
	require.Error(t, s.Put("", KeyPair{Public: pk}))
	require.Error(t, s.Put("x", KeyPair{Public: pk[:10]}))
	require.Error(t, s.Put("x", KeyPair{Secret: []byte{1}, Public: pk}))

	names, err := s.List()
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestListOrder(t *testing.T) {
	s, _ := openTestStore(t)
	defer s.Close()

	pk := make([]byte, shipovnik.PublicKeySize)
	for _, name := range []string{"zed", "Bob", "amy", "bo"} {
		require.NoError(t, s.Put(name, KeyPair{Public: pk}))
	}
	names, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []string{"Bob", "amy", "bo", "zed"}, names)
}
