// Package keystore keeps named Shipovnik key pairs in a bolt database.
package keystore

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/pornin/go-shipovnik/shipovnik"
)

// Bucket names.
var (
	secretBucket = []byte("secret")
	publicBucket = []byte("public")
)

// ErrNotFound is returned when no key pair has the requested name.
var ErrNotFound = errors.New("key not found")

// KeyPair is an encoded secret key and its public key.
type KeyPair struct {
	Secret []byte
	Public []byte
}

// Store is a key store backed by a single bolt file.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the key store at path. The file is created
// with mode 0600.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening key store %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(secretBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(publicBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing key store")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a key pair under name, replacing any previous one. The
// secret key may be nil to store a public key only.
func (s *Store) Put(name string, kp KeyPair) error {
	if name == "" {
		return errors.New("empty key name")
	}
	if kp.Secret != nil && len(kp.Secret) != shipovnik.SecretKeySize {
		return errors.Errorf("secret key has %d bytes, expected %d",
			len(kp.Secret), shipovnik.SecretKeySize)
	}
	if len(kp.Public) != shipovnik.PublicKeySize {
		return errors.Errorf("public key has %d bytes, expected %d",
			len(kp.Public), shipovnik.PublicKeySize)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		sb := tx.Bucket(secretBucket)
		if kp.Secret == nil {
			if err := sb.Delete([]byte(name)); err != nil {
				return err
			}
		} else if err := sb.Put([]byte(name), kp.Secret); err != nil {
			return err
		}
		return tx.Bucket(publicBucket).Put([]byte(name), kp.Public)
	})
}

// Get returns the key pair stored under name. Secret is nil if only the
// public key is known.
func (s *Store) Get(name string) (KeyPair, error) {
	var kp KeyPair
	err := s.db.View(func(tx *bolt.Tx) error {
		pub := tx.Bucket(publicBucket).Get([]byte(name))
		if pub == nil {
			return errors.Wrap(ErrNotFound, name)
		}
		// bolt values are only valid during the transaction.
		kp.Public = append([]byte(nil), pub...)
		if sec := tx.Bucket(secretBucket).Get([]byte(name)); sec != nil {
			kp.Secret = append([]byte(nil), sec...)
		}
		return nil
	})
	return kp, err
}

// Delete removes the key pair stored under name.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(publicBucket).Get([]byte(name)) == nil {
			return errors.Wrap(ErrNotFound, name)
		}
		if err := tx.Bucket(secretBucket).Delete([]byte(name)); err != nil {
			return err
		}
		return tx.Bucket(publicBucket).Delete([]byte(name))
	})
}

// List returns the names of all stored keys, in byte order (the
// iteration order of bolt buckets).
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(publicBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
