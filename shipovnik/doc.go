// This package implements the Shipovnik signature algorithm.
//
// Shipovnik is a code-based signature scheme: its security relies on the
// hardness of syndrome decoding for random binary linear codes. A
// signature is a Stern-like identification protocol (three commitments
// per round, one of three responses revealed) repeated over DELTA = 219
// rounds, and made non-interactive with the Fiat-Shamir transform; the
// ternary challenge is derived from a Streebog-512 hash of the message
// and of all the commitments.
//
// Parameters are fixed: code length N = 2896, dimension K = 1448,
// secret weight W = 318. A key pair consists of a secret key (a bit
// vector of N bits with exactly W bits set, SecretKeySize bytes) and a
// public key (its syndrome with regard to a public parity-check matrix,
// PublicKeySize bytes). A new key pair is created with the [KeyGen]
// function, which takes as parameter a source of randomness. The random
// source MUST be cryptographically secure. If the source is nil, then
// the operating system's RNG is used (through crypto/rand.Reader).
//
// A signature is generated with [Sign] over an arbitrary message; it
// also uses a random source (usually left to nil). Signatures have a
// variable size, which depends on the challenge; the maximum size is
// SignatureMaxSize. Signature verification is performed with the
// [Verify] function; the output is Boolean.
//
// The public parity-check matrix H' is a parameter of the system. The
// functions above use [DefaultMatrix], which is expanded from a fixed
// public seed. Another matrix (e.g. the constant from the reference
// implementation) can be loaded with [LoadMatrix] and used through a
// [Scheme], which also sets the number of rounds computed concurrently.
package shipovnik
