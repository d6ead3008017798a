// Package kpke implements the lattice-based public-key encryption scheme that
// underlies the key encapsulation mechanism. It is IND-CPA secure only and is
// not meant to be used on its own: the outer KEM layer derives all of its
// randomness and performs the ciphertext consistency check.
package kpke

import (
	"fmt"
)

// Parameters stores the set of module and noise parameters of an instance of
// the encryption scheme. Parameters is a read-only value type: it is created
// once through NewParameters and then passed by value.
type Parameters struct {
	k    int
	eta1 int
	eta2 int
	du   int
	dv   int
}

// NewParameters creates a new set of validated Parameters from the module
// rank k, the noise parameters eta1 and eta2 and the ciphertext compression
// parameters du and dv.
func NewParameters(k, eta1, eta2, du, dv int) (Parameters, error) {
	switch {
	case k < 2 || k > 4:
		return Parameters{}, fmt.Errorf("invalid module rank k=%d: must be 2, 3 or 4", k)
	case eta1 != 2 && eta1 != 3:
		return Parameters{}, fmt.Errorf("invalid noise parameter eta1=%d: must be 2 or 3", eta1)
	case eta2 != 2:
		return Parameters{}, fmt.Errorf("invalid noise parameter eta2=%d: must be 2", eta2)
	case du != 10 && du != 11:
		return Parameters{}, fmt.Errorf("invalid compression parameter du=%d: must be 10 or 11", du)
	case dv != 4 && dv != 5:
		return Parameters{}, fmt.Errorf("invalid compression parameter dv=%d: must be 4 or 5", dv)
	}
	return Parameters{k: k, eta1: eta1, eta2: eta2, du: du, dv: dv}, nil
}

// K returns the module rank.
func (p Parameters) K() int {
	return p.k
}

// Eta1 returns the noise parameter of the secret and of the key-generation
// errors.
func (p Parameters) Eta1() int {
	return p.eta1
}

// Eta2 returns the noise parameter of the encryption errors.
func (p Parameters) Eta2() int {
	return p.eta2
}

// Du returns the compression parameter of the first ciphertext component.
func (p Parameters) Du() int {
	return p.du
}

// Dv returns the compression parameter of the second ciphertext component.
func (p Parameters) Dv() int {
	return p.dv
}

// EncryptionKeyLen returns the byte length of an encryption key, 384*k + 32.
func (p Parameters) EncryptionKeyLen() int {
	return 384*p.k + 32
}

// DecryptionKeyLen returns the byte length of a decryption key, 384*k.
func (p Parameters) DecryptionKeyLen() int {
	return 384 * p.k
}

// CiphertextLen returns the byte length of a ciphertext, 32*(du*k + dv).
func (p Parameters) CiphertextLen() int {
	return 32 * (p.du*p.k + p.dv)
}

// PlaintextLen returns the byte length of a plaintext.
func (p Parameters) PlaintextLen() int {
	return 32
}

// SeedLen returns the byte length of the key-generation seed and of the
// encryption randomness.
func (p Parameters) SeedLen() int {
	return 32
}
