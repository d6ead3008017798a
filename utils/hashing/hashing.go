// Package hashing wraps the SHA-3 family of functions in the fixed roles they
// play in the scheme: H and G for hashing public values and deriving key
// material, J for implicit rejection, the XOF for matrix expansion and the PRF
// for noise sampling.
package hashing

import (
	"golang.org/x/crypto/sha3"
)

// H hashes the concatenation of the inputs with SHA3-256.
func H(inputs ...[]byte) (digest [32]byte) {
	h := sha3.New256()
	for _, in := range inputs {
		h.Write(in)
	}
	h.Sum(digest[:0])
	return
}

// G hashes the concatenation of the inputs with SHA3-512 and returns the two
// 32-byte halves of the digest.
func G(inputs ...[]byte) (lo, hi [32]byte) {
	h := sha3.New512()
	for _, in := range inputs {
		h.Write(in)
	}
	var digest [64]byte
	h.Sum(digest[:0])
	copy(lo[:], digest[:32])
	copy(hi[:], digest[32:])
	return
}

// J hashes the concatenation of the inputs with SHAKE-256 truncated to 32 bytes.
func J(inputs ...[]byte) (digest [32]byte) {
	h := sha3.NewShake256()
	for _, in := range inputs {
		h.Write(in)
	}
	h.Read(digest[:])
	return
}

// PRF absorbs s followed by the single byte b into SHAKE-256 and returns
// 64*eta output bytes.
func PRF(eta int, s []byte, b byte) []byte {
	h := sha3.NewShake256()
	h.Write(s)
	h.Write([]byte{b})
	out := make([]byte, 64*eta)
	h.Read(out)
	return out
}

// NewXOF returns a SHAKE-128 reader absorbing rho followed by the two index
// bytes i and j.
func NewXOF(rho []byte, i, j uint8) sha3.ShakeHash {
	h := sha3.NewShake128()
	h.Write(rho)
	h.Write([]byte{i, j})
	return h
}
