package kpke

import (
	"github.com/latticehq/lattikem/ring"
	"github.com/latticehq/lattikem/utils/hashing"
)

// KeyGenerator is a structure that stores the elements required to derive
// encryption and decryption keys from a seed.
type KeyGenerator struct {
	params Parameters
}

// NewKeyGenerator creates a new KeyGenerator for the provided parameters.
func NewKeyGenerator(params Parameters) *KeyGenerator {
	return &KeyGenerator{params: params}
}

// GenKeyPair derives an encryption key and a decryption key from the 32-byte
// seed d. The encryption key packs the NTT-domain vector t = A*s + e together
// with the matrix seed rho; the decryption key packs the NTT-domain secret s.
func (kgen *KeyGenerator) GenKeyPair(d []byte) (ek, dk []byte, err error) {
	k := kgen.params.K()
	eta1 := kgen.params.Eta1()

	rho, sigma := hashing.G(d)
	defer zeroBytes(sigma[:])

	A, err := expandMatrix(rho[:], k)
	if err != nil {
		return nil, nil, err
	}

	s := ring.NewPolyVector(k)
	e := ring.NewPolyVector(k)
	defer s.Zero()
	defer e.Zero()

	var nonce uint8
	if err = sampleNoiseVec(s, eta1, sigma[:], &nonce); err != nil {
		return nil, nil, err
	}
	if err = sampleNoiseVec(e, eta1, sigma[:], &nonce); err != nil {
		return nil, nil, err
	}

	ring.NTTVec(s)
	ring.NTTVec(e)

	t := ring.NewPolyVector(k)
	ring.MatVecMulNTT(A, s, t)
	ring.AddVec(t, e, t)

	ek = make([]byte, 0, kgen.params.EncryptionKeyLen())
	dk = make([]byte, 0, kgen.params.DecryptionKeyLen())
	for i := 0; i < k; i++ {
		ek = append(ek, ring.ByteEncode(12, t[i])...)
		dk = append(dk, ring.ByteEncode(12, s[i])...)
	}
	ek = append(ek, rho[:]...)

	return ek, dk, nil
}

// expandMatrix derives the k x k public matrix in the NTT domain from the
// 32-byte seed rho, entry (i, j) being sampled from XOF(rho, i, j).
func expandMatrix(rho []byte, k int) (ring.PolyMatrix, error) {
	A := ring.NewPolyMatrix(k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			sampler := ring.NewUniformSampler(hashing.NewXOF(rho, uint8(i), uint8(j)))
			if err := sampler.Read(A[i][j]); err != nil {
				return nil, err
			}
		}
	}
	return A, nil
}

// sampleNoiseVec fills v with centered binomial polynomials derived from
// PRF(seed, nonce), advancing the nonce once per entry. The nonce sequence is
// part of the scheme: entries must be sampled in order.
func sampleNoiseVec(v ring.PolyVector, eta int, seed []byte, nonce *uint8) error {
	for i := range v {
		prf := hashing.PRF(eta, seed, *nonce)
		*nonce++
		err := ring.SamplePolyCBD(eta, prf, v[i])
		zeroBytes(prf)
		if err != nil {
			return err
		}
	}
	return nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
