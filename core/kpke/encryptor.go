package kpke

import (
	"fmt"

	"github.com/latticehq/lattikem/ring"
	"github.com/latticehq/lattikem/utils/hashing"
)

// Encryptor is a structure that stores the elements required to encrypt
// 32-byte plaintexts under an encryption key.
type Encryptor struct {
	params Parameters
}

// NewEncryptor creates a new Encryptor for the provided parameters.
func NewEncryptor(params Parameters) *Encryptor {
	return &Encryptor{params: params}
}

// Encrypt encrypts the 32-byte plaintext m under the encryption key ek using
// the 32-byte randomness seed r. The whole computation is deterministic in
// (ek, m, r); the caller is responsible for never reusing r across distinct
// plaintexts.
func (enc *Encryptor) Encrypt(ek, m, r []byte) (ct []byte, err error) {
	params := enc.params
	k := params.K()

	if len(ek) != params.EncryptionKeyLen() {
		return nil, fmt.Errorf("invalid encryption key length %d: expected %d", len(ek), params.EncryptionKeyLen())
	}
	if len(m) != params.PlaintextLen() {
		return nil, fmt.Errorf("invalid plaintext length %d: expected %d", len(m), params.PlaintextLen())
	}
	if len(r) != params.SeedLen() {
		return nil, fmt.Errorf("invalid randomness length %d: expected %d", len(r), params.SeedLen())
	}

	// The t vector is carried unreduced: decoding does not reduce mod Q and
	// the NTT-domain products tolerate 12-bit operands.
	t := ring.NewPolyVector(k)
	for i := 0; i < k; i++ {
		if err = ring.ByteDecode(12, ek[384*i:384*(i+1)], t[i]); err != nil {
			return nil, err
		}
	}
	rho := ek[384*k:]

	A, err := expandMatrix(rho, k)
	if err != nil {
		return nil, err
	}

	y := ring.NewPolyVector(k)
	e1 := ring.NewPolyVector(k)
	e2 := ring.NewPoly()
	defer y.Zero()
	defer e1.Zero()
	defer e2.Zero()

	var nonce uint8
	if err = sampleNoiseVec(y, params.Eta1(), r, &nonce); err != nil {
		return nil, err
	}
	if err = sampleNoiseVec(e1, params.Eta2(), r, &nonce); err != nil {
		return nil, err
	}
	prf := hashing.PRF(params.Eta2(), r, nonce)
	err = ring.SamplePolyCBD(params.Eta2(), prf, e2)
	zeroBytes(prf)
	if err != nil {
		return nil, err
	}

	ring.NTTVec(y)

	u := ring.NewPolyVector(k)
	ring.MatTransposeVecMulNTT(A, y, u)
	ring.InvNTTVec(u)
	ring.AddVec(u, e1, u)

	mu := ring.NewPoly()
	defer mu.Zero()
	if err = ring.ByteDecode(1, m, mu); err != nil {
		return nil, err
	}
	ring.DecompressPoly(1, mu)

	v := ring.NewPoly()
	defer v.Zero()
	ring.DotProductNTT(t, y, v)
	ring.InvNTT(v)
	ring.Add(v, e2, v)
	ring.Add(v, mu, v)

	ct = make([]byte, 0, params.CiphertextLen())
	for i := 0; i < k; i++ {
		ring.CompressPoly(params.Du(), u[i])
		ct = append(ct, ring.ByteEncode(params.Du(), u[i])...)
	}
	ring.CompressPoly(params.Dv(), v)
	ct = append(ct, ring.ByteEncode(params.Dv(), v)...)

	return ct, nil
}
