package kpke

import (
	"fmt"

	"github.com/latticehq/lattikem/ring"
)

// Decryptor is a structure that stores the elements required to decrypt
// ciphertexts under a decryption key.
type Decryptor struct {
	params Parameters
}

// NewDecryptor creates a new Decryptor for the provided parameters.
func NewDecryptor(params Parameters) *Decryptor {
	return &Decryptor{params: params}
}

// Decrypt decrypts the ciphertext ct under the decryption key dk and returns
// the 32-byte plaintext. Decryption never fails on well-formed lengths; a
// mismatched ciphertext decrypts to an unrelated plaintext.
func (dec *Decryptor) Decrypt(dk, ct []byte) (m []byte, err error) {
	params := dec.params
	k := params.K()
	du, dv := params.Du(), params.Dv()

	if len(dk) != params.DecryptionKeyLen() {
		return nil, fmt.Errorf("invalid decryption key length %d: expected %d", len(dk), params.DecryptionKeyLen())
	}
	if len(ct) != params.CiphertextLen() {
		return nil, fmt.Errorf("invalid ciphertext length %d: expected %d", len(ct), params.CiphertextLen())
	}

	u := ring.NewPolyVector(k)
	defer u.Zero()
	for i := 0; i < k; i++ {
		if err = ring.ByteDecode(du, ct[32*du*i:32*du*(i+1)], u[i]); err != nil {
			return nil, err
		}
		ring.DecompressPoly(du, u[i])
	}

	v := ring.NewPoly()
	defer v.Zero()
	if err = ring.ByteDecode(dv, ct[32*du*k:], v); err != nil {
		return nil, err
	}
	ring.DecompressPoly(dv, v)

	s := ring.NewPolyVector(k)
	defer s.Zero()
	for i := 0; i < k; i++ {
		if err = ring.ByteDecode(12, dk[384*i:384*(i+1)], s[i]); err != nil {
			return nil, err
		}
	}

	ring.NTTVec(u)
	w := ring.NewPoly()
	defer w.Zero()
	ring.DotProductNTT(s, u, w)
	ring.InvNTT(w)
	ring.Sub(v, w, w)

	ring.CompressPoly(1, w)
	m = ring.ByteEncode(1, w)

	return m, nil
}
