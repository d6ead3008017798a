package mlkem

import (
	"bytes"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/latticehq/lattikem/core/kpke"
	"github.com/latticehq/lattikem/ring"
	"github.com/latticehq/lattikem/utils/hashing"
)

// Encapsulate generates a fresh shared secret and the ciphertext that
// transports it to the holder of the matching decapsulation key. The 32-byte
// message seed is drawn from rng; all other randomness is derived from it.
//
// The packed coefficients of the key are first checked to be fully reduced,
// by verifying that decode-then-encode is the identity on the key bytes; a
// key failing the check yields ErrInvalidEncapsulationKey. The check operates
// on public data only.
func (ek *EncapsulationKey) Encapsulate(rng io.Reader) (*SharedSecret, *Ciphertext, error) {
	if err := ek.validate(); err != nil {
		return nil, nil, err
	}

	var m [32]byte
	if _, err := io.ReadFull(rng, m[:]); err != nil {
		return nil, nil, fmt.Errorf("reading random message: %w", err)
	}
	defer zeroBytes(m[:])

	return ek.encapsulateDeterministic(m[:])
}

// encapsulateDeterministic performs the encapsulation with the provided
// 32-byte message seed. It backs both Encapsulate and the known-answer tests
// and skips the key validation, which GenKeyPairNew outputs satisfy by
// construction.
func (ek *EncapsulationKey) encapsulateDeterministic(m []byte) (*SharedSecret, *Ciphertext, error) {
	key, r := hashing.G(m, ek.hash[:])
	defer zeroBytes(r[:])

	enc := kpke.NewEncryptor(ek.params.PKEParameters())
	c, err := enc.Encrypt(ek.value, m, r[:])
	if err != nil {
		return nil, nil, err
	}

	ss := &SharedSecret{value: key}
	return ss, &Ciphertext{params: ek.params, value: c}, nil
}

// validate checks that every 12-bit packed coefficient of the key is below Q,
// as the re-encoding identity ByteEncode(ByteDecode(ek)) = ek.
func (ek *EncapsulationKey) validate() error {
	p := ring.NewPoly()
	for off := 0; off < 384*ek.params.K(); off += 384 {
		chunk := ek.value[off : off+384]
		if err := ring.ByteDecode(12, chunk, p); err != nil {
			return err
		}
		if !bytes.Equal(ring.ByteEncode(12, p), chunk) {
			return ErrInvalidEncapsulationKey
		}
	}
	return nil
}

// Decapsulate recovers the shared secret carried by ct. It never fails on a
// well-formed ciphertext: when the ciphertext is inconsistent, the returned
// value is the implicit-rejection secret, a pseudorandom function of the
// ciphertext and of the secret z, indistinguishable from a success. The
// selection between the two candidates is constant time.
func (dk *DecapsulationKey) Decapsulate(ct *Ciphertext) (*SharedSecret, error) {
	params := dk.params
	if len(ct.value) != params.CiphertextLen() {
		return nil, fmt.Errorf("ciphertext: %w: got %d, expected %d", ErrLengthMismatch, len(ct.value), params.CiphertextLen())
	}

	dec := kpke.NewDecryptor(params.PKEParameters())
	mPrime, err := dec.Decrypt(dk.dkPKE(), ct.value)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(mPrime)

	keyPrime, rPrime := hashing.G(mPrime, dk.hash())
	defer zeroBytes(rPrime[:])

	keyBar := hashing.J(dk.z(), ct.value)
	defer zeroBytes(keyBar[:])

	enc := kpke.NewEncryptor(params.PKEParameters())
	cPrime, err := enc.Encrypt(dk.ekPKE(), mPrime, rPrime[:])
	if err != nil {
		return nil, err
	}

	// Whole-buffer comparison followed by a branchless select of the
	// rejection key on mismatch.
	equal := subtle.ConstantTimeCompare(ct.value, cPrime)
	subtle.ConstantTimeCopy(1-equal, keyPrime[:], keyBar[:])

	return &SharedSecret{value: keyPrime}, nil
}
