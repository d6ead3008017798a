package mlkem

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/latticehq/lattikem/utils/hashing"
)

var (
	// ErrLengthMismatch is returned when a byte slice has the wrong length
	// for the parameter set.
	ErrLengthMismatch = errors.New("byte slice length does not match the parameter set")

	// ErrInvalidEncapsulationKey is returned by Encapsulate when the
	// encapsulation key is not a valid 12-bit packing of reduced
	// coefficients.
	ErrInvalidEncapsulationKey = errors.New("encapsulation key coefficients are not fully reduced")
)

// EncapsulationKey is the public key of the KEM. It can be freely copied,
// serialized and shared.
type EncapsulationKey struct {
	params Parameters
	value  []byte
	hash   [32]byte // H(value), absorbed into every encapsulation
}

// EncapsulationKeyFromBytes deserializes an encapsulation key of the provided
// parameter set. Only the length is validated here; the modulus check on the
// packed coefficients is performed by Encapsulate, as a re-encoding identity.
func EncapsulationKeyFromBytes(params Parameters, b []byte) (*EncapsulationKey, error) {
	if len(b) != params.EncapsulationKeyLen() {
		return nil, fmt.Errorf("encapsulation key: %w: got %d, expected %d", ErrLengthMismatch, len(b), params.EncapsulationKeyLen())
	}
	ek := &EncapsulationKey{params: params, value: append([]byte(nil), b...)}
	ek.hash = hashing.H(ek.value)
	return ek, nil
}

// Parameters returns the parameter set of the key.
func (ek *EncapsulationKey) Parameters() Parameters {
	return ek.params
}

// Bytes returns a copy of the serialized encapsulation key.
func (ek *EncapsulationKey) Bytes() []byte {
	return append([]byte(nil), ek.value...)
}

// DecapsulationKey is the secret key of the KEM. Its serialized form is
// dkPKE || ek || H(ek) || z, with z the implicit-rejection secret. It must be
// wiped with Zeroize once no longer needed.
type DecapsulationKey struct {
	params Parameters
	value  []byte
}

// DecapsulationKeyFromBytes deserializes a decapsulation key of the provided
// parameter set. Beyond the length, the embedded H(ek) is checked against the
// embedded encapsulation key: a decapsulation key whose components do not
// hang together is rejected.
func DecapsulationKeyFromBytes(params Parameters, b []byte) (*DecapsulationKey, error) {
	if len(b) != params.DecapsulationKeyLen() {
		return nil, fmt.Errorf("decapsulation key: %w: got %d, expected %d", ErrLengthMismatch, len(b), params.DecapsulationKeyLen())
	}
	dk := &DecapsulationKey{params: params, value: append([]byte(nil), b...)}
	h := hashing.H(dk.ekPKE())
	if subtle.ConstantTimeCompare(h[:], dk.hash()) != 1 {
		return nil, errors.New("decapsulation key: embedded key hash mismatch")
	}
	return dk, nil
}

// Parameters returns the parameter set of the key.
func (dk *DecapsulationKey) Parameters() Parameters {
	return dk.params
}

// Bytes returns a copy of the serialized decapsulation key. The copy is
// secret material and is the caller's to wipe.
func (dk *DecapsulationKey) Bytes() []byte {
	return append([]byte(nil), dk.value...)
}

// EncapsulationKey returns the public encapsulation key embedded in the
// decapsulation key.
func (dk *DecapsulationKey) EncapsulationKey() (*EncapsulationKey, error) {
	return EncapsulationKeyFromBytes(dk.params, dk.ekPKE())
}

// Zeroize wipes the secret key material. The key must not be used afterwards.
func (dk *DecapsulationKey) Zeroize() {
	for i := range dk.value {
		dk.value[i] = 0
	}
}

// The four components of the serialized decapsulation key.

func (dk *DecapsulationKey) dkPKE() []byte {
	return dk.value[:384*dk.params.K()]
}

func (dk *DecapsulationKey) ekPKE() []byte {
	k := dk.params.K()
	return dk.value[384*k : 768*k+32]
}

func (dk *DecapsulationKey) hash() []byte {
	k := dk.params.K()
	return dk.value[768*k+32 : 768*k+64]
}

func (dk *DecapsulationKey) z() []byte {
	k := dk.params.K()
	return dk.value[768*k+64 : 768*k+96]
}

// Ciphertext is an encapsulation ciphertext. It is public data.
type Ciphertext struct {
	params Parameters
	value  []byte
}

// CiphertextFromBytes deserializes a ciphertext of the provided parameter
// set, validating its length.
func CiphertextFromBytes(params Parameters, b []byte) (*Ciphertext, error) {
	if len(b) != params.CiphertextLen() {
		return nil, fmt.Errorf("ciphertext: %w: got %d, expected %d", ErrLengthMismatch, len(b), params.CiphertextLen())
	}
	return &Ciphertext{params: params, value: append([]byte(nil), b...)}, nil
}

// Parameters returns the parameter set of the ciphertext.
func (ct *Ciphertext) Parameters() Parameters {
	return ct.params
}

// Bytes returns a copy of the serialized ciphertext.
func (ct *Ciphertext) Bytes() []byte {
	return append([]byte(nil), ct.value...)
}

// SharedSecret is a 32-byte encapsulated secret. Comparison goes through
// Equal, which is constant time; the value must be wiped with Zeroize once
// consumed by the key schedule it feeds.
type SharedSecret struct {
	value [SharedSecretLen]byte
}

// Bytes returns a copy of the shared secret.
func (ss *SharedSecret) Bytes() []byte {
	return append([]byte(nil), ss.value[:]...)
}

// Equal compares two shared secrets in constant time.
func (ss *SharedSecret) Equal(other *SharedSecret) bool {
	return subtle.ConstantTimeCompare(ss.value[:], other.value[:]) == 1
}

// Zeroize wipes the shared secret.
func (ss *SharedSecret) Zeroize() {
	for i := range ss.value {
		ss.value[i] = 0
	}
}
