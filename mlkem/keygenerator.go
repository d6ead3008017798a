package mlkem

import (
	"fmt"
	"io"

	"github.com/latticehq/lattikem/core/kpke"
	"github.com/latticehq/lattikem/utils/hashing"
	"github.com/latticehq/lattikem/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to generate
// key pairs, including the random source the seeds are drawn from.
type KeyGenerator struct {
	params Parameters
	rng    io.Reader
}

// NewKeyGenerator creates a new KeyGenerator for the provided parameters,
// drawing seeds from rng. If rng is nil, a freshly keyed PRNG backed by the
// system entropy source is used.
func NewKeyGenerator(params Parameters, rng io.Reader) (*KeyGenerator, error) {
	if rng == nil {
		var err error
		if rng, err = sampling.NewPRNG(); err != nil {
			return nil, err
		}
	}
	return &KeyGenerator{params: params, rng: rng}, nil
}

// GenKeyPairNew generates a new encapsulation key and a corresponding
// decapsulation key. Two 32-byte seeds are drawn from the generator's random
// source: first the implicit-rejection secret z, then the key-derivation
// seed d.
func (kgen *KeyGenerator) GenKeyPairNew() (*EncapsulationKey, *DecapsulationKey, error) {
	var z, d [32]byte
	if _, err := io.ReadFull(kgen.rng, z[:]); err != nil {
		return nil, nil, fmt.Errorf("reading random seed z: %w", err)
	}
	if _, err := io.ReadFull(kgen.rng, d[:]); err != nil {
		return nil, nil, fmt.Errorf("reading random seed d: %w", err)
	}
	defer zeroBytes(z[:])
	defer zeroBytes(d[:])
	return kgen.genKeyPairFromSeeds(z[:], d[:])
}

// genKeyPairFromSeeds derives a key pair deterministically from the two
// 32-byte seeds. It backs both GenKeyPairNew and the known-answer tests.
func (kgen *KeyGenerator) genKeyPairFromSeeds(z, d []byte) (*EncapsulationKey, *DecapsulationKey, error) {
	pkeKgen := kpke.NewKeyGenerator(kgen.params.PKEParameters())
	ekPKE, dkPKE, err := pkeKgen.GenKeyPair(d)
	if err != nil {
		return nil, nil, err
	}
	defer zeroBytes(dkPKE)

	hash := hashing.H(ekPKE)

	value := make([]byte, 0, kgen.params.DecapsulationKeyLen())
	value = append(value, dkPKE...)
	value = append(value, ekPKE...)
	value = append(value, hash[:]...)
	value = append(value, z...)

	ek := &EncapsulationKey{params: kgen.params, value: ekPKE, hash: hash}
	dk := &DecapsulationKey{params: kgen.params, value: value}
	return ek, dk, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
