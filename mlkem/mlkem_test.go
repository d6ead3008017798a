package mlkem

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
	"golang.org/x/exp/maps"

	"github.com/latticehq/lattikem/utils/hashing"
	"github.com/latticehq/lattikem/utils/sampling"
)

var testParamsLiterals = map[string]ParametersLiteral{
	"ML-KEM-512":  MLKEM512,
	"ML-KEM-768":  MLKEM768,
	"ML-KEM-1024": MLKEM1024,
}

var prngKey = []byte{
	0x6d, 0x6c, 0x6b, 0x65, 0x6d, 0x2d, 0x74, 0x65, 0x73, 0x74, 0x2d, 0x6b, 0x65, 0x79, 0x2d, 0x30,
	0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98,
}

func name(op string, params Parameters) string {
	return fmt.Sprintf("%s/%s", op, params)
}

// forEachParams runs f once per standard parameter set, in a fixed order.
func forEachParams(t *testing.T, f func(t *testing.T, params Parameters)) {
	names := maps.Keys(testParamsLiterals)
	sort.Strings(names)
	for _, n := range names {
		params, err := NewParametersFromLiteral(testParamsLiterals[n])
		require.NoError(t, err)
		f(t, params)
	}
}

func TestEncapsDecaps(t *testing.T) {
	forEachParams(t, func(t *testing.T, params Parameters) {
		t.Run(name("EncapsDecaps", params), func(t *testing.T) {
			prng, err := sampling.NewKeyedPRNG(prngKey)
			require.NoError(t, err)

			kgen, err := NewKeyGenerator(params, prng)
			require.NoError(t, err)
			ek, dk, err := kgen.GenKeyPairNew()
			require.NoError(t, err)

			for i := 0; i < 4; i++ {
				ss, ct, err := ek.Encapsulate(prng)
				require.NoError(t, err)

				ssPrime, err := dk.Decapsulate(ct)
				require.NoError(t, err)
				require.True(t, ss.Equal(ssPrime))
			}
		})
	})
}

func TestKeyAndCiphertextLengths(t *testing.T) {
	forEachParams(t, func(t *testing.T, params Parameters) {
		t.Run(name("Lengths", params), func(t *testing.T) {
			k := params.K()
			require.Equal(t, 384*k+32, params.EncapsulationKeyLen())
			require.Equal(t, 768*k+96, params.DecapsulationKeyLen())

			prng, err := sampling.NewKeyedPRNG(prngKey)
			require.NoError(t, err)
			kgen, err := NewKeyGenerator(params, prng)
			require.NoError(t, err)
			ek, dk, err := kgen.GenKeyPairNew()
			require.NoError(t, err)

			require.Len(t, ek.Bytes(), params.EncapsulationKeyLen())
			require.Len(t, dk.Bytes(), params.DecapsulationKeyLen())

			ss, ct, err := ek.Encapsulate(prng)
			require.NoError(t, err)
			require.Len(t, ct.Bytes(), params.CiphertextLen())
			require.Len(t, ss.Bytes(), SharedSecretLen)
		})
	})
}

func TestDecapsulationKeyLayout(t *testing.T) {
	forEachParams(t, func(t *testing.T, params Parameters) {
		t.Run(name("Layout", params), func(t *testing.T) {
			prng, err := sampling.NewKeyedPRNG(prngKey)
			require.NoError(t, err)
			kgen, err := NewKeyGenerator(params, prng)
			require.NoError(t, err)
			ek, dk, err := kgen.GenKeyPairNew()
			require.NoError(t, err)

			require.Equal(t, ek.Bytes(), dk.ekPKE())
			h := hashing.H(ek.Bytes())
			require.Equal(t, h[:], dk.hash())
			require.Equal(t, h, ek.hash)

			embedded, err := dk.EncapsulationKey()
			require.NoError(t, err)
			require.Equal(t, ek.Bytes(), embedded.Bytes())
		})
	})
}

func TestSerialization(t *testing.T) {
	forEachParams(t, func(t *testing.T, params Parameters) {
		t.Run(name("Serialization", params), func(t *testing.T) {
			prng, err := sampling.NewKeyedPRNG(prngKey)
			require.NoError(t, err)
			kgen, err := NewKeyGenerator(params, prng)
			require.NoError(t, err)
			ek, dk, err := kgen.GenKeyPairNew()
			require.NoError(t, err)

			ek2, err := EncapsulationKeyFromBytes(params, ek.Bytes())
			require.NoError(t, err)
			dk2, err := DecapsulationKeyFromBytes(params, dk.Bytes())
			require.NoError(t, err)

			ss, ct, err := ek2.Encapsulate(prng)
			require.NoError(t, err)
			ct2, err := CiphertextFromBytes(params, ct.Bytes())
			require.NoError(t, err)
			ssPrime, err := dk2.Decapsulate(ct2)
			require.NoError(t, err)
			require.True(t, ss.Equal(ssPrime))

			// Length validation.
			_, err = EncapsulationKeyFromBytes(params, ek.Bytes()[:17])
			require.ErrorIs(t, err, ErrLengthMismatch)
			_, err = DecapsulationKeyFromBytes(params, dk.Bytes()[:17])
			require.ErrorIs(t, err, ErrLengthMismatch)
			_, err = CiphertextFromBytes(params, ct.Bytes()[:17])
			require.ErrorIs(t, err, ErrLengthMismatch)

			// A decapsulation key whose embedded hash does not match its
			// embedded encapsulation key is rejected.
			tampered := dk.Bytes()
			tampered[768*params.K()+32] ^= 0xff
			_, err = DecapsulationKeyFromBytes(params, tampered)
			require.Error(t, err)
		})
	})
}

func TestImplicitRejection(t *testing.T) {
	forEachParams(t, func(t *testing.T, params Parameters) {
		t.Run(name("ImplicitRejection", params), func(t *testing.T) {
			prng, err := sampling.NewKeyedPRNG(prngKey)
			require.NoError(t, err)
			kgen, err := NewKeyGenerator(params, prng)
			require.NoError(t, err)
			ek, dk, err := kgen.GenKeyPairNew()
			require.NoError(t, err)

			ss, ct, err := ek.Encapsulate(prng)
			require.NoError(t, err)

			// Flip the last byte of the ciphertext.
			mangled := ct.Bytes()
			mangled[len(mangled)-1] ^= 0x01
			ctBad, err := CiphertextFromBytes(params, mangled)
			require.NoError(t, err)

			ssBad, err := dk.Decapsulate(ctBad)
			require.NoError(t, err)
			require.False(t, ss.Equal(ssBad))

			// The rejection value is deterministic and equals J(z || c).
			ssBad2, err := dk.Decapsulate(ctBad)
			require.NoError(t, err)
			require.True(t, ssBad.Equal(ssBad2))

			want := hashing.J(dk.z(), mangled)
			require.Equal(t, want[:], ssBad.Bytes())
		})
	})
}

func TestMalformedEncapsulationKey(t *testing.T) {
	forEachParams(t, func(t *testing.T, params Parameters) {
		t.Run(name("MalformedKey", params), func(t *testing.T) {
			prng, err := sampling.NewKeyedPRNG(prngKey)
			require.NoError(t, err)
			kgen, err := NewKeyGenerator(params, prng)
			require.NoError(t, err)
			ek, _, err := kgen.GenKeyPairNew()
			require.NoError(t, err)

			// Force the first 12-bit coefficient to Q, an unreduced value.
			b := ek.Bytes()
			b[0] = 0x01
			b[1] = b[1]&0xf0 | 0x0d
			ekBad, err := EncapsulationKeyFromBytes(params, b)
			require.NoError(t, err)

			_, _, err = ekBad.Encapsulate(prng)
			require.ErrorIs(t, err, ErrInvalidEncapsulationKey)
		})
	})
}

func TestDeterminism(t *testing.T) {
	forEachParams(t, func(t *testing.T, params Parameters) {
		t.Run(name("Determinism", params), func(t *testing.T) {
			transcript := func() []byte {
				prng, err := sampling.NewKeyedPRNG(prngKey)
				require.NoError(t, err)
				kgen, err := NewKeyGenerator(params, prng)
				require.NoError(t, err)
				ek, dk, err := kgen.GenKeyPairNew()
				require.NoError(t, err)
				ss, ct, err := ek.Encapsulate(prng)
				require.NoError(t, err)

				h := blake3.New()
				h.Write(ek.Bytes())
				h.Write(dk.Bytes())
				h.Write(ct.Bytes())
				h.Write(ss.Bytes())
				return h.Sum(nil)
			}

			// Two runs from the same RNG state produce identical transcripts.
			require.Equal(t, transcript(), transcript())
		})
	})
}

func TestZeroize(t *testing.T) {
	params, err := NewParametersFromLiteral(MLKEM768)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG(prngKey)
	require.NoError(t, err)
	kgen, err := NewKeyGenerator(params, prng)
	require.NoError(t, err)
	ek, dk, err := kgen.GenKeyPairNew()
	require.NoError(t, err)

	ss, _, err := ek.Encapsulate(prng)
	require.NoError(t, err)

	dk.Zeroize()
	for _, b := range dk.value {
		require.Zero(t, b)
	}

	ss.Zeroize()
	for _, b := range ss.value {
		require.Zero(t, b)
	}
}

func TestRNGFailure(t *testing.T) {
	params, err := NewParametersFromLiteral(MLKEM512)
	require.NoError(t, err)

	kgen, err := NewKeyGenerator(params, failingReader{})
	require.NoError(t, err)
	_, _, err = kgen.GenKeyPairNew()
	require.Error(t, err)

	prng, err := sampling.NewKeyedPRNG(prngKey)
	require.NoError(t, err)
	kgen, err = NewKeyGenerator(params, prng)
	require.NoError(t, err)
	ek, _, err := kgen.GenKeyPairNew()
	require.NoError(t, err)

	_, _, err = ek.Encapsulate(failingReader{})
	require.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, fmt.Errorf("entropy source exhausted")
}
