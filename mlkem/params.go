// Package mlkem implements a module-lattice-based key encapsulation mechanism
// as specified by the FIPS 203 initial public draft, at the three standard
// security levels ML-KEM-512, ML-KEM-768 and ML-KEM-1024. The construction
// wraps the encryption scheme of the core/kpke package in a
// Fujisaki-Okamoto-style transform with implicit rejection.
package mlkem

import (
	"encoding/json"
	"fmt"

	"github.com/latticehq/lattikem/core/kpke"
)

// SharedSecretLen is the byte length of the encapsulated shared secret,
// identical for all parameter sets.
const SharedSecretLen = 32

// ParametersLiteral is a literal representation of KEM parameters. It has
// public fields and is used to express unchecked user-defined parameters
// literally into Go programs. The NewParametersFromLiteral function resolves
// such literals into valid Parameters.
type ParametersLiteral struct {
	K    int `json:"k"`
	Eta1 int `json:"eta1"`
	Eta2 int `json:"eta2"`
	Du   int `json:"du"`
	Dv   int `json:"dv"`
}

// The three standard parameter sets.
var (
	// MLKEM512 targets security category 1.
	MLKEM512 = ParametersLiteral{K: 2, Eta1: 3, Eta2: 2, Du: 10, Dv: 4}
	// MLKEM768 targets security category 3.
	MLKEM768 = ParametersLiteral{K: 3, Eta1: 2, Eta2: 2, Du: 10, Dv: 4}
	// MLKEM1024 targets security category 5.
	MLKEM1024 = ParametersLiteral{K: 4, Eta1: 2, Eta2: 2, Du: 11, Dv: 5}
)

// Parameters stores a validated KEM parameter set. Parameters is a read-only
// value type created through NewParametersFromLiteral.
type Parameters struct {
	pke kpke.Parameters
}

// NewParametersFromLiteral creates validated Parameters from a
// ParametersLiteral. The literal must describe one of the three standard
// parameter sets; arbitrary combinations are rejected.
func NewParametersFromLiteral(pl ParametersLiteral) (Parameters, error) {
	pke, err := kpke.NewParameters(pl.K, pl.Eta1, pl.Eta2, pl.Du, pl.Dv)
	if err != nil {
		return Parameters{}, err
	}
	params := Parameters{pke: pke}
	for _, std := range []ParametersLiteral{MLKEM512, MLKEM768, MLKEM1024} {
		if pl == std {
			return params, nil
		}
	}
	return Parameters{}, fmt.Errorf("parameters %+v do not match a standard parameter set", pl)
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		K:    p.pke.K(),
		Eta1: p.pke.Eta1(),
		Eta2: p.pke.Eta2(),
		Du:   p.pke.Du(),
		Dv:   p.pke.Dv(),
	}
}

// PKEParameters returns the parameters of the underlying encryption scheme.
func (p Parameters) PKEParameters() kpke.Parameters {
	return p.pke
}

// K returns the module rank, which determines the parameter set.
func (p Parameters) K() int {
	return p.pke.K()
}

// EncapsulationKeyLen returns the byte length of an encapsulation key,
// 384*k + 32.
func (p Parameters) EncapsulationKeyLen() int {
	return p.pke.EncryptionKeyLen()
}

// DecapsulationKeyLen returns the byte length of a decapsulation key,
// 768*k + 96.
func (p Parameters) DecapsulationKeyLen() int {
	return 2*384*p.pke.K() + 96
}

// CiphertextLen returns the byte length of a ciphertext, 32*(du*k + dv).
func (p Parameters) CiphertextLen() int {
	return p.pke.CiphertextLen()
}

// Equal returns true if the receiver Parameters are identical to the other
// Parameters.
func (p Parameters) Equal(other Parameters) bool {
	return p.pke == other.pke
}

// String returns the name of the parameter set.
func (p Parameters) String() string {
	return fmt.Sprintf("ML-KEM-%d", 256*p.pke.K())
}

// MarshalJSON marshals the receiver Parameters into a JSON []byte.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON byte slice into the receiver Parameters.
func (p *Parameters) UnmarshalJSON(b []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(b, &pl); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(pl)
	return err
}
