package ring

import (
	"fmt"
)

// SamplePolyCBD derives a polynomial from 64*eta input bytes, with
// coefficients following the centered binomial distribution on {-eta, ..,
// eta} reduced mod Q: coefficient i is the difference of two sums of eta
// consecutive bits of the input. The input is typically PRF output and must
// be treated as secret; the sampling is branch-free on the input bits.
func SamplePolyCBD(eta int, b []byte, pol *Poly) error {
	if len(b) != 64*eta {
		return fmt.Errorf("invalid PRF output length %d: expected %d", len(b), 64*eta)
	}
	for i := 0; i < N; i++ {
		var x, y uint16
		for j := 0; j < eta; j++ {
			t := 2*i*eta + j
			x += uint16(b[t>>3]>>(t&7)) & 1
			t += eta
			y += uint16(b[t>>3]>>(t&7)) & 1
		}
		pol.Coeffs[i] = SubMod(x, y)
	}
	return nil
}
