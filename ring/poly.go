package ring

// Poly is the structure that contains the coefficients of a polynomial of
// degree N-1. Depending on the operations it went through, a Poly holds either
// the coefficient representation of an element of Z_q[X]/(X^N+1) or its NTT
// representation; callers track which of the two forms they hold.
type Poly struct {
	Coeffs [N]uint16
}

// NewPoly creates a new polynomial with all coefficients set to zero.
func NewPoly() *Poly {
	return new(Poly)
}

// CopyNew creates an exact copy of the target polynomial.
func (pol *Poly) CopyNew() *Poly {
	p := new(Poly)
	p.Coeffs = pol.Coeffs
	return p
}

// Copy copies the coefficients of p on the target polynomial.
func (pol *Poly) Copy(p *Poly) {
	pol.Coeffs = p.Coeffs
}

// Equal returns true if the receiver Poly is equal to the provided other Poly.
// The comparison is not constant time; it must not be used on secret values.
func (pol *Poly) Equal(other *Poly) bool {
	return pol.Coeffs == other.Coeffs
}

// Zero sets all coefficients of the target polynomial to 0. It is used both
// to recycle buffers and to clear polynomials that held secret values.
func (pol *Poly) Zero() {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = 0
	}
}

// Add evaluates p3 = p1 + p2 coefficient-wise mod Q.
func Add(p1, p2, p3 *Poly) {
	for i := 0; i < N; i++ {
		p3.Coeffs[i] = AddMod(p1.Coeffs[i], p2.Coeffs[i])
	}
}

// Sub evaluates p3 = p1 - p2 coefficient-wise mod Q.
func Sub(p1, p2, p3 *Poly) {
	for i := 0; i < N; i++ {
		p3.Coeffs[i] = SubMod(p1.Coeffs[i], p2.Coeffs[i])
	}
}
