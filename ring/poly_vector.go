package ring

// PolyVector is a vector of polynomials over the module of rank k, with
// k in {2, 3, 4}.
type PolyVector []*Poly

// NewPolyVector creates a new vector of k zero polynomials.
func NewPolyVector(k int) PolyVector {
	v := make(PolyVector, k)
	for i := range v {
		v[i] = NewPoly()
	}
	return v
}

// AddVec evaluates p3 = p1 + p2 entry-wise.
func AddVec(p1, p2, p3 PolyVector) {
	for i := range p3 {
		Add(p1[i], p2[i], p3[i])
	}
}

// NTTVec computes the in-place NTT transformation of every entry of v.
func NTTVec(v PolyVector) {
	for i := range v {
		NTT(v[i])
	}
}

// InvNTTVec computes the in-place inverse NTT transformation of every entry
// of v.
func InvNTTVec(v PolyVector) {
	for i := range v {
		InvNTT(v[i])
	}
}

// DotProductNTT evaluates p3 = sum_i p1[i] * p2[i] in the NTT domain.
func DotProductNTT(p1, p2 PolyVector, p3 *Poly) {
	p3.Zero()
	for i := range p1 {
		MulCoeffsNTTThenAdd(p1[i], p2[i], p3)
	}
}

// Zero sets all coefficients of every entry of v to 0.
func (v PolyVector) Zero() {
	for i := range v {
		v[i].Zero()
	}
}
