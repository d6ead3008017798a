package ring

// NTT computes the in-place NTT transformation of p, mapping the coefficient
// representation of an element of Z_q[X]/(X^N+1) to its image in the product
// of the 128 quadratic extensions Z_q[X]/(X^2 - gamma_i). The input must be
// fully reduced; so is the output.
func NTT(p *Poly) {
	f := &p.Coeffs
	k := 1
	for length := 128; length >= 2; length >>= 1 {
		for start := 0; start < N; start += 2 * length {
			zeta := nttZetas[k]
			k++
			for j := start; j < start+length; j++ {
				t := BRed(zeta, f[j+length])
				f[j+length] = SubMod(f[j], t)
				f[j] = AddMod(f[j], t)
			}
		}
	}
}

// InvNTT computes the in-place inverse NTT transformation of p, reversing the
// butterfly schedule of NTT with the Gentleman-Sande butterfly and applying
// the final scaling by 128^-1 mod Q.
func InvNTT(p *Poly) {
	f := &p.Coeffs
	k := 127
	for length := 2; length <= 128; length <<= 1 {
		for start := 0; start < N; start += 2 * length {
			zeta := nttZetas[k]
			k--
			for j := start; j < start+length; j++ {
				t := f[j]
				f[j] = AddMod(t, f[j+length])
				f[j+length] = BRed(zeta, SubMod(f[j+length], t))
			}
		}
	}
	for i := 0; i < N; i++ {
		f[i] = BRed(f[i], NInv)
	}
}

// MulCoeffsNTT evaluates p3 = p1 * p2 in the NTT domain: the i-th pair of
// coefficients of p1 and p2 is interpreted as a degree-one polynomial and the
// products are taken modulo X^2 - gamma_i. Operands need not be reduced below
// Q as long as they fit in 12 bits; the output is fully reduced.
func MulCoeffsNTT(p1, p2, p3 *Poly) {
	for i := 0; i < 128; i++ {
		gamma := nttGammas[i]
		a0, a1 := p1.Coeffs[2*i], p1.Coeffs[2*i+1]
		b0, b1 := p2.Coeffs[2*i], p2.Coeffs[2*i+1]
		p3.Coeffs[2*i] = AddMod(BRed(a0, b0), BRed(BRed(a1, b1), gamma))
		p3.Coeffs[2*i+1] = AddMod(BRed(a0, b1), BRed(a1, b0))
	}
}

// MulCoeffsNTTThenAdd evaluates p3 = p3 + p1 * p2 in the NTT domain. It is
// the accumulation step of the matrix-vector and dot products.
func MulCoeffsNTTThenAdd(p1, p2, p3 *Poly) {
	for i := 0; i < 128; i++ {
		gamma := nttGammas[i]
		a0, a1 := p1.Coeffs[2*i], p1.Coeffs[2*i+1]
		b0, b1 := p2.Coeffs[2*i], p2.Coeffs[2*i+1]
		c0 := AddMod(BRed(a0, b0), BRed(BRed(a1, b1), gamma))
		c1 := AddMod(BRed(a0, b1), BRed(a1, b0))
		p3.Coeffs[2*i] = AddMod(p3.Coeffs[2*i], c0)
		p3.Coeffs[2*i+1] = AddMod(p3.Coeffs[2*i+1], c1)
	}
}
