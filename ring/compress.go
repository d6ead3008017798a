package ring

// Compress maps x in [0, Q) to round((2^d/Q)*x) mod 2^d, rounding half up.
// The quotient is obtained branch-free: the remainder of the numerator mod Q
// comes from a Barrett reduction and the remaining exact division by Q is a
// multiplication by Q^-1 mod 2^32.
func Compress(d int, x uint16) uint16 {
	num := uint32(x)<<d + Q/2
	quo := (num - uint32(BRedAdd(num))) * qInv32
	return uint16(quo) & (1<<d - 1)
}

// Decompress maps y in [0, 2^d) to round((Q/2^d)*y), rounding half up. It is
// a near-inverse of Compress: the reconstruction error is bounded by
// ceil(Q/2^(d+1)).
func Decompress(d int, y uint16) uint16 {
	return uint16((uint32(y)*Q + 1<<(d-1)) >> d)
}

// CompressPoly compresses every coefficient of p in place.
func CompressPoly(d int, p *Poly) {
	for i := 0; i < N; i++ {
		p.Coeffs[i] = Compress(d, p.Coeffs[i])
	}
}

// DecompressPoly decompresses every coefficient of p in place.
func DecompressPoly(d int, p *Poly) {
	for i := 0; i < N; i++ {
		p.Coeffs[i] = Decompress(d, p.Coeffs[i])
	}
}
