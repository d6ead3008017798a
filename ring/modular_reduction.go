package ring

// barrettConstant is floor(2^32 / Q), the pre-computed reciprocal used by the
// Barrett reductions below.
const barrettConstant = (1 << 32) / Q

// qInv32 is Q^-1 mod 2^32, required for the exact divisions in Compress.
var qInv32 = qInvParams()

// qInvParams computes qInv = (Q^-1) mod 2^32.
func qInvParams() (qInv uint32) {
	var x uint32
	qInv = 1
	x = Q
	for i := 0; i < 31; i++ {
		qInv *= x
		x *= x
	}
	return
}

// CRed returns a mod Q for a in [0, 2*Q), in constant time.
func CRed(a uint32) uint32 {
	a -= Q
	a += Q & -(a >> 31)
	return a
}

// BRed computes x*y mod Q in constant time using Barrett reduction.
func BRed(x, y uint16) uint16 {
	z := uint32(x) * uint32(y)
	t := uint32((uint64(z) * barrettConstant) >> 32)
	return uint16(CRed(z - t*Q))
}

// BRedAdd computes a mod Q in constant time for any a < 2^24.
func BRedAdd(a uint32) uint16 {
	t := uint32((uint64(a) * barrettConstant) >> 32)
	return uint16(CRed(a - t*Q))
}

// AddMod returns a+b mod Q in constant time. Both inputs must be reduced.
func AddMod(a, b uint16) uint16 {
	return uint16(CRed(uint32(a) + uint32(b)))
}

// SubMod returns a-b mod Q in constant time. Both inputs must be reduced.
func SubMod(a, b uint16) uint16 {
	return uint16(CRed(uint32(a) + Q - uint32(b)))
}
