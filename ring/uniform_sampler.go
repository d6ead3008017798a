package ring

import (
	"io"
)

// shake128Rate is the number of output bytes per SHAKE-128 permutation; the
// sampler reads the stream in blocks of this size.
const shake128Rate = 168

// UniformSampler wraps a byte stream, typically an extendable output function,
// and samples polynomials in the NTT domain with uniform coefficients by
// rejection.
type UniformSampler struct {
	stream io.Reader
	buf    [shake128Rate]byte
}

// NewUniformSampler creates a new instance of UniformSampler reading from the
// provided byte stream.
func NewUniformSampler(stream io.Reader) *UniformSampler {
	return &UniformSampler{stream: stream}
}

// Read samples a polynomial with coefficients uniform in [0, Q) on pol. The
// stream is consumed three bytes at a time; each triple yields two 12-bit
// candidates that are kept only if below Q. The rejection branches depend
// only on the public stream.
func (s *UniformSampler) Read(pol *Poly) error {
	n := 0
	for n < N {
		if _, err := io.ReadFull(s.stream, s.buf[:]); err != nil {
			return err
		}
		for i := 0; i <= shake128Rate-3 && n < N; i += 3 {
			b0, b1, b2 := uint16(s.buf[i]), uint16(s.buf[i+1]), uint16(s.buf[i+2])
			d1 := b0 | (b1&0x0f)<<8
			d2 := b1>>4 | b2<<4
			if d1 < Q {
				pol.Coeffs[n] = d1
				n++
			}
			if d2 < Q && n < N {
				pol.Coeffs[n] = d2
				n++
			}
		}
	}
	return nil
}
