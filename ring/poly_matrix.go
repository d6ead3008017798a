package ring

// PolyMatrix is a k x k matrix of polynomials in the NTT domain.
type PolyMatrix []PolyVector

// NewPolyMatrix creates a new k x k matrix of zero polynomials.
func NewPolyMatrix(k int) PolyMatrix {
	m := make(PolyMatrix, k)
	for i := range m {
		m[i] = NewPolyVector(k)
	}
	return m
}

// MatVecMulNTT evaluates w = A * u in the NTT domain:
// w[i] = sum_j A[i][j] * u[j].
func MatVecMulNTT(A PolyMatrix, u, w PolyVector) {
	for i := range A {
		w[i].Zero()
		for j := range A[i] {
			MulCoeffsNTTThenAdd(A[i][j], u[j], w[i])
		}
	}
}

// MatTransposeVecMulNTT evaluates w = A^T * u in the NTT domain:
// w[i] = sum_j A[j][i] * u[j].
func MatTransposeVecMulNTT(A PolyMatrix, u, w PolyVector) {
	for i := range A {
		w[i].Zero()
		for j := range A {
			MulCoeffsNTTThenAdd(A[j][i], u[j], w[i])
		}
	}
}
