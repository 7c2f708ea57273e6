package mandel

// CountIterations runs z = z*z + c from z = 0 until |z| exceeds 2 or maxIter
// iterations are done. A result of maxIter means c did not escape.
func CountIterations(c complex128, maxIter int) int {
	var z complex128
	n := 0
	for n < maxIter && real(z)*real(z)+imag(z)*imag(z) <= 4 {
		z = z*z + c
		n++
	}
	return n
}
