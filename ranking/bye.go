package ranking

// NextPowerOfTwo returns the smallest power of two >= n. n must be >= 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// ByeCount is the number of automatic advances needed to bring a field of n
// pairs up to the next power of two. Zero when n already is one.
func ByeCount(n int) int {
	if n <= 0 {
		return 0
	}
	return NextPowerOfTwo(n) - n
}
