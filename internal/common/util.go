package common

// WipeByteArray zeroes b in place. Used for passwords read from the terminal.
// A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
