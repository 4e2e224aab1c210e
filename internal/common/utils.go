package common

// WipeByteArray overwrites the contents of b with zeros. It is used to drop
// plaintext passwords read from the terminal as soon as they are sent.
//
// A nil slice is ignored.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
