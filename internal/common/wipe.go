// Package common holds small helpers shared across the client packages.
package common

// WipeBytes overwrites b with zeros. Use it on password buffers as soon as
// the submission that needed them has settled.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
