// Package bigint converts between the portable byte representation of key
// fields (minimal big-endian unsigned) and math/big integers.
package bigint

import "math/big"

// Encode produces the minimal big-endian unsigned representation of n.
// Zero encodes to a single zero byte so that Decode(Encode(n)) == n holds
// for every non-negative n.
func Encode(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	return n.Bytes()
}

// Decode interprets b as a big-endian unsigned integer.
// Empty input decodes to zero.
func Decode(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
