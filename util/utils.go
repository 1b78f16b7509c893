package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomBytes generates a random byte slice of length n.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

// RandomHex returns the hex encoding of n random bytes (2n characters).
func RandomHex(n int) string {
	return fmt.Sprintf("%x", RandomBytes(n))
}

// RandomInt returns a uniformly distributed random integer in [0, n) using a
// cryptographic source. Used to pick among a set of candidates without bias
// introduced by a seeded PRNG.
func RandomInt(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("util: RandomInt: n must be positive, got %d", n)
	}
	num, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("util: RandomInt: %w", err)
	}
	return int(num.Int64()), nil
}
