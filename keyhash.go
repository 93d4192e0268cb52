package hashkit

import (
	"unicode/utf16"

	"github.com/zeebo/xxh3"
)

// Hasher maps a key to a stable 64-bit hash. Equal keys must hash equally.
type Hasher[K any] func(K) uint64

// HashString is a polynomial string hash (multiplier 31) over UTF-16 code
// units. A single-character string hashes to its code point, which keeps
// small tables easy to reason about. The accumulator is a wrapping uint64,
// so beyond short strings the result differs from a 32-bit String.hashCode
// style hash. Distinct strings can still collide, e.g. "Aa" and "BB".
func HashString(s string) uint64 {
	var h uint64
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			h = 31*h + uint64(hi)
			h = 31*h + uint64(lo)
			continue
		}
		h = 31*h + uint64(r)
	}
	return h
}

// HashStringXXH3 hashes s with xxh3 without allocating.
func HashStringXXH3(s string) uint64 {
	return xxh3.HashString(s)
}

// HashBytesXXH3 hashes data with xxh3. Use it for fixed-size array keys
// converted with a slice expression.
func HashBytesXXH3(data []byte) uint64 {
	return xxh3.Hash(data)
}

// HashInt hashes an integer to its absolute value.
func HashInt(i int) uint64 {
	if i < 0 {
		return uint64(-i)
	}
	return uint64(i)
}
