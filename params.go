package hashkit

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// MaxHashes is the number of independent hash channels an Engine
	// provides, and so the largest supported k.
	MaxHashes = 8
	// MinLog2Bits and MaxLog2Bits bound the filter size to 2^1..2^31 bits.
	MinLog2Bits = 1
	MaxLog2Bits = 31
	// minDerivedLog2Bits is the smallest size picked when sizing from an
	// item count.
	minDerivedLog2Bits = 4
	// maxFilterBits is the largest bit count that fits a 32-bit signed size.
	maxFilterBits = math.MaxInt32
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
)

// Log2BitsFor returns the smallest log2 size, at least 16 bits, that holds
// maxItems * bitsPerItem bits.
func Log2BitsFor(maxItems, bitsPerItem int) (int, error) {
	if maxItems < 0 || bitsPerItem < 0 {
		return 0, fmt.Errorf("%w: negative sizing (items=%d, bits per item=%d)", ErrInvalidParameter, maxItems, bitsPerItem)
	}

	hi, required := bits.Mul64(uint64(maxItems), uint64(bitsPerItem))
	if hi != 0 || required >= maxFilterBits {
		return 0, fmt.Errorf("%w: %d items at %d bits each is too big", ErrInvalidParameter, maxItems, bitsPerItem)
	}

	log2Bits := minDerivedLog2Bits
	for uint64(1)<<log2Bits < required {
		log2Bits++
	}
	return log2Bits, nil
}

// OptimalParams picks a filter size and hash count for the expected number
// of items and the desired false positive rate. The result is clamped to
// what the filter supports, so very large inputs or very small rates get
// the closest achievable configuration.
func OptimalParams(expectedItems uint64, fpRate float64) (log2Bits, k int) {
	if expectedItems == 0 {
		expectedItems = 1
	}
	if fpRate <= 0 {
		fpRate = 0.0001 // default to 0.01%
	}
	if fpRate >= 1 {
		fpRate = 0.99
	}

	// Optimal bits per item: -ln(fpRate) / ln(2)^2
	bitsPerItem := -math.Log(fpRate) / ln2Squared
	totalBits := float64(expectedItems) * bitsPerItem

	log2Bits = minDerivedLog2Bits
	for log2Bits < MaxLog2Bits && math.Ldexp(1, log2Bits) < totalBits {
		log2Bits++
	}

	// Optimal k for the rounded size: (m/n) * ln(2)
	actualBitsPerItem := math.Ldexp(1, log2Bits) / float64(expectedItems)
	k = int(math.Round(actualBitsPerItem * ln2))
	k = max(k, 1)
	k = min(k, MaxHashes)

	return log2Bits, k
}

// EstimateFalsePositiveRate estimates the false positive rate of a filter
// with 2^log2Bits bits and k hashes after itemsAdded insertions.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(log2Bits, k int, itemsAdded uint64) float64 {
	m := math.Ldexp(1, log2Bits)
	n := float64(itemsAdded)
	kf := float64(k)

	if n == 0 || k <= 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-kf*n/m), kf)
}

func validHashes(k int) error {
	if k < 1 || k > MaxHashes {
		return fmt.Errorf("%w: k=%d is not supported (valid range: 1-%d)", ErrInvalidParameter, k, MaxHashes)
	}
	return nil
}
