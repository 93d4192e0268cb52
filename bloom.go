package hashkit

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ErrInvalidParameter is returned by constructors when a size, hash count or
// capacity is out of range.
var ErrInvalidParameter = errors.New("hashkit: invalid parameter")

// Filter is an add-only bloom filter over a power-of-two bit array.
//
// Each item sets k bits, one per hash channel of the filter's Engine. Bits
// are never cleared, so an item that was added is always reported present.
// Filter is not safe for concurrent use.
type Filter struct {
	bits     *bitset.BitSet
	engine   *Engine
	mask     uint64 // size - 1
	log2Bits int
	k        int
	count    uint64 // Number of Add calls (approximate item count)
}

// Option configures a Filter.
type Option func(*Filter)

// WithEngine makes the filter hash with e instead of DefaultEngine.
func WithEngine(e *Engine) Option {
	return func(f *Filter) {
		if e != nil {
			f.engine = e
		}
	}
}

// New creates a bloom filter sized for the expected number of items and
// desired false positive rate.
func New(expectedItems uint64, fpRate float64, opts ...Option) (*Filter, error) {
	log2Bits, k := OptimalParams(expectedItems, fpRate)
	return NewWithParams(log2Bits, k, opts...)
}

// NewWithParams creates a bloom filter of 2^log2Bits bits using k hashes.
// log2Bits must be in [1, 31] and k in [1, 8].
func NewWithParams(log2Bits, k int, opts ...Option) (*Filter, error) {
	if log2Bits < MinLog2Bits || log2Bits > MaxLog2Bits {
		return nil, fmt.Errorf("%w: log2Bits=%d is not supported (valid range: %d-%d)", ErrInvalidParameter, log2Bits, MinLog2Bits, MaxLog2Bits)
	}
	if err := validHashes(k); err != nil {
		return nil, err
	}

	size := uint64(1) << log2Bits
	f := &Filter{
		bits:     bitset.New(uint(size)),
		engine:   DefaultEngine(),
		mask:     size - 1,
		log2Bits: log2Bits,
		k:        k,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// NewForItems creates a bloom filter with room for maxItems at bitsPerItem
// bits each, rounded up to a power of two of at least 16 bits.
func NewForItems(maxItems, bitsPerItem, k int, opts ...Option) (*Filter, error) {
	log2Bits, err := Log2BitsFor(maxItems, bitsPerItem)
	if err != nil {
		return nil, err
	}
	if err := validHashes(k); err != nil {
		return nil, err
	}
	return NewWithParams(log2Bits, k, opts...)
}

// Add adds s to the filter. Adding the same string twice has no further
// effect on the bits.
func (f *Filter) Add(s string) {
	for n := range f.k {
		f.bits.Set(f.bitIndex(s, n))
	}
	f.count++
}

// Contains reports whether s might be in the filter. A false result means s
// was definitely never added; a true result may be a false positive.
func (f *Filter) Contains(s string) bool {
	for n := range f.k {
		if !f.bits.Test(f.bitIndex(s, n)) {
			return false
		}
	}
	return true
}

// TestAndAdd reports whether s might have been in the filter, then adds it.
func (f *Filter) TestAndAdd(s string) bool {
	present := true
	for n := range f.k {
		i := f.bitIndex(s, n)
		if !f.bits.Test(i) {
			present = false
			f.bits.Set(i)
		}
	}
	f.count++
	return present
}

func (f *Filter) bitIndex(s string, channel int) uint {
	return uint(f.engine.Hash(s, channel) & f.mask)
}

// Cap returns the size of the filter in bits.
func (f *Filter) Cap() uint64 {
	return f.mask + 1
}

// Log2Bits returns log2 of the filter size.
func (f *Filter) Log2Bits() int {
	return f.log2Bits
}

// K returns the number of hash channels used per item.
func (f *Filter) K() int {
	return f.k
}

// Count returns the number of Add calls, counting repeats.
func (f *Filter) Count() uint64 {
	return f.count
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *Filter) EstimatedFillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.Cap())
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of items added.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.log2Bits, f.k, f.count)
}
