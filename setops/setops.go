// Package setops holds small helpers built from a set, a heap and a sort:
// subset checking, k-th largest selection and merging two slices.
package setops

import (
	"cmp"
	"container/heap"
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrInvalidK is returned by KthLargest when k is not in [1, len(values)].
var ErrInvalidK = errors.New("setops: invalid k")

// IsSubset reports whether every element of candidate appears in set.
// Duplicates are ignored on both sides.
func IsSubset[T comparable](set, candidate []T) bool {
	s := mapset.NewThreadUnsafeSet(set...)
	for _, v := range candidate {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// KthLargest returns the k-th largest element of values, counting
// duplicates, using a min-heap that never holds more than k elements.
func KthLargest[T cmp.Ordered](values []T, k int) (T, error) {
	if k < 1 || k > len(values) {
		var zero T
		return zero, fmt.Errorf("%w: k=%d with %d values", ErrInvalidK, k, len(values))
	}

	h := make(minHeap[T], 0, k+1)
	for _, v := range values {
		heap.Push(&h, v)
		if h.Len() > k {
			heap.Pop(&h)
		}
	}
	return h[0], nil
}

// MergeSorted returns a new sorted slice holding the elements of a and b.
func MergeSorted[T cmp.Ordered](a, b []T) []T {
	merged := slices.Concat(a, b)
	slices.Sort(merged)
	return merged
}

// minHeap implements heap.Interface.
type minHeap[T cmp.Ordered] []T

func (h minHeap[T]) Len() int           { return len(h) }
func (h minHeap[T]) Less(i, j int) bool { return h[i] < h[j] }
func (h minHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap[T]) Push(x any) {
	*h = append(*h, x.(T))
}

func (h *minHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
