package hashkit

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Constants of the secondary hash, h2(key) = (a*b + hash(key)) mod capacity.
const (
	altA = 37
	altB = 17
)

// ErrHashCollision is the panic value (wrapped) when Put is given a third
// pair whose key hash is shared by two pairs already in the table.
var ErrHashCollision = errors.New("hashkit: too many pairs share a key hash")

// slot is either empty or holds one key/value pair. There is no tombstone
// state; removing a pair returns the slot to empty.
type slot[K, V comparable] struct {
	key      K
	value    V
	occupied bool
}

// Table is a cuckoo hash table. Every pair lives in one of two slots chosen
// by its key, so Get and Remove probe at most two slots.
//
// Pairs are unique by (key, value), not by key: putting a second value under
// an existing key stores both, and Get returns whichever occupies one of the
// key's two slots first. Putting an identical pair again is a no-op.
//
// The secondary slot is a fixed offset from the primary one, so keys whose
// hashes agree modulo the capacity share both slots and a third such pair
// forces growth. Tables holding many pairs therefore run sparse. Pairs whose
// keys hash to the same 64-bit value share both slots at every capacity, so
// at most two of them fit: Put panics with ErrHashCollision on a third one
// (for example a third value under one key) and leaves the table unchanged.
//
// Table is not safe for concurrent use.
type Table[K, V comparable] struct {
	slots []slot[K, V]
	hash  Hasher[K]
}

// NewTable creates a table with the given initial capacity. Capacity must be
// positive and hash must not be nil.
func NewTable[K, V comparable](capacity int, hash Hasher[K]) (*Table[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive (got %d)", ErrInvalidParameter, capacity)
	}
	if hash == nil {
		return nil, fmt.Errorf("%w: nil hasher", ErrInvalidParameter)
	}
	return &Table[K, V]{
		slots: make([]slot[K, V], capacity),
		hash:  hash,
	}, nil
}

func (t *Table[K, V]) h1(key K) int {
	return int(t.hash(key) % uint64(len(t.slots)))
}

func (t *Table[K, V]) h2(key K) int {
	c := uint64(len(t.slots))
	return int((t.hash(key)%c + (altA*altB)%c) % c)
}

// Put inserts the pair. If inserting displaces pairs around a cycle, the
// table grows to 2*capacity+1 and every pair is re-seated.
//
// Put panics with an error wrapping ErrHashCollision if two pairs whose keys
// hash exactly like key are already stored, since no capacity can seat three.
func (t *Table[K, V]) Put(key K, value V) {
	if t.holds(t.h1(key), key, value) || t.holds(t.h2(key), key, value) {
		return
	}
	if n := t.sharedHash(key); n >= 2 {
		panic(fmt.Errorf("%w: key %v would be the third pair with hash %#x", ErrHashCollision, key, t.hash(key)))
	}

	pending := []slot[K, V]{{key: key, value: value, occupied: true}}
	for len(pending) > 0 {
		s := pending[0]
		pending = pending[1:]

		unseated, ok := t.seat(s)
		if ok {
			continue
		}

		// Re-seat the old contents first, then the pair left over from the
		// cycle, then whatever an earlier growth had not re-seated yet.
		snapshot := t.grow()
		next := make([]slot[K, V], 0, len(snapshot)+1+len(pending))
		next = append(next, snapshot...)
		next = append(next, unseated)
		pending = append(next, pending...)
	}
}

// seat places s by displacement starting at its primary slot. It gives up
// after as many displacements as there are slots and returns the pair that
// is still unseated.
func (t *Table[K, V]) seat(s slot[K, V]) (slot[K, V], bool) {
	pos := t.h1(s.key)
	for range len(t.slots) {
		cur := &t.slots[pos]
		if !cur.occupied {
			*cur = s
			return slot[K, V]{}, true
		}
		if cur.key == s.key && cur.value == s.value {
			return slot[K, V]{}, true
		}

		s, *cur = *cur, s

		// The evicted pair moves to its other slot.
		if pos == t.h1(s.key) {
			pos = t.h2(s.key)
		} else {
			pos = t.h1(s.key)
		}
	}
	return s, false
}

// grow empties the table at capacity 2*old+1 and returns the pairs it held
// in ascending slot order.
func (t *Table[K, V]) grow() []slot[K, V] {
	snapshot := make([]slot[K, V], 0, len(t.slots))
	for _, s := range t.slots {
		if s.occupied {
			snapshot = append(snapshot, s)
		}
	}
	t.slots = make([]slot[K, V], 2*len(t.slots)+1)
	return snapshot
}

// sharedHash counts the stored pairs whose key hash equals key's. Such pairs
// can only sit in key's candidate slots.
func (t *Table[K, V]) sharedHash(key K) int {
	h := t.hash(key)
	p1, p2 := t.h1(key), t.h2(key)
	n := 0
	for _, pos := range [2]int{p1, p2} {
		if s := t.slots[pos]; s.occupied && t.hash(s.key) == h {
			n++
		}
		if p1 == p2 {
			break
		}
	}
	return n
}

func (t *Table[K, V]) holds(pos int, key K, value V) bool {
	s := t.slots[pos]
	return s.occupied && s.key == key && s.value == value
}

// Get returns the value stored under key in the key's primary slot, or
// failing that its secondary slot.
func (t *Table[K, V]) Get(key K) (V, bool) {
	if s := t.slots[t.h1(key)]; s.occupied && s.key == key {
		return s.value, true
	}
	if s := t.slots[t.h2(key)]; s.occupied && s.key == key {
		return s.value, true
	}
	var zero V
	return zero, false
}

// Remove deletes the exact (key, value) pair and reports whether it was
// present.
func (t *Table[K, V]) Remove(key K, value V) bool {
	for _, pos := range [2]int{t.h1(key), t.h2(key)} {
		if t.holds(pos, key, value) {
			t.slots[pos] = slot[K, V]{}
			return true
		}
	}
	return false
}

// Len returns the number of stored pairs. It scans every slot.
func (t *Table[K, V]) Len() int {
	n := 0
	for _, s := range t.slots {
		if s.occupied {
			n++
		}
	}
	return n
}

// Cap returns the number of slots.
func (t *Table[K, V]) Cap() int {
	return len(t.slots)
}

// Clear removes every pair. The capacity is unchanged.
func (t *Table[K, V]) Clear() {
	clear(t.slots)
}

// Keys returns the distinct keys in the table.
func (t *Table[K, V]) Keys() mapset.Set[K] {
	keys := mapset.NewThreadUnsafeSet[K]()
	for _, s := range t.slots {
		if s.occupied {
			keys.Add(s.key)
		}
	}
	return keys
}

// Values returns every stored value in slot order. Values stored under the
// same key all appear.
func (t *Table[K, V]) Values() []V {
	values := make([]V, 0, len(t.slots))
	for _, s := range t.slots {
		if s.occupied {
			values = append(values, s.value)
		}
	}
	return values
}

// All iterates over the stored pairs in slot order. The table must not be
// modified during iteration.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, s := range t.slots {
			if s.occupied && !yield(s.key, s.value) {
				return
			}
		}
	}
}

// String renders the pairs in slot order, e.g. "[ <A, AA> <B, BB> ]".
func (t *Table[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for k, v := range t.All() {
		fmt.Fprintf(&sb, "<%v, %v> ", k, v)
	}
	sb.WriteString("]")
	return sb.String()
}
