package hashkit

import (
	"sync"
	"unicode/utf16"
)

const (
	// tableSeed seeds the scramble table recurrence.
	tableSeed = 0x544B2FBACAAF1684
	// hashStart is the initial accumulator value for every string.
	hashStart = 0xBB40E64DA205B064
	// hashMult is the odd multiplier applied between byte folds.
	hashMult = 7664345821815920749
	// scrambleRounds is the number of shift-xor rounds per table slot.
	scrambleRounds = 31
)

// Engine computes deterministic 64-bit string hashes over up to MaxHashes
// independent channels. Each channel walks its own 256-entry slice of a
// shared scramble table, so hashes of the same string on different channels
// are uncorrelated.
//
// An Engine is immutable once built and safe to share.
type Engine struct {
	table [256 * MaxHashes]uint64
}

// NewEngine builds the scramble table. The table depends only on fixed
// constants, so every Engine (in every process) produces the same hashes.
func NewEngine() *Engine {
	e := &Engine{}
	h := uint64(tableSeed)
	for i := range e.table {
		for range scrambleRounds {
			h ^= h >> 7
		}
		h ^= h << 11
		h ^= h >> 10
		e.table[i] = h
	}
	return e
}

var defaultEngine = sync.OnceValue(NewEngine)

// DefaultEngine returns the process-wide engine, building it on first use.
func DefaultEngine() *Engine {
	return defaultEngine()
}

// Hash returns the 64-bit hash of s on the given channel. Characters are
// consumed as UTF-16 code units, low byte first. It panics if channel is
// outside [0, MaxHashes).
func (e *Engine) Hash(s string, channel int) uint64 {
	if channel < 0 || channel >= MaxHashes {
		panic("hashkit: hash channel out of range")
	}
	ht := e.table[channel*256 : (channel+1)*256]

	h := uint64(hashStart)
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			h = fold(h, ht, uint16(hi))
			h = fold(h, ht, uint16(lo))
			continue
		}
		h = fold(h, ht, uint16(r))
	}
	return h
}

// fold mixes one UTF-16 code unit into the accumulator.
func fold(h uint64, ht []uint64, unit uint16) uint64 {
	h = (h * hashMult) ^ ht[unit&0xff]
	h = (h * hashMult) ^ ht[unit>>8]
	return h
}
