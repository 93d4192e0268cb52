// Package hashkit provides two hash-based lookup structures: an add-only
// bloom filter and a cuckoo hash table.
//
// # Hash Engine
//
// [Engine] computes deterministic 64-bit string hashes on up to [MaxHashes]
// independent channels. Each channel folds the input, one byte at a time,
// through its own 256-entry slice of a scramble table, multiplying the
// accumulator by a fixed odd constant between folds. The table is generated
// from a fixed seed, so hashes are stable across processes and releases.
// [DefaultEngine] builds the table once per process.
//
// # Bloom Filter
//
// [Filter] is a bit array of 2^log2Bits bits. Adding a string sets one bit
// per hash channel (k bits in total); a lookup reports the string present
// only if all k bits are set. There are no false negatives: a string that
// was added is always reported present. False positives are possible:
//
//	fp ≈ (1 - e^(-kn/m))^k
//
// for n items in m bits. Use [EstimateFalsePositiveRate] to size a filter.
//
// Filters are created in one of three ways:
//
//	// 2^16 bits, 3 hashes
//	f, err := hashkit.NewWithParams(16, 3)
//
//	// room for 16,000 items at 8 bits each, 3 hashes
//	f, err := hashkit.NewForItems(16_000, 8, 3)
//
//	// 10,000 items at a 1% false positive rate
//	f, err := hashkit.New(10_000, 0.01)
//
// Filters never shrink, grow or forget: bits are only ever set.
//
// # Cuckoo Table
//
// [Table] stores key/value pairs in a slot array. Each key has two candidate
// slots:
//
//	h1 = hash(key) mod capacity
//	h2 = (37*17 + hash(key)) mod capacity
//
// so [Table.Get] and [Table.Remove] probe at most two slots. [Table.Put]
// seats a pair at its primary slot, evicting the occupant to that
// occupant's other slot, and so on. After as many evictions as there are
// slots the table presumes a cycle, grows to 2*capacity+1 and re-seats every
// pair. Pairs are unique by (key, value): a key may hold several values,
// but at most two pairs may share one key hash (see [Table.Put]).
//
// The hash is supplied by the caller as a [Hasher]. [HashString] is a simple
// polynomial hash; [HashStringXXH3] and [HashBytesXXH3] use xxh3.
//
// # Thread Safety
//
// Neither [Filter] nor [Table] is safe for concurrent use. Callers that
// share one across goroutines must synchronize access themselves. An
// [Engine] is immutable and may be shared freely.
package hashkit
