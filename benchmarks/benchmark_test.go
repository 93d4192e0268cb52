package benchmarks

import (
	"fmt"
	"testing"

	bab "github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	"github.com/greatroar/blobloom"
	"github.com/jcalabro/hashkit"
)

const (
	benchItems       = 1_000_000
	benchFPRate      = 0.01
	benchBitsPerItem = 10
	benchK           = 7
)

// Pre-generate test data to avoid measuring string generation
var testKeys [][]byte
var testKeysStr []string

func init() {
	testKeys = make([][]byte, benchItems)
	testKeysStr = make([]string, benchItems)
	for i := range benchItems {
		s := fmt.Sprintf("key-%d", i)
		testKeys[i] = []byte(s)
		testKeysStr[i] = s
	}
}

func newHashkitFilter(b *testing.B) *hashkit.Filter {
	b.Helper()
	f, err := hashkit.NewForItems(benchItems, benchBitsPerItem, benchK)
	if err != nil {
		b.Fatal(err)
	}
	return f
}

// ============================================================================
// Sequential Add Benchmarks
// ============================================================================

func BenchmarkAddSequential_Hashkit(b *testing.B) {
	f := newHashkitFilter(b)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeysStr[i%benchItems])
	}
}

func BenchmarkAddSequential_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.AddString(testKeysStr[i%benchItems])
	}
}

func BenchmarkAddSequential_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	b.ResetTimer()
	for i := range b.N {
		// blobloom requires pre-hashing
		h := xxhash.Sum64(testKeys[i%benchItems])
		f.Add(h)
	}
}

// ============================================================================
// Sequential Contains Benchmarks
// ============================================================================

func BenchmarkContainsSequential_Hashkit(b *testing.B) {
	f := newHashkitFilter(b)
	for i := range benchItems {
		f.Add(testKeysStr[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Contains(testKeysStr[i%benchItems])
	}
}

func BenchmarkContainsSequential_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.AddString(testKeysStr[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.TestString(testKeysStr[i%benchItems])
	}
}

func BenchmarkContainsSequential_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	for i := range benchItems {
		f.Add(xxhash.Sum64(testKeys[i]))
	}
	b.ResetTimer()
	for i := range b.N {
		f.Has(xxhash.Sum64(testKeys[i%benchItems]))
	}
}

// ============================================================================
// Allocation Benchmarks
// ============================================================================

func BenchmarkAddAlloc_Hashkit(b *testing.B) {
	f := newHashkitFilter(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeysStr[i%benchItems])
	}
}

func BenchmarkAddAlloc_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.AddString(testKeysStr[i%benchItems])
	}
}

// ============================================================================
// Cuckoo Table Benchmarks
// ============================================================================

const tableItems = 10_000

func benchmarkTablePut(b *testing.B, hash hashkit.Hasher[string]) {
	for range b.N {
		table, err := hashkit.NewTable[string, int](16, hash)
		if err != nil {
			b.Fatal(err)
		}
		for i := range tableItems {
			table.Put(testKeysStr[i], i)
		}
	}
}

func BenchmarkTablePut_Poly31(b *testing.B) {
	benchmarkTablePut(b, hashkit.HashString)
}

func BenchmarkTablePut_XXH3(b *testing.B) {
	benchmarkTablePut(b, hashkit.HashStringXXH3)
}

func BenchmarkMapPut(b *testing.B) {
	for range b.N {
		m := make(map[string]int, 16)
		for i := range tableItems {
			m[testKeysStr[i]] = i
		}
	}
}

func BenchmarkTableGet_XXH3(b *testing.B) {
	table, err := hashkit.NewTable[string, int](tableItems, hashkit.HashStringXXH3)
	if err != nil {
		b.Fatal(err)
	}
	for i := range tableItems {
		table.Put(testKeysStr[i], i)
	}
	b.ResetTimer()
	for i := range b.N {
		table.Get(testKeysStr[i%tableItems])
	}
}

func BenchmarkMapGet(b *testing.B) {
	m := make(map[string]int, tableItems)
	for i := range tableItems {
		m[testKeysStr[i]] = i
	}
	b.ResetTimer()
	for i := range b.N {
		_ = m[testKeysStr[i%tableItems]]
	}
}
