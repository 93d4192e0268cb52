package main

import (
	"math/rand/v2"

	"github.com/jcalabro/hashkit"
)

// letters is the alphabet random words are drawn from. The accented
// letters take two bytes in UTF-8.
const letters = "abcdefghijklmnopqrstuvexyABCDEFGHIJKLMNOPQRSTUVWYXZzéèêàôû"

type result struct {
	log2Bits       int
	k              int
	items          int
	absent         int // probes that were not among the added words
	falsePositives int
	estimated      float64
}

func (r result) observed() float64 {
	if r.absent == 0 {
		return 0
	}
	return float64(r.falsePositives) / float64(r.absent)
}

// sweep builds one filter per (size, k) pair, fills it with cfg.items
// random words and probes it with cfg.probes more.
func sweep(cfg config, emit func(result)) error {
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))
	words := newWordSource(rng)

	for log2Bits := cfg.minLog2; log2Bits <= cfg.maxLog2; log2Bits++ {
		for k := 1; k <= hashkit.MaxHashes; k++ {
			r, err := measure(log2Bits, k, cfg.items, cfg.probes, words)
			if err != nil {
				return err
			}
			emit(r)
		}
	}
	return nil
}

func measure(log2Bits, k, items, probes int, words *wordSource) (result, error) {
	f, err := hashkit.NewWithParams(log2Bits, k)
	if err != nil {
		return result{}, err
	}

	added := make(map[string]struct{}, items)
	for range items {
		w := words.next()
		added[w] = struct{}{}
		f.Add(w)
	}

	r := result{
		log2Bits:  log2Bits,
		k:         k,
		items:     items,
		estimated: f.EstimatedFalsePositiveRate(),
	}
	for range probes {
		w := words.next()
		if _, ok := added[w]; ok {
			continue
		}
		r.absent++
		if f.Contains(w) {
			r.falsePositives++
		}
	}
	return r, nil
}

type wordSource struct {
	rng      *rand.Rand
	alphabet []rune
}

func newWordSource(rng *rand.Rand) *wordSource {
	return &wordSource{rng: rng, alphabet: []rune(letters)}
}

// next returns a word of 1 to 12 letters whose length clusters around 5-7.
func (s *wordSource) next() string {
	n := 0
	for n < 1 || n > 12 {
		n = 5 + 2*int(s.rng.NormFloat64()+0.5)
	}

	word := make([]rune, n)
	for i := range word {
		word[i] = s.alphabet[s.rng.IntN(len(s.alphabet))]
	}
	return string(word)
}
