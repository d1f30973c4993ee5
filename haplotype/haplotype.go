// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package haplotype provides ground truth haplotype sets for phasing
// simulations.
package haplotype

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Allele alphabets.
var (
	Binary      = []alphabet.Letter("01")
	Nucleotides = []alphabet.Letter("atgc")
)

// Unknown is the allele used in ground truth files for an undetermined site.
const Unknown alphabet.Letter = 'X'

// Set is an ordered set of haplotypes of equal length over an allele
// alphabet.
type Set struct {
	Haplotypes []alphabet.Letters
	Alleles    []alphabet.Letter
}

// Ploidy returns the number of haplotypes in the set.
func (s Set) Ploidy() int { return len(s.Haplotypes) }

// Len returns the haplotype length of the set.
func (s Set) Len() int {
	if len(s.Haplotypes) == 0 {
		return 0
	}
	return len(s.Haplotypes[0])
}

// Validate returns an error if the haplotypes in s differ in length.
func (s Set) Validate() error {
	for i, h := range s.Haplotypes {
		if len(h) != s.Len() {
			return errors.Errorf("haplotype: length mismatch: haplotype %d has %d alleles, want %d", i, len(h), s.Len())
		}
	}
	return nil
}

// At returns the allele of haplotype h at position i.
func (s Set) At(h, i int) alphabet.Letter { return s.Haplotypes[h][i] }

// Slice returns the columns [start, end) of s. The returned set shares
// storage with s.
func (s Set) Slice(start, end int) (Set, error) {
	if start < 0 || end > s.Len() || start > end {
		return Set{}, errors.Errorf("haplotype: slice [%d,%d) out of range [0,%d)", start, end, s.Len())
	}
	hs := make([]alphabet.Letters, len(s.Haplotypes))
	for i, h := range s.Haplotypes {
		hs[i] = h[start:end]
	}
	return Set{Haplotypes: hs, Alleles: s.Alleles}, nil
}

// Substitute returns an allele of the set's alphabet different from l,
// chosen uniformly. A two letter alphabet toggles l without using rnd.
func (s Set) Substitute(l alphabet.Letter, rnd *rand.Rand) alphabet.Letter {
	alts := make([]alphabet.Letter, 0, len(s.Alleles))
	for _, a := range s.Alleles {
		if a != l {
			alts = append(alts, a)
		}
	}
	switch len(alts) {
	case 0:
		return l
	case 1:
		return alts[0]
	}
	return alts[rnd.Intn(len(alts))]
}

// Generate returns a set of ploidy haplotypes of length n over alleles.
// At every position at least two haplotypes carry different alleles.
func Generate(rnd *rand.Rand, ploidy, n int, alleles []alphabet.Letter) (Set, error) {
	switch {
	case ploidy < 2:
		return Set{}, errors.Errorf("haplotype: ploidy must be at least 2: %d", ploidy)
	case n <= 0:
		return Set{}, errors.Errorf("haplotype: length must be positive: %d", n)
	case len(alleles) < 2:
		return Set{}, errors.New("haplotype: need at least two alleles")
	}

	s := Set{Haplotypes: make([]alphabet.Letters, ploidy), Alleles: alleles}
	for i := range s.Haplotypes {
		s.Haplotypes[i] = make(alphabet.Letters, n)
	}
	col := make([]alphabet.Letter, ploidy)
	for j := 0; j < n; j++ {
		same := true
		for i := range col {
			col[i] = alleles[rnd.Intn(len(alleles))]
			if col[i] != col[0] {
				same = false
			}
		}
		if same {
			i := rnd.Intn(ploidy)
			col[i] = s.Substitute(col[i], rnd)
		}
		for i, l := range col {
			s.Haplotypes[i][j] = l
		}
	}
	return s, nil
}

// Complementary returns a pair of binary haplotypes of length n where the
// second is the complement of the first.
func Complementary(rnd *rand.Rand, n int) (Set, error) {
	if n <= 0 {
		return Set{}, errors.Errorf("haplotype: length must be positive: %d", n)
	}
	a := make(alphabet.Letters, n)
	b := make(alphabet.Letters, n)
	for i := range a {
		v := rnd.Intn(2)
		a[i] = Binary[v]
		b[i] = Binary[(v+1)%2]
	}
	return Set{Haplotypes: []alphabet.Letters{a, b}, Alleles: Binary}, nil
}

// Infer returns the allele alphabet for the haplotypes in hs: Binary if
// they hold only 0, 1 and the unknown allele, otherwise Nucleotides.
func Infer(hs []alphabet.Letters) []alphabet.Letter {
	for _, h := range hs {
		for _, l := range h {
			switch l {
			case '0', '1', Unknown:
			default:
				return Nucleotides
			}
		}
	}
	return Binary
}
