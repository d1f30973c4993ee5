// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wif

import (
	"sort"

	"github.com/biogo/phasesim/haplotype"
	"github.com/biogo/phasesim/sampler"
	"golang.org/x/exp/rand"
)

// FromSpan returns the read covering sp drawn from haplotype sp.Haplotype
// of set. If sp carries an error, the allele at the error position is
// replaced by a different allele of the set's alphabet. The set is not
// modified.
func FromSpan(sp sampler.Span, set haplotype.Set, rnd *rand.Rand) Read {
	rd := Read{
		Sites: make([]Site, 0, sp.End-sp.Start+1),
		MapQ:  MapQ,
		Tail:  Tail,
	}
	h := set.Haplotypes[sp.Haplotype]
	for i := sp.Start; i <= sp.End; i++ {
		a := h[i]
		if i == sp.Error {
			a = set.Substitute(a, rnd)
		}
		rd.Sites = append(rd.Sites, Site{Pos: i, Base: Placeholder, Allele: a, Quality: Quality})
	}
	return rd
}

// Offset returns a copy of rd with every site position shifted by d.
func Offset(rd Read, d int) Read {
	sites := make([]Site, len(rd.Sites))
	for i, s := range rd.Sites {
		s.Pos += d
		sites[i] = s
	}
	rd.Sites = sites
	return rd
}

// Sites returns the sorted distinct site positions observed in reads.
func Sites(reads []Read) []int {
	seen := make(map[int]bool)
	for _, rd := range reads {
		for _, s := range rd.Sites {
			seen[s.Pos] = true
		}
	}
	sites := make([]int, 0, len(seen))
	for p := range seen {
		sites = append(sites, p)
	}
	sort.Ints(sites)
	return sites
}
