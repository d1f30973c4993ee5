// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reduce shrinks WIF datasets to a window of SNP sites and a
// lower coverage.
//
// A dataset is a set of WIF reads and a ground truth whose columns
// correspond, in order, to the sorted distinct sites observed in the
// reads. Windows are expressed as site indices into that sorted list.
package reduce

import (
	"sort"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/phasesim/haplotype"
	"github.com/biogo/phasesim/sampler"
	"github.com/biogo/phasesim/wif"
	"github.com/biogo/store/interval"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Dataset is a WIF read set and its ground truth.
type Dataset struct {
	Reads []wif.Read
	Truth haplotype.Set
}

// Coverage returns the coverage of reads over n sites, the sum of read
// lengths divided by n.
func Coverage(reads []wif.Read, n int) float64 {
	if n <= 0 {
		return 0
	}
	var sum int
	for _, rd := range reads {
		sum += rd.Len()
	}
	return float64(sum) / float64(n)
}

// Window returns a uniformly chosen start index of a window of target
// consecutive sites from n sites.
func Window(rnd *rand.Rand, n, target int) (int, error) {
	if target <= 0 {
		return 0, errors.Errorf("reduce: window size must be positive: %d", target)
	}
	if target > n {
		return 0, errors.Errorf("reduce: window size %d exceeds %d available sites", target, n)
	}
	return rnd.Intn(n - target + 1), nil
}

// Options specifies a reduction.
type Options struct {
	// Start and SNPs define the window
	// of sites [Start, Start+SNPs).
	Start, SNPs int

	// Coverage is the target coverage. If Percent
	// is true it is a percentage of the coverage
	// available in the window.
	Coverage float64
	Percent  bool

	// ErrorRate is the probability that
	// a read carries one substituted allele.
	ErrorRate float64

	// MeanLength is the mean read length
	// used when resampling reads.
	MeanLength float64
}

func (o Options) validate(sites, truth int) error {
	switch {
	case o.SNPs <= 0:
		return errors.Errorf("reduce: window size must be positive: %d", o.SNPs)
	case o.Start < 0 || o.Start+o.SNPs > sites:
		return errors.Errorf("reduce: window [%d,%d) out of range of %d sites", o.Start, o.Start+o.SNPs, sites)
	case o.Start+o.SNPs > truth:
		return errors.Errorf("reduce: window [%d,%d) exceeds ground truth length %d", o.Start, o.Start+o.SNPs, truth)
	case o.Coverage <= 0:
		return errors.Errorf("reduce: target coverage must be positive: %v", o.Coverage)
	case o.ErrorRate < 0 || o.ErrorRate > 1:
		return errors.Errorf("reduce: error rate must be in [0,1]: %v", o.ErrorRate)
	}
	return nil
}

// Resample simulates new reads over the ground truth window defined by o.
// Only the ground truth of d is used. Read positions in the returned
// dataset are relative to the start of the window and the returned truth
// covers the positions spanned by the new reads.
func Resample(src rand.Source, d Dataset, o Options) (Dataset, error) {
	err := o.validate(d.Truth.Len(), d.Truth.Len())
	if err != nil {
		return Dataset{}, err
	}
	if o.Percent {
		return Dataset{}, errors.New("reduce: percentage coverage requires subsampling")
	}
	if o.MeanLength >= float64(o.SNPs) {
		return Dataset{}, errors.Errorf("reduce: mean read length %v not shorter than window of %d sites", o.MeanLength, o.SNPs)
	}

	truth, err := d.Truth.Slice(o.Start, o.Start+o.SNPs)
	if err != nil {
		return Dataset{}, err
	}
	res, err := sampler.Sample(sampler.Config{
		SNPs:       o.SNPs,
		Coverage:   o.Coverage,
		MeanLength: o.MeanLength,
		ErrorRate:  o.ErrorRate,
		Ploidy:     truth.Ploidy(),
	}, src)
	if err != nil {
		return Dataset{}, err
	}

	rnd := rand.New(src)
	reads := make([]wif.Read, 0, res.Reads.Len())
	res.Reads.Do(func(sp sampler.Span) {
		reads = append(reads, wif.FromSpan(sp, truth, rnd))
	})
	truth, err = truth.Slice(res.Min, res.Max+1)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Reads: reads, Truth: truth}, nil
}

// Subsample selects reads lying entirely within the window defined by o,
// in random order, until their coverage over the window reaches the
// target. Each selected read has one allele substituted with probability
// o.ErrorRate. Read positions are unchanged and the returned truth holds
// the columns for the sites observed in the selected reads.
func Subsample(rnd *rand.Rand, d Dataset, o Options) (Dataset, error) {
	sites := wif.Sites(d.Reads)
	err := o.validate(len(sites), d.Truth.Len())
	if err != nil {
		return Dataset{}, err
	}

	lo, hi := sites[o.Start], sites[o.Start+o.SNPs-1]
	contained := Contained(d.Reads, lo, hi)
	target := o.Coverage
	if o.Percent {
		target = Coverage(contained, o.SNPs) * o.Coverage / 100
	}

	rnd.Shuffle(len(contained), func(i, j int) {
		contained[i], contained[j] = contained[j], contained[i]
	})
	var (
		kept []wif.Read
		sum  int
	)
	for _, rd := range contained {
		if float64(sum)/float64(o.SNPs) >= target {
			break
		}
		if o.ErrorRate > 0 && rnd.Float64() < o.ErrorRate {
			rd = substitute(rnd, rd, d.Truth)
		}
		kept = append(kept, rd)
		sum += rd.Len()
	}
	sort.SliceStable(kept, func(i, j int) bool {
		a, _ := kept[i].Range()
		b, _ := kept[j].Range()
		return a < b
	})

	index := make(map[int]int, len(sites))
	for i, p := range sites {
		index[p] = i
	}
	keptSites := wif.Sites(kept)
	truth := haplotype.Set{
		Haplotypes: make([]alphabet.Letters, d.Truth.Ploidy()),
		Alleles:    d.Truth.Alleles,
	}
	for h := range truth.Haplotypes {
		col := make(alphabet.Letters, len(keptSites))
		for i, p := range keptSites {
			col[i] = d.Truth.At(h, index[p])
		}
		truth.Haplotypes[h] = col
	}
	return Dataset{Reads: kept, Truth: truth}, nil
}

func substitute(rnd *rand.Rand, rd wif.Read, truth haplotype.Set) wif.Read {
	sites := make([]wif.Site, len(rd.Sites))
	copy(sites, rd.Sites)
	i := rnd.Intn(len(sites))
	sites[i].Allele = truth.Substitute(sites[i].Allele, rnd)
	rd.Sites = sites
	return rd
}

// read is an interval tree node for a WIF read.
type read struct {
	id     uintptr
	lo, hi int
}

func (r read) Overlap(b interval.IntRange) bool {
	return r.hi >= b.Start && r.lo < b.End
}
func (r read) ID() uintptr { return r.id }
func (r read) Range() interval.IntRange {
	return interval.IntRange{Start: r.lo, End: r.hi + 1}
}

// query is an interval query for the positions [lo, hi].
type query struct{ lo, hi int }

func (q query) Overlap(b interval.IntRange) bool {
	return b.Start <= q.hi && b.End > q.lo
}

// Contained returns the reads whose sites all lie within [lo, hi], in
// their input order.
func Contained(reads []wif.Read, lo, hi int) []wif.Read {
	var t interval.IntTree
	for i, rd := range reads {
		min, max := rd.Range()
		if min < 0 {
			continue
		}
		// Insertion fails only for invalid ranges.
		_ = t.Insert(read{id: uintptr(i), lo: min, hi: max}, true)
	}
	t.AdjustRanges()

	var idx []int
	for _, hit := range t.Get(query{lo: lo, hi: hi}) {
		r := hit.(read)
		if r.lo >= lo && r.hi <= hi {
			idx = append(idx, int(r.id))
		}
	}
	sort.Ints(idx)
	contained := make([]wif.Read, len(idx))
	for i, j := range idx {
		contained[i] = reads[j]
	}
	return contained
}
