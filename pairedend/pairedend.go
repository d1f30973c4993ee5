// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pairedend simulates paired-end reads laid out so that they
// form contiguous blocks across a genome.
//
// A read spans [Start, End] and is sequenced only at its two ends: the
// front end read covers the first EndLen positions and the back end read
// covers the last EndLen positions. The unsequenced gap between them has a
// length drawn uniformly from a caller supplied range.
package pairedend

import (
	"bufio"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/phasesim/haplotype"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Interval is an inclusive read interval [Start, End].
type Interval struct {
	Start, End int
}

// Config holds layout parameters.
type Config struct {
	Len    int // Genome length.
	Reads  int // Number of reads.
	EndLen int // Length of each end read.

	// GapMin and GapMax are the inclusive
	// bounds of the gap length.
	GapMin, GapMax int
}

func (c Config) size(rnd *rand.Rand) int {
	return c.GapMin + rnd.Intn(c.GapMax-c.GapMin+1) + 2*c.EndLen
}

// Validate returns a non-nil error if no layout can be made with c.
func (c Config) Validate() error {
	switch {
	case c.Len <= 0:
		return errors.Errorf("pairedend: genome length must be positive: %d", c.Len)
	case c.Reads <= 0:
		return errors.Errorf("pairedend: read count must be positive: %d", c.Reads)
	case c.EndLen <= 0:
		return errors.Errorf("pairedend: end read length must be positive: %d", c.EndLen)
	case c.GapMin < 0 || c.GapMax < c.GapMin:
		return errors.Errorf("pairedend: invalid gap range [%d,%d]", c.GapMin, c.GapMax)
	case c.GapMax+2*c.EndLen >= c.Len:
		return errors.Errorf("pairedend: maximum read size %d not shorter than genome length %d", c.GapMax+2*c.EndLen, c.Len)
	case c.maxOverlap() <= 0:
		return errors.New("pairedend: minimum read too small to form contiguous blocks: increase the minimum gap")
	}
	return nil
}

func (c Config) maxOverlap() int {
	minLen := c.GapMin + 2*c.EndLen
	return (minLen*c.Reads - c.Len) / c.Reads
}

// Layout returns c.Reads read intervals. Reads are chained from the start
// of the genome, each overlapping its predecessor by between 1 and the
// maximum overlap allowed for the read count, until a read reaches the end
// of the genome. Any remaining reads are placed uniformly.
func Layout(rnd *rand.Rand, c Config) ([]Interval, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}

	last := c.Len - 1
	maxOverlap := c.maxOverlap()
	next := Interval{Start: 0, End: c.size(rnd)}
	layout := []Interval{next}
	for len(layout) < c.Reads {
		start := next.End - (1 + rnd.Intn(maxOverlap))
		end := start + c.size(rnd)
		if end >= last {
			end = last
			start = end - c.size(rnd)
			layout = append(layout, Interval{Start: start, End: end})
			break
		}
		next = Interval{Start: start, End: end}
		layout = append(layout, next)
	}
	for len(layout) < c.Reads {
		size := c.size(rnd)
		start := rnd.Intn(c.Len - size)
		layout = append(layout, Interval{Start: start, End: start + size})
	}
	return layout, nil
}

// Pair is a simulated paired-end read.
type Pair struct {
	Interval
	Haplotype   int
	Front, Back alphabet.Letters
}

// BackStart returns the position of the first allele of the back end read.
func (p Pair) BackStart() int { return p.End - len(p.Back) + 1 }

// Render draws each interval in layout from a uniformly chosen haplotype
// of set and copies its two end reads of length endLen. Each copied allele
// is substituted with probability rate.
func Render(rnd *rand.Rand, layout []Interval, set haplotype.Set, endLen int, rate float64) ([]Pair, error) {
	if set.Ploidy() == 0 {
		return nil, errors.New("pairedend: empty haplotype set")
	}
	pairs := make([]Pair, 0, len(layout))
	for _, iv := range layout {
		if iv.Start < 0 || iv.End >= set.Len() || iv.End-iv.Start+1 < endLen {
			return nil, errors.Errorf("pairedend: read [%d,%d] does not fit haplotypes of length %d", iv.Start, iv.End, set.Len())
		}
		k := rnd.Intn(set.Ploidy())
		h := set.Haplotypes[k]
		p := Pair{
			Interval:  iv,
			Haplotype: k,
			Front:     mutate(rnd, set, h[iv.Start:iv.Start+endLen], rate),
			Back:      mutate(rnd, set, h[iv.End-endLen+1:iv.End+1], rate),
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func mutate(rnd *rand.Rand, set haplotype.Set, src alphabet.Letters, rate float64) alphabet.Letters {
	dst := make(alphabet.Letters, len(src))
	copy(dst, src)
	for i, l := range dst {
		if rnd.Float64() < rate {
			dst[i] = set.Substitute(l, rnd)
		}
	}
	return dst
}

// Write writes pairs one per line as
//  <start>\t<front>\t<back start>\t<back>
func Write(w io.Writer, pairs []Pair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		_, err := fmt.Fprintf(bw, "%d\t%s\t%d\t%s\n", p.Start, alphabet.LettersToBytes(p.Front), p.BackStart(), alphabet.LettersToBytes(p.Back))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
