// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reduce

import (
	"strings"
	"testing"

	"github.com/biogo/phasesim/haplotype"
	"github.com/biogo/phasesim/wif"
	"golang.org/x/exp/rand"
	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func mustReads(c *check.C, in string) []wif.Read {
	reads, err := wif.ReadAll(strings.NewReader(in))
	c.Assert(err, check.IsNil)
	return reads
}

func (s *S) TestWindow(c *check.C) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		start, err := Window(rnd, 20, 5)
		c.Assert(err, check.IsNil)
		c.Check(start >= 0 && start <= 15, check.Equals, true)
	}
	start, err := Window(rnd, 5, 5)
	c.Check(err, check.IsNil)
	c.Check(start, check.Equals, 0)

	_, err = Window(rnd, 4, 5)
	c.Check(err, check.NotNil)
	_, err = Window(rnd, 4, 0)
	c.Check(err, check.NotNil)
}

func (s *S) TestContained(c *check.C) {
	reads := mustReads(c, `0 X 0 61 : 2 X 1 61 : # 60 : NA
2 X 1 61 : 5 X 0 61 : # 60 : NA
6 X 1 61 : 9 X 1 61 : # 60 : NA
3 X 0 61 : 4 X 0 61 : # 60 : NA
5 X 1 61 : # 60 : NA
`)
	got := Contained(reads, 2, 5)
	c.Assert(len(got), check.Equals, 3)
	c.Check(got[0], check.DeepEquals, reads[1])
	c.Check(got[1], check.DeepEquals, reads[3])
	c.Check(got[2], check.DeepEquals, reads[4])
}

func (s *S) TestResample(c *check.C) {
	rnd := rand.New(rand.NewSource(6))
	truth, err := haplotype.Complementary(rnd, 400)
	c.Assert(err, check.IsNil)
	d := Dataset{Truth: truth}

	o := Options{Start: 100, SNPs: 200, Coverage: 5, MeanLength: 20}
	got, err := Resample(rand.NewSource(7), d, o)
	c.Assert(err, check.IsNil)
	c.Check(len(got.Reads) > 0, check.Equals, true)
	c.Check(Coverage(got.Reads, o.SNPs) >= o.Coverage, check.Equals, true)

	min, max := o.SNPs, 0
	for _, rd := range got.Reads {
		lo, hi := rd.Range()
		c.Check(lo >= 0 && hi < o.SNPs, check.Equals, true)
		if lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
		for _, site := range rd.Sites {
			a := site.Allele
			c.Check(a == truth.At(0, o.Start+site.Pos) || a == truth.At(1, o.Start+site.Pos), check.Equals, true)
		}
	}
	c.Check(got.Truth.Len(), check.Equals, max-min+1)
	c.Check(got.Truth.At(0, 0), check.Equals, truth.At(0, o.Start+min))

	_, err = Resample(rand.NewSource(7), d, Options{Start: 0, SNPs: 10, Coverage: 1, MeanLength: 20})
	c.Check(err, check.NotNil)
	_, err = Resample(rand.NewSource(7), d, Options{Start: 300, SNPs: 200, Coverage: 1, MeanLength: 20})
	c.Check(err, check.NotNil)
}

func (s *S) TestSubsample(c *check.C) {
	rnd := rand.New(rand.NewSource(3))
	truth, err := haplotype.Complementary(rnd, 300)
	c.Assert(err, check.IsNil)
	full, err := Resample(rand.NewSource(4), Dataset{Truth: truth}, Options{SNPs: 300, Coverage: 30, MeanLength: 15})
	c.Assert(err, check.IsNil)
	sites := wif.Sites(full.Reads)
	c.Assert(full.Truth.Len(), check.Equals, len(sites))

	o := Options{Start: 50, SNPs: 100, Coverage: 5}
	got, err := Subsample(rnd, full, o)
	c.Assert(err, check.IsNil)
	lo, hi := sites[o.Start], sites[o.Start+o.SNPs-1]
	for i, rd := range got.Reads {
		min, max := rd.Range()
		c.Check(min >= lo && max <= hi, check.Equals, true)
		if i > 0 {
			prev, _ := got.Reads[i-1].Range()
			c.Check(prev <= min, check.Equals, true)
		}
	}
	cov := Coverage(got.Reads, o.SNPs)
	c.Check(cov >= o.Coverage, check.Equals, true)
	c.Check(got.Truth.Len(), check.Equals, len(wif.Sites(got.Reads)))
	c.Check(got.Truth.Ploidy(), check.Equals, 2)
}

func (s *S) TestSubsamplePercent(c *check.C) {
	reads := mustReads(c, `0 X 0 61 : 1 X 1 61 : # 60 : NA
1 X 1 61 : 2 X 0 61 : # 60 : NA
2 X 0 61 : 3 X 1 61 : # 60 : NA
0 X 0 61 : 3 X 1 61 : # 60 : NA
`)
	truth, err := haplotype.ReadLines(strings.NewReader("0101\n1010\n"))
	c.Assert(err, check.IsNil)
	d := Dataset{Reads: reads, Truth: truth}

	got, err := Subsample(rand.New(rand.NewSource(1)), d, Options{Start: 0, SNPs: 4, Coverage: 100, Percent: true})
	c.Assert(err, check.IsNil)
	c.Check(len(got.Reads), check.Equals, 4)
	c.Check(Coverage(got.Reads, 4), check.Equals, Coverage(reads, 4))
}

func (s *S) TestSubsampleErrors(c *check.C) {
	reads := mustReads(c, `0 X 0 61 : 1 X 1 61 : 2 X 0 61 : # 60 : NA
1 X 1 61 : 2 X 0 61 : 3 X 1 61 : # 60 : NA
`)
	truth, err := haplotype.ReadLines(strings.NewReader("0101\n1010\n"))
	c.Assert(err, check.IsNil)
	d := Dataset{Reads: reads, Truth: truth}

	got, err := Subsample(rand.New(rand.NewSource(2)), d, Options{Start: 0, SNPs: 4, Coverage: 10, ErrorRate: 1})
	c.Assert(err, check.IsNil)
	c.Assert(len(got.Reads), check.Equals, 2)
	for _, rd := range got.Reads {
		var diff int
		for _, site := range rd.Sites {
			if site.Allele != truth.At(0, site.Pos) && site.Allele != truth.At(1, site.Pos) {
				diff++
			}
		}
		// Binary truth: a substituted allele matches the other haplotype.
		c.Check(diff, check.Equals, 0)
	}
	c.Check(reads[0].Sites[0].Allele, check.Equals, truth.At(0, 0))

	_, err = Subsample(rand.New(rand.NewSource(2)), d, Options{Start: 1, SNPs: 4, Coverage: 1})
	c.Check(err, check.NotNil)
}
