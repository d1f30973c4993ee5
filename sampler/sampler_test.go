// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sampler

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestValidate(c *check.C) {
	good := Config{SNPs: 100, Coverage: 1, MeanLength: 10, Ploidy: 2}
	c.Check(good.Validate(), check.IsNil)
	for i, cfg := range []Config{
		{SNPs: 0, Coverage: 1, MeanLength: 10, Ploidy: 2},
		{SNPs: -3, Coverage: 1, MeanLength: 10, Ploidy: 2},
		{SNPs: 100, Coverage: 0, MeanLength: 10, Ploidy: 2},
		{SNPs: 100, Coverage: 1, MeanLength: 0, Ploidy: 2},
		{SNPs: 100, Coverage: 1, MeanLength: 10, Ploidy: 0},
		{SNPs: 100, Coverage: 1, MeanLength: 10, Ploidy: 2, ErrorRate: 1.5},
		{SNPs: 100, Coverage: 1, MeanLength: 10, Ploidy: 2, ErrorRate: -0.1},
	} {
		_, err := Sample(cfg, rand.NewSource(1))
		c.Check(err, check.NotNil, check.Commentf("Test %d", i))
	}
}

func (s *S) TestCoverageBounds(c *check.C) {
	for seed := uint64(1); seed <= 20; seed++ {
		cfg := Config{SNPs: 1000, Coverage: 5.0005, MeanLength: DefaultMeanLength, Ploidy: 3}
		res, err := Sample(cfg, rand.NewSource(seed))
		c.Assert(err, check.IsNil)

		var total int
		for _, sp := range res.Reads.Spans() {
			total += sp.End - sp.Start
		}
		sum := float64(total) / float64(cfg.SNPs)
		c.Check(math.Abs(sum-res.Coverage) < 1e-9, check.Equals, true)
		c.Check(sum >= cfg.Coverage, check.Equals, true)
		c.Check(sum < cfg.Coverage+float64(res.MaxLen)/float64(cfg.SNPs), check.Equals, true)
	}
}

func (s *S) TestSpanBounds(c *check.C) {
	cfg := Config{SNPs: 300, Coverage: 20, MeanLength: 40, Ploidy: 4}
	res, err := Sample(cfg, rand.NewSource(7))
	c.Assert(err, check.IsNil)
	min, max := cfg.SNPs, 0
	for _, sp := range res.Reads.Spans() {
		c.Check(sp.Start >= 0, check.Equals, true)
		c.Check(sp.End < cfg.SNPs, check.Equals, true)
		c.Check(sp.Start <= sp.End, check.Equals, true)
		c.Check(sp.Haplotype >= 0 && sp.Haplotype < cfg.Ploidy, check.Equals, true)
		if sp.Start < min {
			min = sp.Start
		}
		if sp.End > max {
			max = sp.End
		}
	}
	c.Check(res.Min, check.Equals, min)
	c.Check(res.Max, check.Equals, max)
}

func (s *S) TestErrorRate(c *check.C) {
	cfg := Config{SNPs: 500, Coverage: 10, MeanLength: 30, Ploidy: 2}
	res, err := Sample(cfg, rand.NewSource(3))
	c.Assert(err, check.IsNil)
	for _, sp := range res.Reads.Spans() {
		c.Check(sp.HasError(), check.Equals, false)
	}

	cfg.ErrorRate = 1
	res, err = Sample(cfg, rand.NewSource(3))
	c.Assert(err, check.IsNil)
	for _, sp := range res.Reads.Spans() {
		c.Check(sp.HasError(), check.Equals, true)
		c.Check(sp.Error >= sp.Start && sp.Error <= sp.End, check.Equals, true)
	}
}

func (s *S) TestDeterminism(c *check.C) {
	cfg := Config{SNPs: 400, Coverage: 8, MeanLength: 25, Ploidy: 2, ErrorRate: 0.3}
	a, err := Sample(cfg, rand.NewSource(42))
	c.Assert(err, check.IsNil)
	b, err := Sample(cfg, rand.NewSource(42))
	c.Assert(err, check.IsNil)
	c.Check(a.Reads.Spans(), check.DeepEquals, b.Reads.Spans())
	c.Check(a.Coverage, check.Equals, b.Coverage)
}

func (s *S) TestOrdering(c *check.C) {
	cfg := Config{SNPs: 60, Coverage: 30, MeanLength: 4, Ploidy: 2}
	res, err := Sample(cfg, rand.NewSource(11))
	c.Assert(err, check.IsNil)
	spans := res.Reads.Spans()
	c.Check(len(spans), check.Equals, res.Reads.Len())
	for i := 1; i < len(spans); i++ {
		c.Check(spans[i-1].Start <= spans[i].Start, check.Equals, true)
	}
}

func (s *S) TestInsertionOrder(c *check.C) {
	col := NewCollection()
	for _, sp := range []Span{
		{Start: 5, End: 9, Error: NoError},
		{Start: 1, End: 3, Error: NoError},
		{Start: 5, End: 6, Error: NoError},
		{Start: 1, End: 8, Error: NoError},
	} {
		col.Add(sp)
	}
	c.Check(col.Spans(), check.DeepEquals, []Span{
		{Start: 1, End: 3, Error: NoError},
		{Start: 1, End: 8, Error: NoError},
		{Start: 5, End: 9, Error: NoError},
		{Start: 5, End: 6, Error: NoError},
	})
}

func (s *S) TestScenario(c *check.C) {
	cfg := Config{SNPs: 100, Coverage: 1, MeanLength: 10, Ploidy: 2}
	res, err := Sample(cfg, rand.NewSource(2026))
	c.Assert(err, check.IsNil)
	c.Check(res.Coverage >= 1, check.Equals, true)
	mean, _ := LengthStats(res.Reads)
	c.Check(mean > 3 && mean < 17, check.Equals, true, check.Commentf("mean span length %v", mean))
	for _, sp := range res.Reads.Spans() {
		c.Check(sp.Start >= 0 && sp.End < 100, check.Equals, true)
		c.Check(sp.HasError(), check.Equals, false)
	}
}

func (s *S) TestDepth(c *check.C) {
	col := NewCollection()
	col.Add(Span{Start: 2, End: 4, Error: NoError})
	col.Add(Span{Start: 3, End: 6, Error: NoError})
	v, err := Depth(col, 10)
	c.Assert(err, check.IsNil)
	c.Check(Runs(v), check.DeepEquals, []DepthRun{
		{Start: 0, End: 2, Depth: 0},
		{Start: 2, End: 3, Depth: 1},
		{Start: 3, End: 5, Depth: 2},
		{Start: 5, End: 7, Depth: 1},
		{Start: 7, End: 10, Depth: 0},
	})
	c.Check(Summarize(v), check.Equals, DepthSummary{Min: 0, Max: 2, Covered: 0.5})
}

func (s *S) TestRate(c *check.C) {
	c.Check(Rate(0.25), check.Equals, 0.25)
	c.Check(Rate(5), check.Equals, 0.05)
	c.Check(Rate(0), check.Equals, 0.0)
}
