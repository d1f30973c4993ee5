// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sampler provides a coverage-targeted read span sampler for
// simulating sequencing reads over a set of haplotypes.
//
// Spans are placed over a SNP axis of length N. Each span has a Poisson
// distributed length K and a uniformly chosen midpoint L, and covers the
// inclusive interval [L-K/2, L-K/2+K]. Midpoints are resampled until the
// span lies within [0, N). Sampling stops once the sum of K/N over all
// spans reaches the target coverage.
//
// No placement exists when K >= N, so a mean read length comparable to
// or larger than the SNP count may cause Sample to run for a very long
// time or never return. Callers must check MeanLength < SNPs before
// sampling if they cannot tolerate this.
package sampler

import (
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultMeanLength is the mean read span length used by the simulators.
const DefaultMeanLength = 50

// NoError marks a span without an injected error.
const NoError = -1

// Config holds the sampling parameters.
type Config struct {
	SNPs       int     // N, the number of SNP positions.
	Coverage   float64 // Target sum of span length over N.
	MeanLength float64 // Poisson mean of span lengths.
	ErrorRate  float64 // Probability that a span carries one error.
	Ploidy     int     // Number of haplotypes spans are drawn from.
}

// Validate returns a non-nil error if the configuration cannot be sampled.
// It does not check MeanLength against SNPs.
func (c Config) Validate() error {
	switch {
	case c.SNPs <= 0:
		return errors.Errorf("sampler: SNP count must be positive: %d", c.SNPs)
	case c.Coverage <= 0:
		return errors.Errorf("sampler: target coverage must be positive: %v", c.Coverage)
	case c.MeanLength <= 0:
		return errors.Errorf("sampler: mean read length must be positive: %v", c.MeanLength)
	case c.Ploidy < 1:
		return errors.Errorf("sampler: ploidy must be at least 1: %d", c.Ploidy)
	case c.ErrorRate < 0 || c.ErrorRate > 1:
		return errors.Errorf("sampler: error rate must be in [0,1]: %v", c.ErrorRate)
	}
	return nil
}

// Span is a simulated read covering the inclusive interval [Start, End]
// drawn from haplotype Haplotype. Error is the position of an injected
// error or NoError.
type Span struct {
	Start, End int
	Haplotype  int
	Error      int
}

// Len returns the span length, End-Start. This is the value used for
// coverage accounting.
func (s Span) Len() int { return s.End - s.Start }

// HasError returns whether the span carries an error marker.
func (s Span) HasError() bool { return s.Error != NoError }

// Collection holds spans bucketed by start position.
type Collection struct {
	spans map[int][]Span
	n     int
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{spans: make(map[int][]Span)}
}

// Add appends s to the spans starting at s.Start.
func (c *Collection) Add(s Span) {
	c.spans[s.Start] = append(c.spans[s.Start], s)
	c.n++
}

// Len returns the number of spans in the collection.
func (c *Collection) Len() int { return c.n }

// Starts returns the distinct start positions in ascending order.
func (c *Collection) Starts() []int {
	starts := make([]int, 0, len(c.spans))
	for s := range c.spans {
		starts = append(starts, s)
	}
	sort.Ints(starts)
	return starts
}

// Do calls fn for each span in ascending start order, and in insertion
// order within a start position.
func (c *Collection) Do(fn func(Span)) {
	for _, start := range c.Starts() {
		for _, s := range c.spans[start] {
			fn(s)
		}
	}
}

// Spans returns the spans in the order Do visits them.
func (c *Collection) Spans() []Span {
	spans := make([]Span, 0, c.n)
	c.Do(func(s Span) { spans = append(spans, s) })
	return spans
}

// Result is the outcome of a sampling run.
// Result holds the outcome of a call to Sample.
type Result struct {
	Reads *Collection

	// Coverage is the final value of the coverage accumulator.
	Coverage float64

	// Min and Max are the smallest span start and the
	// largest span end sampled, the ground truth window.
	Min, Max int

	// MaxLen is the largest span length drawn.
	MaxLen int
}

// Sample draws spans according to cfg using randomness from src until the
// target coverage is reached. See the package documentation for the
// termination caveat.
func Sample(cfg Config, src rand.Source) (*Result, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	rnd := rand.New(src)
	length := distuv.Poisson{Lambda: cfg.MeanLength, Src: src}
	failure := distuv.Bernoulli{P: cfg.ErrorRate, Src: src}

	res := &Result{
		Reads: NewCollection(),
		Min:   cfg.SNPs,
		Max:   0,
	}
	for res.Coverage < cfg.Coverage {
		k := int(length.Rand())

		var start, end int
		for {
			l := rnd.Intn(cfg.SNPs)
			start = l - k/2
			end = start + k
			if start >= 0 && end < cfg.SNPs {
				break
			}
		}

		s := Span{
			Start:     start,
			End:       end,
			Haplotype: rnd.Intn(cfg.Ploidy),
			Error:     NoError,
		}
		if cfg.ErrorRate > 0 && failure.Rand() == 1 {
			s.Error = start + rnd.Intn(end-start+1)
		}
		res.Reads.Add(s)

		res.Coverage += float64(k) / float64(cfg.SNPs)
		if start < res.Min {
			res.Min = start
		}
		if end > res.Max {
			res.Max = end
		}
		if k > res.MaxLen {
			res.MaxLen = k
		}
	}

	return res, nil
}

// Rate returns v as a probability. Values of at least 1 are taken to be
// percentages.
func Rate(v float64) float64 {
	if v >= 1 {
		return v / 100
	}
	return v
}
