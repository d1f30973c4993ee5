// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sampler

import (
	"github.com/biogo/store/step"
	"gonum.org/v1/gonum/stat"
)

// depth is an int type satisfying the step.Equaler interface.
type depth int

// Equal returns whether d equals e. Equal assumes the underlying type of e is a depth.
func (d depth) Equal(e step.Equaler) bool {
	return d == e.(depth)
}

func incr(e step.Equaler) step.Equaler { return e.(depth) + 1 }

// Depth returns the per-position read depth of the spans in c over [0, n)
// as a run-length encoded vector of int values.
func Depth(c *Collection, n int) (*step.Vector, error) {
	v, err := step.New(0, n, depth(0))
	if err != nil {
		return nil, err
	}
	var aerr error
	c.Do(func(s Span) {
		if aerr != nil {
			return
		}
		aerr = v.ApplyRange(s.Start, s.End+1, incr)
	})
	if aerr != nil {
		return nil, aerr
	}
	return v, nil
}

// DepthRun is a run of positions [Start, End) sharing a read depth.
type DepthRun struct {
	Start, End int
	Depth      int
}

// Runs returns the depth runs held by v.
func Runs(v *step.Vector) []DepthRun {
	var runs []DepthRun
	v.Do(func(start, end int, e step.Equaler) {
		runs = append(runs, DepthRun{Start: start, End: end, Depth: int(e.(depth))})
	})
	return runs
}

// DepthSummary describes a depth vector.
type DepthSummary struct {
	Min, Max int

	// Covered is the fraction of positions
	// covered by at least one read.
	Covered float64
}

// Summarize returns the minimum and maximum depth and the covered fraction
// of positions in v.
func Summarize(v *step.Vector) DepthSummary {
	var (
		sum     DepthSummary
		covered int
		first   = true
	)
	v.Do(func(start, end int, e step.Equaler) {
		d := int(e.(depth))
		if first || d < sum.Min {
			sum.Min = d
		}
		if first || d > sum.Max {
			sum.Max = d
		}
		first = false
		if d > 0 {
			covered += end - start
		}
	})
	if v.Len() > 0 {
		sum.Covered = float64(covered) / float64(v.Len())
	}
	return sum
}

// Lengths returns the lengths of the spans in c in collection order.
func Lengths(c *Collection) []float64 {
	lens := make([]float64, 0, c.Len())
	c.Do(func(s Span) { lens = append(lens, float64(s.Len())) })
	return lens
}

// LengthStats returns the mean and standard deviation of span lengths in c.
func LengthStats(c *Collection) (mean, std float64) {
	return stat.MeanStdDev(Lengths(c), nil)
}
