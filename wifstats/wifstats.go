// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// wifstats calculates and prints read statistics from a WIF
// file (default stdin). It prints: the total no. of reads,
// the no. of distinct SNP sites, Min, Max, Mean and standard
// deviation of read length, N50, coverage over the sites, the
// minimum and maximum read depth and the fraction of positions
// covered by a read.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/biogo/phasesim/reduce"
	"github.com/biogo/phasesim/sampler"
	"github.com/biogo/phasesim/wif"
	"gonum.org/v1/gonum/stat"
)

const MaxInt = int(^uint(0) >> 1)

// wifStats contains the basename of the file without
// any extension and other reported statistics in sites.
type wifStats struct {
	name     string // From input filename (empty, if stdin).
	reads    int
	sites    int
	min      int
	max      int
	mean     float64
	sd       float64
	n50      int
	coverage float64
	minDepth int
	maxDepth int
	covered  float64 // Fraction of positions up to the last site.
}

var (
	wiff = flag.String("in", "", "input WIF file, defaults to stdin")
	help = flag.Bool("help", false, "help prints this message")
)

func main() {
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}

	in := os.Stdin
	if *wiff != "" {
		f, err := os.Open(*wiff)
		if err != nil {
			log.Fatalf("failed to open %q: %v", *wiff, err)
		}
		defer f.Close()
		in = f
	}

	var (
		b     wifStats
		lens  []float64
		spans = sampler.NewCollection()
		last  int
	)
	b.name = strings.Split(path.Base(*wiff), ".")[0]
	b.min = MaxInt

	r := wif.NewReader(in)
	var reads []wif.Read
	for {
		rd, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatalf("failed during read: %v", err)
		}
		lo, hi := rd.Range()
		if lo < 0 {
			continue
		}
		reads = append(reads, rd)
		l := rd.Len()
		b.reads++
		lens = append(lens, float64(l))
		if l < b.min {
			b.min = l
		}
		if l > b.max {
			b.max = l
		}
		spans.Add(sampler.Span{Start: lo, End: hi, Error: sampler.NoError})
		if hi > last {
			last = hi
		}
	}
	if b.reads == 0 {
		log.Fatal("no reads")
	}

	b.sites = len(wif.Sites(reads))
	b.coverage = reduce.Coverage(reads, b.sites)
	b.mean, b.sd = stat.MeanStdDev(lens, nil)

	// Sort in descending order of read length.
	sort.Sort(sort.Reverse(sort.Float64Slice(lens)))
	var size float64
	for _, l := range lens {
		size += l
	}
	for i, csum := 0, 0.0; i < len(lens); i++ {
		csum += lens[i]
		if csum >= size/2 {
			b.n50 = int(lens[i])
			break
		}
	}

	v, err := sampler.Depth(spans, last+1)
	if err != nil {
		log.Fatalf("failed to calculate depth: %v", err)
	}
	depth := sampler.Summarize(v)
	b.minDepth, b.maxDepth, b.covered = depth.Min, depth.Max, depth.Covered

	// Print the statistics of the read set as key-value pairs.
	fmt.Printf("%+v\n", b)
}
