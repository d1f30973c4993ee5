// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// makewif simulates reads over a multi-ploid genome until a target
// coverage is reached and writes them in WIF format. The ground truth
// haplotypes for the window covered by the reads are written one per
// line, by default to stderr.
//
// Without a -genome file a random binary genome is generated: the
// complementary pair for ploidy 2, otherwise a genome with no
// monomorphic positions.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/biogo/phasesim/haplotype"
	"github.com/biogo/phasesim/sampler"
	"github.com/biogo/phasesim/wif"
	"golang.org/x/exp/rand"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	snps     = flag.Int("snps", 0, "number of SNP positions (defaults to the genome length)")
	coverage = flag.Float64("coverage", 0, "target coverage (required)")
	percent  = flag.Bool("percent", false, "interpret -coverage as a percentage")
	errRate  = flag.Float64("error", 0, "probability of one error per read (values of 1 or more are percentages)")
	ploidy   = flag.Int("ploidy", 2, "number of haplotypes of a generated genome")
	mean     = flag.Float64("mean", sampler.DefaultMeanLength, "mean read length")
	genome   = flag.String("genome", "", "genome file in line or fasta format")
	outf     = flag.String("out", "", "WIF output file, defaults to stdout")
	truthf   = flag.String("truth", "", "ground truth output file, defaults to stderr")
	depthf   = flag.String("depth", "", "write read depth runs to this file")
	plotf    = flag.String("plot", "", "write a read length histogram to this file")
	seed     = flag.Int64("seed", -1, "seed for random number generator (-1 uses system clock)")
	cpuprof  = flag.String("cpuprofile", "", "write cpu profile to this file")
	help     = flag.Bool("help", false, "help prints this message")
)

func main() {
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}

	if *cpuprof != "" {
		profile, err := os.Create(*cpuprof)
		if err != nil {
			log.Fatalf("failed to create %q: %v", *cpuprof, err)
		}
		fmt.Fprintf(os.Stderr, "Writing CPU profile data to %s\n", *cpuprof)
		pprof.StartCPUProfile(profile)
		defer pprof.StopCPUProfile()
	}

	if *seed == -1 {
		*seed = time.Now().UnixNano()
	}
	src := rand.NewSource(uint64(*seed))
	rnd := rand.New(src)

	set := loadGenome(rnd)
	if *snps == 0 {
		*snps = set.Len()
	}
	if *snps <= 0 || *snps > set.Len() {
		log.Fatalf("invalid SNP count %d for genome of length %d", *snps, set.Len())
	}
	if set.Len() > *snps {
		var err error
		set, err = set.Slice(0, *snps)
		if err != nil {
			log.Fatalf("failed to slice genome: %v", err)
		}
	}
	if *percent {
		*coverage /= 100
	}
	if *coverage <= 0 {
		log.Fatalf("invalid coverage: %v", *coverage)
	}
	if *mean >= float64(*snps) {
		log.Fatalf("mean read length %v must be less than SNP count %d", *mean, *snps)
	}

	res, err := sampler.Sample(sampler.Config{
		SNPs:       *snps,
		Coverage:   *coverage,
		MeanLength: *mean,
		ErrorRate:  sampler.Rate(*errRate),
		Ploidy:     set.Ploidy(),
	}, src)
	if err != nil {
		log.Fatalf("failed to sample reads: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Sampled %d reads for coverage %.3f over [%d,%d].\n", res.Reads.Len(), res.Coverage, res.Min, res.Max)

	out, closeOut := create(*outf, os.Stdout)
	w := wif.NewWriter(out)
	res.Reads.Do(func(sp sampler.Span) {
		err = w.Write(wif.FromSpan(sp, set, rnd))
		if err != nil {
			log.Fatalf("failed to write read: %v", err)
		}
	})
	err = w.Flush()
	if err != nil {
		log.Fatalf("failed to write reads: %v", err)
	}
	closeOut()

	truth, err := set.Slice(res.Min, res.Max+1)
	if err != nil {
		log.Fatalf("failed to slice ground truth: %v", err)
	}
	tout, closeTruth := create(*truthf, os.Stderr)
	err = haplotype.WriteLines(tout, truth)
	if err != nil {
		log.Fatalf("failed to write ground truth: %v", err)
	}
	closeTruth()

	if *depthf != "" {
		writeDepth(res.Reads, *snps)
	}
	if *plotf != "" {
		plotLengths(res.Reads)
	}
}

func loadGenome(rnd *rand.Rand) haplotype.Set {
	if *genome == "" {
		if *snps <= 0 {
			log.Fatalf("invalid SNP count: %d", *snps)
		}
		var (
			set haplotype.Set
			err error
		)
		if *ploidy == 2 {
			set, err = haplotype.Complementary(rnd, *snps)
		} else {
			set, err = haplotype.Generate(rnd, *ploidy, *snps, haplotype.Binary)
		}
		if err != nil {
			log.Fatalf("failed to generate genome: %v", err)
		}
		return set
	}

	f, err := os.Open(*genome)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *genome, err)
	}
	defer f.Close()
	set, err := haplotype.Read(f)
	if err != nil {
		log.Fatalf("failed to read genome %q: %v", *genome, err)
	}
	return set
}

// create returns a buffered writer for the named file, or for def if
// name is empty, and a function that flushes and closes it.
func create(name string, def *os.File) (io.Writer, func()) {
	f := def
	if name != "" {
		var err error
		f, err = os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %q: %v", name, err)
		}
	}
	buf := bufio.NewWriter(f)
	return buf, func() {
		err := buf.Flush()
		if err != nil {
			log.Fatalf("failed to write %q: %v", f.Name(), err)
		}
		if f != def {
			f.Close()
		}
	}
}

func writeDepth(c *sampler.Collection, n int) {
	v, err := sampler.Depth(c, n)
	if err != nil {
		log.Fatalf("failed to calculate depth: %v", err)
	}
	out, done := create(*depthf, nil)
	defer done()
	for _, r := range sampler.Runs(v) {
		fmt.Fprintf(out, "%d\t%d\t%d\n", r.Start, r.End, r.Depth)
	}
	sum := sampler.Summarize(v)
	fmt.Fprintf(os.Stderr, "Depth min=%d max=%d covered=%.3f\n", sum.Min, sum.Max, sum.Covered)
}

func plotLengths(c *sampler.Collection) {
	mean, std := sampler.LengthStats(c)
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Read lengths (mean %.1f, sd %.1f)", mean, std)
	p.X.Label.Text = "Length"
	p.Y.Label.Text = "Reads"
	h, err := plotter.NewHist(plotter.Values(sampler.Lengths(c)), 20)
	if err != nil {
		log.Fatalf("failed to build histogram: %v", err)
	}
	p.Add(h)
	err = p.Save(6*vg.Inch, 4*vg.Inch, *plotf)
	if err != nil {
		log.Fatalf("failed to save plot %q: %v", *plotf, err)
	}
}
