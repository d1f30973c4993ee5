// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// reducewif reduces a WIF dataset and its ground truth to a randomly
// placed window of SNP sites at a lower coverage.
//
// By default new reads are simulated over the ground truth window with
// positions relative to the window start. With -subsample the reads of
// the input lying within the window are subsampled instead and keep
// their positions.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/biogo/phasesim/haplotype"
	"github.com/biogo/phasesim/reduce"
	"github.com/biogo/phasesim/sampler"
	"github.com/biogo/phasesim/wif"
	"golang.org/x/exp/rand"
)

var (
	snps      = flag.Int("snps", 0, "number of SNP sites in the reduced window (required)")
	wiff      = flag.String("wif", "", "input WIF file, defaults to stdin")
	truthf    = flag.String("truth", "", "input ground truth file (required)")
	coverage  = flag.Float64("coverage", 0, "target coverage (required)")
	percent   = flag.Bool("percent", false, "interpret -coverage as a percentage of the available coverage")
	subsample = flag.Bool("subsample", false, "subsample input reads instead of simulating new reads")
	errRate   = flag.Float64("error", 0, "probability of one error per read (values of 1 or more are percentages)")
	mean      = flag.Float64("mean", sampler.DefaultMeanLength, "mean read length of simulated reads")
	outf      = flag.String("out", "", "WIF output file, defaults to stdout")
	truthOut  = flag.String("truthout", "", "ground truth output file, defaults to stderr")
	seed      = flag.Int64("seed", -1, "seed for random number generator (-1 uses system clock)")
	help      = flag.Bool("help", false, "help prints this message")
)

func main() {
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *truthf == "" {
		flag.Usage()
		log.Fatal("no ground truth file given")
	}
	if *snps <= 0 {
		log.Fatalf("invalid SNP count: %d", *snps)
	}
	if *coverage <= 0 {
		log.Fatalf("invalid coverage: %v", *coverage)
	}
	if *percent && !*subsample {
		log.Fatal("percentage coverage requires -subsample")
	}
	if !*subsample && *mean >= float64(*snps) {
		log.Fatalf("mean read length %v must be less than SNP count %d", *mean, *snps)
	}

	var d reduce.Dataset
	in := os.Stdin
	if *wiff != "" {
		f, err := os.Open(*wiff)
		if err != nil {
			log.Fatalf("failed to open %q: %v", *wiff, err)
		}
		defer f.Close()
		in = f
	}
	var err error
	d.Reads, err = wif.ReadAll(in)
	if err != nil {
		log.Fatalf("failed to read WIF: %v", err)
	}

	f, err := os.Open(*truthf)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *truthf, err)
	}
	d.Truth, err = haplotype.ReadLines(f)
	f.Close()
	if err != nil {
		log.Fatalf("failed to read ground truth %q: %v", *truthf, err)
	}

	if *seed == -1 {
		*seed = time.Now().UnixNano()
	}
	src := rand.NewSource(uint64(*seed))
	rnd := rand.New(src)

	n := d.Truth.Len()
	if *subsample {
		n = len(wif.Sites(d.Reads))
	}
	start, err := reduce.Window(rnd, n, *snps)
	if err != nil {
		log.Fatalf("failed to choose window: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Reducing to sites [%d,%d) of %d.\n", start, start+*snps, n)

	o := reduce.Options{
		Start:      start,
		SNPs:       *snps,
		Coverage:   *coverage,
		Percent:    *percent,
		ErrorRate:  sampler.Rate(*errRate),
		MeanLength: *mean,
	}
	var r reduce.Dataset
	if *subsample {
		r, err = reduce.Subsample(rnd, d, o)
	} else {
		r, err = reduce.Resample(src, d, o)
	}
	if err != nil {
		log.Fatalf("failed to reduce dataset: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Kept %d reads at coverage %.3f.\n", len(r.Reads), reduce.Coverage(r.Reads, *snps))

	write(*outf, os.Stdout, func(w *bufio.Writer) error {
		ww := wif.NewWriter(w)
		for _, rd := range r.Reads {
			err := ww.Write(rd)
			if err != nil {
				return err
			}
		}
		return ww.Flush()
	})
	write(*truthOut, os.Stderr, func(w *bufio.Writer) error {
		return haplotype.WriteLines(w, r.Truth)
	})
}

func write(name string, def *os.File, fn func(*bufio.Writer) error) {
	f := def
	if name != "" {
		var err error
		f, err = os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %q: %v", name, err)
		}
		defer f.Close()
	}
	w := bufio.NewWriter(f)
	err := fn(w)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		log.Fatalf("failed to write %q: %v", f.Name(), err)
	}
}
