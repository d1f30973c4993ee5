// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// makereads simulates paired-end reads over a genome so that the reads
// form contiguous blocks. Each read is written as its start position,
// front end read, back end read start position and back end read,
// separated by tabs.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/biogo/phasesim/haplotype"
	"github.com/biogo/phasesim/pairedend"
	"golang.org/x/exp/rand"
)

var (
	genome  = flag.String("genome", "", "genome file in line or fasta format (required)")
	reads   = flag.Int("reads", 0, "number of reads (required)")
	endLen  = flag.Int("end", 3, "length of each end read")
	gapMin  = flag.Int("gapmin", 0, "minimum gap between end reads")
	gapMax  = flag.Int("gapmax", 0, "maximum gap between end reads")
	errRate = flag.Float64("error", 0, "per base substitution rate")
	outf    = flag.String("out", "", "output file, defaults to stdout")
	seed    = flag.Int64("seed", -1, "seed for random number generator (-1 uses system clock)")
	help    = flag.Bool("help", false, "help prints this message")
)

func main() {
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *genome == "" {
		flag.Usage()
		log.Fatal("no genome file given")
	}
	if *errRate < 0 || *errRate > 1 {
		log.Fatalf("invalid error rate: %v", *errRate)
	}

	f, err := os.Open(*genome)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *genome, err)
	}
	set, err := haplotype.Read(f)
	f.Close()
	if err != nil {
		log.Fatalf("failed to read genome %q: %v", *genome, err)
	}

	if *seed == -1 {
		*seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(uint64(*seed)))

	layout, err := pairedend.Layout(rnd, pairedend.Config{
		Len:    set.Len(),
		Reads:  *reads,
		EndLen: *endLen,
		GapMin: *gapMin,
		GapMax: *gapMax,
	})
	if err != nil {
		log.Fatalf("failed to lay out reads: %v", err)
	}
	pairs, err := pairedend.Render(rnd, layout, set, *endLen, *errRate)
	if err != nil {
		log.Fatalf("failed to render reads: %v", err)
	}

	out := os.Stdout
	if *outf != "" {
		out, err = os.Create(*outf)
		if err != nil {
			log.Fatalf("failed to create %q: %v", *outf, err)
		}
		defer out.Close()
	}
	buf := bufio.NewWriter(out)
	defer buf.Flush()
	err = pairedend.Write(buf, pairs)
	if err != nil {
		log.Fatalf("failed to write reads: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d reads over %d positions.\n", len(pairs), set.Len())
}
