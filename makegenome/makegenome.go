// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// makegenome generates a random multi-ploid ground truth genome. At
// every SNP position not all haplotypes carry the same allele.
//
// The genome is written one haplotype per line, or as multi-FASTA.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/phasesim/haplotype"
	"golang.org/x/exp/rand"
)

var (
	ploidy = flag.Int("ploidy", 2, "number of haplotypes (at least 2)")
	snps   = flag.Int("snps", 0, "number of SNP positions (required)")
	alpha  = flag.String("alphabet", "binary", "allele alphabet: binary or dna")
	format = flag.String("format", "lines", "output format: lines or fasta")
	width  = flag.Int("width", 60, "fasta output line width")
	outf   = flag.String("out", "", "output file, defaults to stdout")
	seed   = flag.Int64("seed", -1, "seed for random number generator (-1 uses system clock)")
	help   = flag.Bool("help", false, "help prints this message")
)

func main() {
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *snps <= 0 {
		flag.Usage()
		log.Fatalf("invalid SNP count: %d", *snps)
	}

	var alleles []alphabet.Letter
	switch *alpha {
	case "binary":
		alleles = haplotype.Binary
	case "dna":
		alleles = haplotype.Nucleotides
	default:
		log.Fatalf("unknown alphabet %q", *alpha)
	}
	if *format != "lines" && *format != "fasta" {
		log.Fatalf("unknown output format %q", *format)
	}

	if *seed == -1 {
		*seed = time.Now().UnixNano()
	}
	fmt.Fprintf(os.Stderr, "Using %d as random seed.\n", *seed)
	rnd := rand.New(rand.NewSource(uint64(*seed)))

	set, err := haplotype.Generate(rnd, *ploidy, *snps, alleles)
	if err != nil {
		log.Fatalf("failed to generate genome: %v", err)
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
	switch *format {
	case "lines":
		err = haplotype.WriteLines(buf, set)
	case "fasta":
		err = haplotype.WriteFASTA(buf, set, *width)
	}
	if err != nil {
		log.Fatalf("failed to write genome: %v", err)
	}
	err = buf.Flush()
	if err != nil {
		log.Fatalf("failed to write genome: %v", err)
	}
}
