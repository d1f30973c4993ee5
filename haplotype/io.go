// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package haplotype

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

// ReadLines reads a haplotype set written one haplotype per line. Blank
// lines are ignored.
func ReadLines(r io.Reader) (Set, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<30)
	var hs []alphabet.Letters
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		hs = append(hs, alphabet.BytesToLetters(append([]byte(nil), line...)))
	}
	if err := sc.Err(); err != nil {
		return Set{}, errors.Wrap(err, "haplotype: failed to read lines")
	}
	return newSet(hs)
}

// WriteLines writes s one haplotype per line.
func WriteLines(w io.Writer, s Set) error {
	bw := bufio.NewWriter(w)
	for _, h := range s.Haplotypes {
		if _, err := bw.Write(alphabet.LettersToBytes(h)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFASTA reads a haplotype set from FASTA records, one record per
// haplotype.
func ReadFASTA(r io.Reader) (Set, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	var hs []alphabet.Letters
	for sc.Next() {
		hs = append(hs, sc.Seq().(*linear.Seq).Seq)
	}
	if err := sc.Error(); err != nil {
		return Set{}, errors.Wrap(err, "haplotype: failed to read fasta")
	}
	return newSet(hs)
}

// WriteFASTA writes s as FASTA records named haplotype_<i> with lines
// wrapped at width.
func WriteFASTA(w io.Writer, s Set, width int) error {
	fw := fasta.NewWriter(w, width)
	for i, h := range s.Haplotypes {
		_, err := fw.Write(linear.NewSeq(fmt.Sprintf("haplotype_%d", i), h, alphabet.DNA))
		if err != nil {
			return errors.Wrapf(err, "haplotype: failed to write haplotype %d", i)
		}
	}
	return nil
}

func newSet(hs []alphabet.Letters) (Set, error) {
	if len(hs) == 0 {
		return Set{}, errors.New("haplotype: no haplotypes")
	}
	s := Set{Haplotypes: hs, Alleles: Infer(hs)}
	return s, s.Validate()
}

// Read reads a haplotype set in either FASTA or line format, choosing
// FASTA when the first non-space byte of r is '>'.
func Read(r io.Reader) (Set, error) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return Set{}, errors.New("haplotype: no haplotypes")
		}
		if err != nil {
			return Set{}, errors.Wrap(err, "haplotype: failed to read")
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		err = br.UnreadByte()
		if err != nil {
			return Set{}, err
		}
		if b == '>' {
			return ReadFASTA(br)
		}
		return ReadLines(br)
	}
}
