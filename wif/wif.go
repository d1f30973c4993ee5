// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wif reads and writes WIF read support files.
//
// A WIF line describes one read as a sequence of colon separated site
// groups followed by a trailer:
//
//  <pos> <base> <allele> <quality> : ... : # <mapq> : <tail>
//
// for example
//
//  4 X 1 61 : 5 X 0 61 : # 60 : NA
//
// Lines that start with '#' and blank lines carry no read.
package wif

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/pkg/errors"
)

// Values written by the read simulators.
const (
	Placeholder alphabet.Letter = 'X'
	Quality                     = 61
	MapQ                        = 60
	Tail                        = "NA"
)

// Site is a single allele observation in a read.
type Site struct {
	Pos     int
	Base    alphabet.Letter
	Allele  alphabet.Letter
	Quality int
}

// Read is a WIF read record.
type Read struct {
	Sites []Site
	MapQ  int
	Tail  string
}

// Range returns the smallest and largest site positions of r. It returns
// -1, -1 for a read without sites.
func (r Read) Range() (min, max int) {
	if len(r.Sites) == 0 {
		return -1, -1
	}
	min, max = r.Sites[0].Pos, r.Sites[0].Pos
	for _, s := range r.Sites[1:] {
		if s.Pos < min {
			min = s.Pos
		}
		if s.Pos > max {
			max = s.Pos
		}
	}
	return min, max
}

// Len returns the span of site positions covered by r, max-min.
func (r Read) Len() int {
	min, max := r.Range()
	return max - min
}

// Reader reads WIF records.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<30)
	return &Reader{sc: sc}
}

// Read returns the next read in the stream. At the end of the stream
// Read returns io.EOF.
func (r *Reader) Read() (Read, error) {
	for r.sc.Scan() {
		r.line++
		line := bytes.TrimSpace(r.sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		rd, err := parseRead(line)
		if err != nil {
			return Read{}, errors.Wrapf(err, "wif: line %d", r.line)
		}
		return rd, nil
	}
	if err := r.sc.Err(); err != nil {
		return Read{}, err
	}
	return Read{}, io.EOF
}

// ReadAll returns all reads remaining in r.
func ReadAll(r io.Reader) ([]Read, error) {
	wr := NewReader(r)
	var reads []Read
	for {
		rd, err := wr.Read()
		if err != nil {
			if err == io.EOF {
				return reads, nil
			}
			return nil, err
		}
		reads = append(reads, rd)
	}
}

func parseRead(line []byte) (Read, error) {
	var rd Read
	body := line
	var trailer []byte
	if i := bytes.IndexByte(line, '#'); i >= 0 {
		body, trailer = line[:i], line[i+1:]
	}
	for _, g := range bytes.Split(body, []byte{':'}) {
		g = bytes.TrimSpace(g)
		if len(g) == 0 {
			continue
		}
		s, err := parseSite(g)
		if err != nil {
			return Read{}, err
		}
		rd.Sites = append(rd.Sites, s)
	}
	if len(rd.Sites) == 0 {
		return Read{}, errors.New("no sites")
	}

	parts := bytes.SplitN(trailer, []byte{':'}, 2)
	if q := bytes.TrimSpace(parts[0]); len(q) != 0 {
		mapq, err := strconv.Atoi(string(q))
		if err != nil {
			return Read{}, errors.Wrap(err, "invalid mapping quality")
		}
		rd.MapQ = mapq
	}
	if len(parts) == 2 {
		rd.Tail = string(bytes.TrimSpace(parts[1]))
	}
	return rd, nil
}

func parseSite(g []byte) (Site, error) {
	f := bytes.Fields(g)
	if len(f) != 4 {
		return Site{}, errors.Errorf("site group %q: want 4 fields, got %d", g, len(f))
	}
	if len(f[1]) != 1 || len(f[2]) != 1 {
		return Site{}, errors.Errorf("site group %q: base and allele must be single letters", g)
	}
	pos, err := strconv.Atoi(string(f[0]))
	if err != nil {
		return Site{}, errors.Wrapf(err, "site group %q: invalid position", g)
	}
	if pos < 0 {
		return Site{}, errors.Errorf("site group %q: negative position", g)
	}
	q, err := strconv.Atoi(string(f[3]))
	if err != nil {
		return Site{}, errors.Wrapf(err, "site group %q: invalid quality", g)
	}
	if q <= 0 || q > 100 {
		return Site{}, errors.Errorf("site group %q: quality out of range (0,100]: %d", g, q)
	}
	return Site{
		Pos:     pos,
		Base:    alphabet.Letter(f[1][0]),
		Allele:  alphabet.Letter(f[2][0]),
		Quality: q,
	}, nil
}

// Writer writes WIF records.
type Writer struct {
	w   *bufio.Writer
	buf []byte
}

// NewWriter returns a Writer writing to w. Flush must be called after
// the last write.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes rd as a single line.
func (w *Writer) Write(rd Read) error {
	b := w.buf[:0]
	for _, s := range rd.Sites {
		b = strconv.AppendInt(b, int64(s.Pos), 10)
		b = append(b, ' ', byte(s.Base), ' ', byte(s.Allele), ' ')
		b = strconv.AppendInt(b, int64(s.Quality), 10)
		b = append(b, " : "...)
	}
	b = append(b, "# "...)
	b = strconv.AppendInt(b, int64(rd.MapQ), 10)
	b = append(b, " : "...)
	b = append(b, rd.Tail...)
	b = append(b, '\n')
	w.buf = b
	_, err := w.w.Write(b)
	return err
}

// Flush flushes buffered records to the underlying writer.
func (w *Writer) Flush() error { return w.w.Flush() }
