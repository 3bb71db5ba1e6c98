/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: charprofile.go
Description: Character profiling. Counts every character of a decoded stream, line
terminators included, and reports them by code point with their Unicode names.
*/

package charprofile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/runenames"
)

// Unknown is reported for characters with neither a Unicode name nor a description
const Unknown = "UNKNOWN"

// Row is one line of the character profile
type Row struct {
	Rune    rune   `json:"-"`
	Code    string `json:"code"`
	Count   uint64 `json:"count"`
	Escaped string `json:"escaped"`
	Name    string `json:"name"`
}

// Profile is a per-character histogram
type Profile struct {
	counts map[rune]uint64
	total  uint64
}

// New creates an empty Profile
func New() *Profile {
	return &Profile{counts: make(map[rune]uint64)}
}

// Add counts every character of s
func (p *Profile) Add(s string) {
	for _, r := range s {
		p.counts[r]++
		p.total++
	}
}

// ReadFrom counts every character read from r until end of stream
func (p *Profile) ReadFrom(ctx context.Context, r io.Reader) error {
	br := bufio.NewReaderSize(r, 64*1024)
	for n := 0; ; n++ {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		c, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read character %d: %w", p.total+1, err)
		}
		p.counts[c]++
		p.total++
	}
}

// Total is the number of characters counted
func (p *Profile) Total() uint64 {
	return p.total
}

// Count returns how often c was seen
func (p *Profile) Count(c rune) uint64 {
	return p.counts[c]
}

// Rows returns the histogram ordered by code point
func (p *Profile) Rows() []Row {
	runes := make([]rune, 0, len(p.counts))
	for r := range p.counts {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	rows := make([]Row, 0, len(runes))
	for _, r := range runes {
		rows = append(rows, Row{
			Rune:    r,
			Code:    fmt.Sprintf("%U", r),
			Count:   p.counts[r],
			Escaped: Escape(r),
			Name:    Describe(r),
		})
	}
	return rows
}

// Render writes the profile as a tab separated table
func (p *Profile) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-8s\t%-8s\t%s\t%s\n", "char", "count", "description", "name")
	fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 8), strings.Repeat("-", 8), strings.Repeat("-", 15), strings.Repeat("-", 15))
	for _, row := range p.Rows() {
		fmt.Fprintf(bw, "%-8s\t%-8d\t%s\t%s\n", row.Code, row.Count, row.Escaped, row.Name)
	}
	return bw.Flush()
}

// Escape returns a printable form of c: Go escape sequences for control and
// invisible characters, the character itself otherwise
func Escape(c rune) string {
	q := strconv.QuoteRune(c)
	return q[1 : len(q)-1]
}

// Describe returns the Unicode name of c, falling back to the control
// character descriptions and finally Unknown
func Describe(c rune) string {
	name := runenames.Name(c)
	if name != "" && !strings.HasPrefix(name, "<") {
		return name
	}
	if desc, ok := controlDescriptions[c]; ok {
		return desc
	}
	if name != "" {
		return name
	}
	return Unknown
}
