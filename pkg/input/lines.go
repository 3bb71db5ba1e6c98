/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lines.go
Description: Line reader that yields one line at a time with \n or \r\n terminators
removed, returns a final unterminated line, and propagates read failures.
*/

package input

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const readBufferSize = 64 * 1024

// LineReader reads lines of arbitrary length
type LineReader struct {
	r    *bufio.Reader
	line uint64
}

// NewLineReader creates a line reader over r
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, readBufferSize)}
}

// Next returns the next line without its terminator.
// It returns io.EOF once the stream is exhausted.
func (lr *LineReader) Next() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if s == "" {
			return "", io.EOF
		}
	}

	lr.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// Line returns the number of lines returned so far
func (lr *LineReader) Line() uint64 {
	return lr.line
}
