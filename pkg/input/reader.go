/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reader.go
Description: Input sources for the profiler. Opens files or stdin, applies gzip/bzip2
decompression and character-set decoding so downstream code only ever sees valid
UTF-8 text.
*/

package input

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Stdin is the source name that selects standard input
const Stdin = "-"

// Options describe how to open an input source
type Options struct {
	// Path to read; empty or "-" reads stdin
	Path string
	// Compression is "gzip", "bzip2", "none", or empty to detect from the extension
	Compression string
	// Encoding is a WHATWG label such as "utf-8", "latin1" or "windows-1252"
	Encoding string
	// Stdin replaces os.Stdin when reading standard input
	Stdin io.Reader
}

// Source is an opened, decoded input stream
type Source struct {
	Name        string
	Compression string
	Encoding    string

	reader  io.Reader
	closers []io.Closer
}

// Read implements io.Reader
func (s *Source) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close releases the underlying file and decompressor
func (s *Source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens the source described by opts
func Open(opts Options) (*Source, error) {
	compression, err := resolveCompression(opts.Compression, opts.Path)
	if err != nil {
		return nil, err
	}
	enc, encName, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	src := &Source{
		Name:        opts.Path,
		Compression: compression,
		Encoding:    encName,
	}

	if opts.Path == "" || opts.Path == Stdin {
		src.Name = "stdin"
		src.reader = os.Stdin
		if opts.Stdin != nil {
			src.reader = opts.Stdin
		}
	} else {
		file, err := os.Open(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		src.reader = file
		src.closers = append(src.closers, file)
	}

	switch compression {
	case "gzip":
		gr, err := gzip.NewReader(src.reader)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		src.reader = gr
		src.closers = append(src.closers, gr)
	case "bzip2":
		src.reader = bzip2.NewReader(src.reader)
	}

	src.reader = transform.NewReader(src.reader, enc.NewDecoder())
	return src, nil
}

// NewSource wraps an existing reader with the decoding Open would apply.
// It performs no decompression.
func NewSource(name string, r io.Reader, encodingLabel string) (*Source, error) {
	enc, encName, err := lookupEncoding(encodingLabel)
	if err != nil {
		return nil, err
	}
	return &Source{
		Name:        name,
		Compression: "none",
		Encoding:    encName,
		reader:      transform.NewReader(r, enc.NewDecoder()),
	}, nil
}

// DetectCompression infers the compression type from a file name
func DetectCompression(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return "gzip"
	case ".bz2", ".bzip2":
		return "bzip2"
	}
	return "none"
}

func resolveCompression(compression, path string) (string, error) {
	switch strings.ToLower(compression) {
	case "", "auto":
		return DetectCompression(path), nil
	case "gzip", "gz":
		return "gzip", nil
	case "bzip2", "bz2":
		return "bzip2", nil
	case "none":
		return "none", nil
	default:
		return "", fmt.Errorf("unsupported compression type: %s", compression)
	}
}

// lookupEncoding resolves a label. UTF-8 input has its BOM removed and invalid
// sequences replaced with U+FFFD.
func lookupEncoding(label string) (encoding.Encoding, string, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, "utf-8", nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	if name == "utf-8" {
		return unicode.UTF8BOM, name, nil
	}
	return enc, name, nil
}
