package lineio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultChunkSize is the read granularity when walking a file backwards.
const DefaultChunkSize = 8192

// ReverseReader yields the lines of a byte stream in reverse order without
// loading the whole stream into memory. It reads fixed-size chunks from the
// end toward the start and only ever splits the buffer at '\n' bytes, so
// multi-byte UTF-8 sequences are never broken across a chunk boundary.
// Both Unix and Windows line endings are handled; empty lines are skipped.
type ReverseReader struct {
	r     io.ReaderAt
	pos   int64
	buf   []byte
	chunk int
}

// NewReverseReader creates a reader over size bytes of r.
func NewReverseReader(r io.ReaderAt, size int64) *ReverseReader {
	return &ReverseReader{r: r, pos: size, chunk: DefaultChunkSize}
}

// SetChunkSize overrides the read granularity. Values below 1 are ignored.
func (rr *ReverseReader) SetChunkSize(n int) {
	if n > 0 {
		rr.chunk = n
	}
}

// ReadLine returns the next line, walking from the last line of the stream
// toward the first. Line terminators are stripped. Returns io.EOF once the
// start of the stream is reached.
func (rr *ReverseReader) ReadLine() (string, error) {
	for {
		if i := bytes.LastIndexByte(rr.buf, '\n'); i >= 0 {
			line := rr.buf[i+1:]
			rr.buf = rr.buf[:i]
			if len(line) == 0 {
				continue
			}
			return string(bytes.TrimSuffix(line, []byte("\r"))), nil
		}

		if rr.pos == 0 {
			if len(rr.buf) == 0 {
				return "", io.EOF
			}
			line := rr.buf
			rr.buf = nil
			return string(bytes.TrimSuffix(line, []byte("\r"))), nil
		}

		n := int64(rr.chunk)
		if n > rr.pos {
			n = rr.pos
		}
		chunkBuf := make([]byte, n)
		if _, err := rr.r.ReadAt(chunkBuf, rr.pos-n); err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read chunk at offset %d: %w", rr.pos-n, err)
		}
		rr.pos -= n
		rr.buf = append(chunkBuf, rr.buf...)
	}
}

// ReverseFileLines returns all lines of the file at path, last line first.
func ReverseFileLines(path string) ([]string, error) {
	return readReverse(path, -1)
}

// LastLines returns up to n trailing lines of the file at path, in file
// order. Only the tail of the file is read.
func LastLines(path string, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("line count must not be negative, got %d", n)
	}
	lines, err := readReverse(path, n)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines, nil
}

func readReverse(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	rr := NewReverseReader(f, info.Size())

	var lines []string
	for limit < 0 || len(lines) < limit {
		line, err := rr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}
