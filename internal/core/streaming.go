package core

// streaming.go provides the io.Reader wrappers used on both sides of the
// pipeline:
//
//   - limitReader: counts response body bytes and stops past the maximum
//   - bomSkippingReader: drops a leading UTF-8 BOM (0xEF 0xBB 0xBF)
//
// Use wrapForParsing for anything handed to the CSV reader. Encoding is not
// repaired here; Parse rejects invalid UTF-8.

import (
	"bufio"
	"bytes"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// limitReader reads at most max bytes and reports ErrBodyTooLarge when the
// underlying reader has more. A max of zero or less disables the limit.
type limitReader struct {
	r         io.Reader
	max       int64
	bytesRead int64
}

func newLimitReader(r io.Reader, max int64) *limitReader {
	return &limitReader{r: r, max: max}
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.max > 0 {
		remaining := l.max - l.bytesRead
		if remaining < 0 {
			return 0, ErrBodyTooLarge
		}
		// Allow one byte past the limit so an exact-size body still ends in EOF.
		if int64(len(p)) > remaining+1 {
			p = p[:remaining+1]
		}
	}
	n, err := l.r.Read(p)
	l.bytesRead += int64(n)
	if l.max > 0 && l.bytesRead > l.max {
		return n, ErrBodyTooLarge
	}
	return n, err
}

// bomSkippingReader drops a UTF-8 BOM at the start of the stream.
type bomSkippingReader struct {
	br      *bufio.Reader
	checked bool
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{br: bufio.NewReader(r)}
}

func (b *bomSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head, err := b.br.Peek(len(utf8BOM))
		if err != nil && err != io.EOF {
			return 0, err
		}
		if bytes.Equal(head, utf8BOM) {
			if _, err := b.br.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.br.Read(p)
}

// wrapForParsing strips a leading BOM.
func wrapForParsing(r io.Reader) io.Reader {
	return newBOMSkippingReader(r)
}
