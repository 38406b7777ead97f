package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"unicode/utf8"
)

// KeyColumn is the header that marks the key column.
const KeyColumn = ""

// Table is a fully parsed CSV document.
type Table struct {
	Header []string
	Rows   []*Row
}

// HasKeyColumn reports whether the header contains the key column.
func (t *Table) HasKeyColumn() bool {
	for _, h := range t.Header {
		if h == KeyColumn {
			return true
		}
	}
	return false
}

// Parse decodes a CSV document. The first record is the header; every later
// non-empty line becomes one Row in source order. Records with a different
// field count than the header are kept: missing cells are left out and extra
// cells are stored under "_<index>".
//
// The document must be UTF-8. A field with invalid bytes fails the whole
// parse with a ParseError wrapping ErrInvalidEncoding; nothing is replaced.
// Quotes are strict: a bare quote inside an unquoted field is an error, as
// is a quoted field left open at end of input.
//
// The input is read to the end before Parse returns.
func Parse(data []byte) (*Table, error) {
	cr := csv.NewReader(wrapForParsing(bytes.NewReader(data)))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, newParseError(err)
	}
	if err := checkEncoding(cr, header); err != nil {
		return nil, err
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newParseError(err)
		}
		if err := checkEncoding(cr, rec); err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, buildRow(header, rec))
	}
	return t, nil
}

func buildRow(header, rec []string) *Row {
	row := NewRow(len(header))
	for i, cell := range rec {
		if i < len(header) {
			row.Set(header[i], cell)
		} else {
			row.Set("_"+strconv.Itoa(i), cell)
		}
	}
	return row
}

// checkEncoding reports the first field of rec that is not valid UTF-8. rec
// must be the record most recently returned by cr.
func checkEncoding(cr *csv.Reader, rec []string) error {
	for i, field := range rec {
		if !utf8.ValidString(field) {
			line, _ := cr.FieldPos(i)
			return &ParseError{Line: line, Err: ErrInvalidEncoding}
		}
	}
	return nil
}

func newParseError(err error) *ParseError {
	pe := &ParseError{Err: err}
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		pe.Line = csvErr.Line
	}
	return pe
}
