package ioarchive

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Delimiter separates fields in CNPJ files.
const Delimiter = ';'

// RowReader reads semicolon-separated ISO-8859-1 rows and returns them
// as UTF-8 fields. Rows that cannot be parsed are counted and skipped.
type RowReader struct {
	src       io.Reader
	closer    io.Closer
	cr        *csv.Reader
	row       []string
	malformed int
	err       error
}

// NewRowReader creates a RowReader over ISO-8859-1 encoded bytes.
// If r is an io.Closer, it is closed by RowReader.Close.
func NewRowReader(r io.Reader) *RowReader {
	res := &RowReader{src: r}
	if c, ok := r.(io.Closer); ok {
		res.closer = c
	}

	dec := transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	cr := csv.NewReader(dec)
	cr.Comma = Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	res.cr = cr
	return res
}

// Next advances to the next well-formed row. It returns false at the end
// of data or after a read failure, which is then available from Err.
func (r *RowReader) Next() bool {
	if r.err != nil {
		return false
	}
	for {
		row, err := r.cr.Read()
		if err == nil {
			if len(row) == 0 {
				r.malformed++
				continue
			}
			r.row = row
			return true
		}
		if err == io.EOF {
			return false
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			r.malformed++
			slog.Debug("Malformed row skipped", "line", pe.StartLine, "error", pe.Err)
			continue
		}
		r.err = err
		return false
	}
}

// Row returns fields of the current row. The slice is reused by the
// next call to Next.
func (r *RowReader) Row() []string {
	return r.row
}

// Malformed returns the number of skipped rows.
func (r *RowReader) Malformed() int {
	return r.malformed
}

// Err returns the first read failure, if any.
func (r *RowReader) Err() error {
	return r.err
}

// Close closes the underlying reader.
func (r *RowReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
