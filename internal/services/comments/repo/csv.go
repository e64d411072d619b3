// Package repo holds the input source and output sinks of the cleaning job
package repo

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	perr "judolguard/internal/platform/errors"
	"judolguard/internal/services/comments/domain"
)

const bom = "\ufeff"

// CSVSource reads comment rows from a CSV stream with a header line
type CSVSource struct {
	r      *csv.Reader
	c      io.Closer
	header []string
	line   int
	done   bool
}

var _ domain.SourcePort = (*CSVSource)(nil)

// NewCSVSource reads the header from r; rows may have any number of fields
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, perr.InvalidArgf("csv: empty input, header expected")
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "csv: read header")
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		header[i] = strings.TrimSpace(h)
	}
	return &CSVSource{r: cr, header: header}, nil
}

// OpenCSVSource opens path for reading
func OpenCSVSource(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "csv: open %s", path)
	}
	s, err := NewCSVSource(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.c = f
	return s, nil
}

// Header returns the column names
func (s *CSVSource) Header() []string { return s.header }

// Next reads up to n rows
func (s *CSVSource) Next(ctx context.Context, n int) ([]domain.Record, error) {
	if s.done {
		return nil, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = 1
	}
	out := make([]domain.Record, 0, n)
	for len(out) < n {
		rec, err := s.r.Read()
		if errors.Is(err, io.EOF) {
			s.done = true
			return out, io.EOF
		}
		if err != nil {
			return out, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "csv: row %d", s.line+1)
		}
		s.line++
		out = append(out, domain.Record{Line: s.line, Fields: rec})
	}
	return out, nil
}

// Close closes the underlying file when the source owns one
func (s *CSVSource) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}

// CSVSink writes cleaned rows as CSV, replacing the text column with the cleaned text
type CSVSink struct {
	w       *csv.Writer
	c       io.Closer
	columns []string
	idx     []int
	text    int
	keepRaw bool
}

var _ domain.SinkPort = (*CSVSink)(nil)

// NewCSVSink writes to w; columns restricts the output to the named input columns, empty keeps all
func NewCSVSink(w io.Writer, columns []string) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w), columns: columns}
}

// CreateCSVSink creates path and its parent directories
func CreateCSVSink(path string, columns []string) (*CSVSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeIO, "csv: mkdir %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "csv: create %s", path)
	}
	s := NewCSVSink(f, columns)
	s.c = f
	return s, nil
}

// Name identifies the sink in logs
func (s *CSVSink) Name() string { return "csv" }

// Open writes the header
func (s *CSVSink) Open(_ context.Context, _ string, layout domain.Layout, keepRaw bool) error {
	s.keepRaw = keepRaw
	s.text = layout.Text
	s.idx = s.idx[:0]

	if len(s.columns) == 0 {
		for i := range layout.Header {
			s.idx = append(s.idx, i)
		}
	} else {
		pos := make(map[string]int, len(layout.Header))
		for i, h := range layout.Header {
			pos[h] = i
		}
		hasText := false
		for _, c := range s.columns {
			i, ok := pos[strings.TrimSpace(c)]
			if !ok {
				continue
			}
			s.idx = append(s.idx, i)
			hasText = hasText || i == layout.Text
		}
		if !hasText {
			s.idx = append(s.idx, layout.Text)
		}
	}

	header := make([]string, 0, len(s.idx)+1)
	for _, i := range s.idx {
		header = append(header, layout.Header[i])
	}
	if keepRaw {
		header = append(header, domain.RawColumn)
	}
	if err := s.w.Write(header); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "csv: write header")
	}
	return nil
}

// Write appends one row per cleaned record and flushes
func (s *CSVSink) Write(_ context.Context, _ string, xs []domain.Cleaned) error {
	row := make([]string, 0, len(s.idx)+1)
	for _, c := range xs {
		row = row[:0]
		for _, i := range s.idx {
			if i == s.text {
				row = append(row, c.Text)
				continue
			}
			row = append(row, c.Record.Field(i))
		}
		if s.keepRaw {
			row = append(row, c.Raw)
		}
		if err := s.w.Write(row); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "csv: write line %d", c.Record.Line)
		}
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "csv: flush")
	}
	return nil
}

// Close flushes and closes the file when the sink owns one
func (s *CSVSink) Close(context.Context) error {
	s.w.Flush()
	err := s.w.Error()
	if s.c != nil {
		err = errors.Join(err, s.c.Close())
	}
	return err
}
