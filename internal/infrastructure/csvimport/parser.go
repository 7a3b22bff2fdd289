package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Parser reads a CSV file into header-keyed rows. It strips a UTF-8
// BOM, rejects non-UTF-8 input, and tracks physical line numbers so
// error reports point at the line an operator sees in the file.
type Parser struct {
	delimiter  rune
	headerMap  map[string]int
	headers    []string
	currentRow int
	reader     *csv.Reader
}

// Option configures a Parser
type Option func(*Parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) Option {
	return func(p *Parser) {
		p.delimiter = d
	}
}

// NewParser creates a parser from a reader
func NewParser(r io.Reader, opts ...Option) (*Parser, error) {
	p := &Parser{
		delimiter: ',',
		headerMap: make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}

	br := bufio.NewReader(r)

	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	if err := validateUTF8(br); err != nil {
		return nil, err
	}

	p.reader = csv.NewReader(br)
	p.reader.Comma = p.delimiter
	p.reader.LazyQuotes = true
	p.reader.TrimLeadingSpace = true
	p.reader.FieldsPerRecord = -1

	return p, nil
}

// ParseBytes creates a parser from a byte slice
func ParseBytes(data []byte, opts ...Option) (*Parser, error) {
	return NewParser(bytes.NewReader(data), opts...)
}

func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

// ParseHeader reads and parses the header row
func (p *Parser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		header := strings.TrimSpace(h)
		p.headers[i] = header
		p.headerMap[header] = i
	}
	p.currentRow = 1

	return nil
}

// Headers returns the parsed header names
func (p *Parser) Headers() []string {
	return p.headers
}

// HasHeader checks if a header exists
func (p *Parser) HasHeader(name string) bool {
	_, ok := p.headerMap[name]
	return ok
}

// Row is one parsed data row. LineNumber is the physical line in the
// file, counting the header as line 1.
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow reads the next data row
func (p *Parser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.currentRow++
	if err != nil {
		return nil, fmt.Errorf("error reading row %d: %w", p.currentRow, err)
	}

	row := &Row{
		LineNumber: p.currentRow,
		Data:       make(map[string]string, len(p.headers)),
	}
	for i, header := range p.headers {
		if i < len(record) {
			row.Data[header] = strings.TrimSpace(record[i])
		} else {
			row.Data[header] = ""
		}
	}

	return row, nil
}

// ReadAllRows reads all remaining data rows, skipping fully empty lines
func (p *Parser) ReadAllRows() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
