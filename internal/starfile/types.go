package starfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a file or a required data block is absent.
var ErrNotFound = errors.New("star: not found")

// ParseError reports malformed input or a missing column.
type ParseError struct {
	Path  string
	Line  int
	Block string
	Msg   string
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("star: ")
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", e.Line)
	}
	if e.Block != "" {
		fmt.Fprintf(&sb, "block %q: ", e.Block)
	}
	sb.WriteString(e.Msg)
	return sb.String()
}

// File is a parsed STAR file. Blocks keep their order of appearance.
type File struct {
	Blocks []*Block
}

// Block is a single `data_` section.
type Block struct {
	Name  string
	Pairs map[string]string
	// Table is nil when the block has no loop.
	Table *Table
}

// Table is the content of a `loop_` section.
type Table struct {
	block  string
	Labels []string
	Rows   [][]string
}

// Block returns the block with exactly the given name (without `data_`).
func (f *File) Block(name string) (*Block, bool) {
	for _, b := range f.Blocks {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// FindBlock returns the first block, in file order, whose name contains substr.
func (f *File) FindBlock(substr string) (*Block, bool) {
	for _, b := range f.Blocks {
		if strings.Contains(b.Name, substr) {
			return b, true
		}
	}
	return nil, false
}

// Table returns the loop table of the named block. A missing block, or a
// block without a loop, is reported as ErrNotFound.
func (f *File) Table(name string) (*Table, error) {
	b, ok := f.Block(name)
	if !ok {
		return nil, fmt.Errorf("%w: data block %q", ErrNotFound, name)
	}
	if b.Table == nil {
		return nil, fmt.Errorf("%w: loop in data block %q", ErrNotFound, name)
	}
	return b.Table, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of the column with the given label.
func (t *Table) Column(label string) (int, error) {
	label = strings.TrimPrefix(label, "_")
	for i, l := range t.Labels {
		if l == label {
			return i, nil
		}
	}
	return -1, &ParseError{Block: t.block, Msg: fmt.Sprintf("missing column %q", label)}
}

// Columns resolves several labels at once, failing on the first missing one.
func (t *Table) Columns(labels ...string) ([]int, error) {
	idx := make([]int, len(labels))
	for i, l := range labels {
		c, err := t.Column(l)
		if err != nil {
			return nil, err
		}
		idx[i] = c
	}
	return idx, nil
}

// Value returns the raw cell of a row, or false when the column or row is
// missing.
func (t *Table) Value(row int, label string) (string, bool) {
	c, err := t.Column(label)
	if err != nil || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	return t.Rows[row][c], true
}

// Float returns the numeric value of a cell. Missing columns and values that
// do not parse yield 0.
func (t *Table) Float(row int, label string) float64 {
	raw, ok := t.Value(row, label)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
