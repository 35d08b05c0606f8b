package starfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

type mode int

const (
	modeNone mode = iota
	modeLoopHeader
	modeLoopBody
)

// parser holds the state of a single pass over a STAR document.
type parser struct {
	file    *File
	block   *Block
	mode    mode
	line    int
	pending []string
}

// ReadFile opens and parses the STAR file at path on the given filesystem.
func ReadFile(afs afero.Fs, path string) (*File, error) {
	f, err := afs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("star: open %s: %w", path, err)
	}
	defer f.Close()

	file, err := Read(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return file, nil
}

// Read parses a STAR document.
func Read(r io.Reader) (*File, error) {
	p := &parser{file: &File{}}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.feed(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("star: read: %w", err)
	}
	if err := p.closeLoop(); err != nil {
		return nil, err
	}
	return p.file, nil
}

func (p *parser) errorf(format string, args ...any) error {
	e := &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
	if p.block != nil {
		e.Block = p.block.Name
	}
	return e
}

// feed consumes one physical line.
func (p *parser) feed(line string) error {
	tokens, err := tokenize(line)
	if err != nil {
		return p.errorf("%v", err)
	}
	if len(tokens) == 0 {
		// A blank line ends the loop body; a comment line does not.
		if p.mode == modeLoopBody && strings.TrimSpace(line) == "" {
			return p.closeLoop()
		}
		return nil
	}

	first := tokens[0]
	switch {
	case strings.HasPrefix(first, "data_"):
		if err := p.closeLoop(); err != nil {
			return err
		}
		p.block = &Block{Name: strings.TrimPrefix(first, "data_"), Pairs: make(map[string]string)}
		p.file.Blocks = append(p.file.Blocks, p.block)
		return nil

	case first == "loop_":
		if err := p.closeLoop(); err != nil {
			return err
		}
		if p.block == nil {
			return p.errorf("loop_ outside of a data block")
		}
		if p.block.Table != nil {
			return p.errorf("more than one loop in a data block")
		}
		p.block.Table = &Table{block: p.block.Name}
		p.mode = modeLoopHeader
		return nil

	case strings.HasPrefix(first, "_"):
		if p.block == nil {
			return p.errorf("label %s outside of a data block", first)
		}
		label := strings.TrimPrefix(first, "_")
		if p.mode == modeLoopHeader {
			p.block.Table.Labels = append(p.block.Table.Labels, label)
			return nil
		}
		if err := p.closeLoop(); err != nil {
			return err
		}
		if len(tokens) < 2 {
			return p.errorf("label %s has no value", first)
		}
		p.block.Pairs[label] = tokens[1]
		return nil
	}

	switch p.mode {
	case modeLoopHeader:
		if len(p.block.Table.Labels) == 0 {
			return p.errorf("loop has no column labels")
		}
		p.mode = modeLoopBody
	case modeNone:
		return p.errorf("unexpected value %q outside of a loop", first)
	}

	t := p.block.Table
	n := len(t.Labels)
	p.pending = append(p.pending, tokens...)
	for len(p.pending) >= n {
		row := make([]string, n)
		copy(row, p.pending[:n])
		t.Rows = append(t.Rows, row)
		p.pending = p.pending[n:]
	}
	if len(p.pending) == 0 {
		p.pending = nil
	}
	return nil
}

// closeLoop ends the current loop. A row left incomplete is an error.
func (p *parser) closeLoop() error {
	if len(p.pending) > 0 {
		n := len(p.block.Table.Labels)
		return p.errorf("incomplete row: got %d of %d values", len(p.pending), n)
	}
	p.mode = modeNone
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// tokenize splits a line into values. A `#` at the start of a token begins a
// comment. Quoted values close only on a matching quote followed by
// whitespace or the end of the line.
func tokenize(line string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case isSpace(c):
			i++
		case c == '#':
			return tokens, nil
		case c == '"' || c == '\'':
			j := i + 1
			for {
				k := strings.IndexByte(line[j:], c)
				if k < 0 {
					return nil, fmt.Errorf("unterminated quoted value starting at column %d", i+1)
				}
				end := j + k
				if end+1 == len(line) || isSpace(line[end+1]) {
					tokens = append(tokens, line[i+1:end])
					i = end + 1
					break
				}
				j = end + 1
			}
		default:
			j := i
			for j < len(line) && !isSpace(line[j]) {
				j++
			}
			tokens = append(tokens, line[i:j])
			i = j
		}
	}
	return tokens, nil
}
