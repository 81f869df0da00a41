package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/negsamp/core"
)

// Atomic-file field names used by the interaction and triple formats. The
// header carries "name:type" tokens; only the name part matters here.
const (
	userField = "user_id"
	itemField = "item_id"
	headField = "head_id"
	tailField = "tail_id"
	relField  = "relation_id"
)

// ErrMissingField indicates a header without a required column.
var ErrMissingField = errors.New("missing required field")

// ReadInteractions loads a tab-separated interaction file: a header of
// "name:type" tokens containing user_id and item_id columns, then one record
// per line. Files ending in .gz or .lz4 are decompressed transparently.
// Universe counts are derived as max observed ID + 1.
func ReadInteractions(path string) (*Interactions, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cols, err := readColumns(r, []string{userField, itemField})
	if err != nil {
		return nil, fmt.Errorf("read interactions %s: %w", path, err)
	}

	d := &Interactions{
		Users:     cols[0],
		Items:     cols[1],
		UserCount: int(maxID(cols[0])) + 1,
		ItemCount: int(maxID(cols[1])) + 1,
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("read interactions %s: %w", path, err)
	}
	return d, nil
}

// ReadTriples loads a tab-separated knowledge-graph file with head_id,
// relation_id and tail_id columns. Compression handling matches
// ReadInteractions.
func ReadTriples(path string) (*Triples, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cols, err := readColumns(r, []string{headField, relField, tailField})
	if err != nil {
		return nil, fmt.Errorf("read triples %s: %w", path, err)
	}

	entities := maxID(cols[0])
	if t := maxID(cols[2]); t > entities {
		entities = t
	}
	d := &Triples{
		Heads:       cols[0],
		Relations:   cols[1],
		Tails:       cols[2],
		EntityCount: int(entities) + 1,
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("read triples %s: %w", path, err)
	}
	return d, nil
}

// openReader opens a file and layers a decompressor based on its extension.
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &layeredReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".lz4":
		return &layeredReader{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

type layeredReader struct {
	io.Reader
	closers []io.Closer
}

func (r *layeredReader) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// readColumns parses the header, locates the wanted fields and collects their
// values row by row, in the order the fields were requested.
func readColumns(r io.Reader, fields []string) ([][]core.ID, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<22)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}
	header := strings.Split(sc.Text(), "\t")
	pos := make([]int, len(fields))
	for i, want := range fields {
		pos[i] = -1
		for j, tok := range header {
			if name, _, _ := strings.Cut(tok, ":"); name == want {
				pos[i] = j
				break
			}
		}
		if pos[i] < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, want)
		}
	}

	cols := make([][]core.ID, len(fields))
	line := 1
	for sc.Scan() {
		line++
		row := strings.Split(sc.Text(), "\t")
		for i, j := range pos {
			if j >= len(row) {
				return nil, fmt.Errorf("line %d: %d columns, field %s wants column %d", line, len(row), fields[i], j+1)
			}
			v, err := strconv.ParseUint(strings.TrimSpace(row[j]), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %s: %w", line, fields[i], err)
			}
			cols[i] = append(cols[i], core.ID(v))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}

func maxID(ids []core.ID) core.ID {
	var m core.ID
	for _, id := range ids {
		if id > m {
			m = id
		}
	}
	return m
}
