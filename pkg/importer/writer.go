package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/systemshift/neo4j-db-utils/pkg/importdefs"
)

// FileStats records what was written to one import file.
type FileStats struct {
	Path string
	Rows int
}

type outputFile struct {
	path string
	f    *os.File
	w    *csv.Writer
	rows int
}

func createOutput(path string, header []string) (*outputFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	out := &outputFile{path: path, f: f, w: csv.NewWriter(f)}
	if err := out.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}
	return out, nil
}

func (o *outputFile) writeRow(row []string) error {
	if err := o.w.Write(row); err != nil {
		return fmt.Errorf("writing %s: %w", o.path, err)
	}
	o.rows++
	return nil
}

func (o *outputFile) close() error {
	o.w.Flush()
	return errors.Join(o.w.Error(), o.f.Close())
}

// fileSet keeps output files open by key until closeAll.
type fileSet struct {
	log   zerolog.Logger
	order []string
	files map[string]*outputFile
}

func newFileSet(log zerolog.Logger) *fileSet {
	return &fileSet{log: log, files: make(map[string]*outputFile)}
}

func (s *fileSet) get(key, path string, header func() []string) (*outputFile, error) {
	if out, ok := s.files[key]; ok {
		return out, nil
	}
	out, err := createOutput(path, header())
	if err != nil {
		return nil, err
	}
	s.files[key] = out
	s.order = append(s.order, key)
	return out, nil
}

func (s *fileSet) closeAll() ([]FileStats, error) {
	var errs []error
	stats := make([]FileStats, 0, len(s.order))
	for _, key := range s.order {
		out := s.files[key]
		if err := out.close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", out.path, err))
			continue
		}
		s.log.Info().Int("records", out.rows).Str("file", out.path).Msg("wrote import file")
		stats = append(stats, FileStats{Path: out.path, Rows: out.rows})
	}
	return stats, errors.Join(errs...)
}

// WriteNodes writes one file per node type, named from tmpl by replacing
// NodeLabel with the type.
func WriteNodes[T any](log zerolog.Logger, mr importdefs.MapReducer[T], nodes []importdefs.Node, tmpl string) (stats []FileStats, err error) {
	files := newFileSet(log)
	defer func() {
		closed, cerr := files.closeAll()
		stats = closed
		err = errors.Join(err, cerr)
	}()

	for _, n := range nodes {
		typ, id := n.NodeType(), n.NodeID()
		if strings.Contains(id, "\n") {
			return nil, fmt.Errorf("node %s %q contains a newline", typ, id)
		}
		out, err := files.get(typ, strings.ReplaceAll(tmpl, NodeLabel, typ), func() []string {
			return mr.NodeHeaderRow(typ)
		})
		if err != nil {
			return nil, err
		}
		if err := out.writeRow(importdefs.FormatRow(n.CSVRow())); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// WriteRelationships writes one file per (type, source type, destination
// type), named from tmpl by replacing EdgeLabel with RelID.FileKey.
func WriteRelationships[T any](log zerolog.Logger, mr importdefs.MapReducer[T], rels []importdefs.Relationship, tmpl string) (stats []FileStats, err error) {
	files := newFileSet(log)
	defer func() {
		closed, cerr := files.closeAll()
		stats = closed
		err = errors.Join(err, cerr)
	}()

	for _, r := range rels {
		id := r.RelID()
		key := id.FileKey()
		out, err := files.get(key, strings.ReplaceAll(tmpl, EdgeLabel, key), func() []string {
			return mr.RelHeaderRow(id.RelType, id.SourceType, id.DestType)
		})
		if err != nil {
			return nil, err
		}
		if err := out.writeRow(importdefs.FormatRow(r.CSVRow())); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
