// Package edgelist builds import files from a plain list of labelled edges.
package edgelist

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/systemshift/neo4j-db-utils/pkg/importdefs"
)

// NodeType is the label given to every endpoint.
const NodeType = "Node"

// Edge is one "src dest label" line.
type Edge struct {
	Source string
	Dest   string
	Label  string
}

// Parse yields the edges of r. Blank lines and lines starting with # are
// skipped; any other line must have exactly three fields.
func Parse(name string, r io.Reader) iter.Seq2[Edge, error] {
	return func(yield func(Edge, error) bool) {
		scanner := bufio.NewScanner(r)
		lineno := 0
		for scanner.Scan() {
			lineno++
			line := scanner.Text()
			if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) != 3 {
				yield(Edge{}, fmt.Errorf("parse error in %s, line %d: expecting src dest label", name, lineno))
				return
			}
			if !yield(Edge{Source: fields[0], Dest: fields[1], Label: fields[2]}, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Edge{}, fmt.Errorf("reading %s: %w", name, err))
		}
	}
}

// ReadFile yields the edges of the file at path.
func ReadFile(path string) iter.Seq2[Edge, error] {
	return func(yield func(Edge, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(Edge{}, err)
			return
		}
		defer f.Close()

		for e, err := range Parse(path, f) {
			if !yield(e, err) {
				return
			}
		}
	}
}

// node is an edge-list endpoint; its name is its id.
type node struct {
	name string
}

func (n node) NodeType() string { return NodeType }
func (n node) NodeID() string   { return n.name }
func (n node) CSVRow() []any    { return []any{n.name, NodeType} }

func (n node) Reduce(other importdefs.Node) (importdefs.Node, error) {
	if other.NodeID() != n.name {
		return nil, fmt.Errorf("reducing node %q with %q", n.name, other.NodeID())
	}
	return n, nil
}

// MapReducer maps each edge to its two endpoints and one relationship.
type MapReducer struct{}

func (MapReducer) MapInput(e Edge) ([]importdefs.Node, []importdefs.Relationship, error) {
	return []importdefs.Node{node{name: e.Source}, node{name: e.Dest}},
		[]importdefs.Relationship{
			importdefs.NewSimpleRelationship(NodeType, e.Source, e.Label, NodeType, e.Dest),
		}, nil
}

func (MapReducer) NodeHeaderRow(string) []string {
	return []string{"name:ID(" + NodeType + ")", ":LABEL"}
}

func (MapReducer) RelHeaderRow(relType, sourceType, destType string) []string {
	return importdefs.SimpleHeaderRow(relType, sourceType, destType)
}
