// Package nel builds import files from DBLP community graphs in NEL format,
// as distributed by the Stanford SNAP repository:
// https://snap.stanford.edu/data/com-DBLP.html
//
// A NEL file is a sequence of graphs separated by blank lines. Within a
// graph, "n" lines declare nodes, "e" lines edges, "g" the graph id and
// "x" the target value. A numeric global node name is a paper number; any
// other name is a keyword.
package nel

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	PaperType   = "Paper"
	KeywordType = "Keyword"
)

type edge struct {
	src, dest int
	label     string
}

// Graph is one community graph read from a NEL file.
type Graph struct {
	ID        int
	HasID     bool
	Target    float64
	HasTarget bool

	// papers and keywords map local node numbers to global names.
	papers   map[int]int
	keywords map[int]string
	order    []int
	edges    []edge
}

func newGraph() *Graph {
	return &Graph{papers: make(map[int]int), keywords: make(map[int]string)}
}

func (g *Graph) addNode(local int, global string) {
	if _, seen := g.papers[local]; !seen {
		if _, seen := g.keywords[local]; !seen {
			g.order = append(g.order, local)
		}
	}
	if n, err := strconv.Atoi(global); err == nil && isDigits(global) {
		delete(g.keywords, local)
		g.papers[local] = n
		return
	}
	delete(g.papers, local)
	g.keywords[local] = global
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Reader parses NEL input.
type Reader struct {
	log zerolog.Logger
}

// NewReader returns a reader that logs skipped lines to log.
func NewReader(log zerolog.Logger) *Reader {
	return &Reader{log: log}
}

// ReadFile yields the graphs of the NEL file at path.
func (r *Reader) ReadFile(path string) iter.Seq2[*Graph, error] {
	return func(yield func(*Graph, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer f.Close()

		for g, err := range r.Parse(path, f) {
			if !yield(g, err) {
				return
			}
		}
	}
}

// Parse yields each graph that has a graph id. The last graph is emitted
// at EOF even without a trailing blank line.
func (r *Reader) Parse(name string, in io.Reader) iter.Seq2[*Graph, error] {
	return func(yield func(*Graph, error) bool) {
		scanner := bufio.NewScanner(in)
		g := newGraph()
		lineno := 0

		for scanner.Scan() {
			lineno++
			line := strings.TrimRight(scanner.Text(), " \t\r")
			if line == "" {
				if g.HasID && !yield(g, nil) {
					return
				}
				g = newGraph()
				continue
			}

			if err := r.parseLine(g, line); err != nil {
				yield(nil, fmt.Errorf("%s, line %d: %w", name, lineno, err))
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, fmt.Errorf("reading %s: %w", name, err))
			return
		}
		if g.HasID {
			yield(g, nil)
		}
	}
}

func (r *Reader) parseLine(g *Graph, line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "n":
		if len(fields) < 3 {
			return fmt.Errorf("node line needs a local id and a name: %q", line)
		}
		local, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad local node id %q", fields[1])
		}
		g.addNode(local, fields[2])
	case "e":
		if len(fields) < 4 {
			return fmt.Errorf("edge line needs source, destination and label: %q", line)
		}
		src, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad edge source %q", fields[1])
		}
		dest, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("bad edge destination %q", fields[2])
		}
		g.edges = append(g.edges, edge{src: src, dest: dest, label: fields[3]})
	case "g":
		if len(fields) < 3 {
			return fmt.Errorf("graph line needs an id: %q", line)
		}
		id, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("bad graph id %q", fields[2])
		}
		g.ID, g.HasID = id, true
	case "x":
		if len(fields) < 2 {
			return fmt.Errorf("target line needs a value: %q", line)
		}
		target, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("bad target %q", fields[1])
		}
		g.Target, g.HasTarget = target, true
	default:
		r.log.Warn().Str("line", line).Msg("unknown line")
	}
	return nil
}
