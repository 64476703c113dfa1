package nel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systemshift/neo4j-db-utils/pkg/importer"
)

const sample = `g # 1
x 0.5
n 1 101
n 2 graphs
e 1 2 HAS_KEYWORD

g # 2
n 1 101
n 2 102
n 3 graphs
e 2 1 CITES
e 1 3 HAS_KEYWORD
`

func parseAll(t *testing.T, input string) []*Graph {
	t.Helper()
	var graphs []*Graph
	for g, err := range NewReader(zerolog.Nop()).Parse("sample", strings.NewReader(input)) {
		require.NoError(t, err)
		graphs = append(graphs, g)
	}
	return graphs
}

func TestParse(t *testing.T) {
	graphs := parseAll(t, sample)
	require.Len(t, graphs, 2, "final graph without trailing blank line is emitted")

	g := graphs[0]
	assert.Equal(t, 1, g.ID)
	assert.True(t, g.HasTarget)
	assert.Equal(t, 0.5, g.Target)
	assert.Equal(t, map[int]int{1: 101}, g.papers)
	assert.Equal(t, map[int]string{2: "graphs"}, g.keywords)
	assert.Len(t, g.edges, 1)

	assert.Equal(t, 2, graphs[1].ID)
	assert.Len(t, graphs[1].edges, 2)
}

func TestParseSkipsGraphsWithoutID(t *testing.T) {
	graphs := parseAll(t, "n 1 5\n\n\ng # 9\nn 1 7\n")
	require.Len(t, graphs, 1)
	assert.Equal(t, 9, graphs[0].ID)
}

func TestParseUnknownLineSkipped(t *testing.T) {
	graphs := parseAll(t, "g # 3\nq what\nn 1 4\n")
	require.Len(t, graphs, 1)
	assert.Equal(t, map[int]int{1: 4}, graphs[0].papers)
}

func TestParseBadLine(t *testing.T) {
	var err error
	for _, e := range NewReader(zerolog.Nop()).Parse("bad", strings.NewReader("g # 1\ne 1 x LABEL\n")) {
		err = e
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad, line 2")
}

func TestMapInputGlobal(t *testing.T) {
	graphs := parseAll(t, sample)

	nodes, rels, err := MapReducer{}.MapInput(graphs[0])
	require.NoError(t, err)
	assert.Equal(t, PaperNode{ID: "101", PaperNo: 101}, nodes[0])
	assert.Equal(t, KeywordNode{ID: "graphs", Word: "graphs"}, nodes[1])
	require.Len(t, rels, 1)
	assert.Equal(t, []any{"101", "graphs", "HAS_KEYWORD"}, rels[0].CSVRow())
	assert.Equal(t, "HAS_KEYWORD_Paper_to_Keyword", rels[0].RelID().FileKey())
}

func TestMapInputLocal(t *testing.T) {
	graphs := parseAll(t, sample)

	nodes, rels, err := MapReducer{LocalNodes: true}.MapInput(graphs[1])
	require.NoError(t, err)
	assert.Equal(t, PaperNode{ID: "2-1", PaperNo: 101}, nodes[0])
	assert.Equal(t, KeywordNode{ID: "2-3", Word: "graphs"}, nodes[2])
	assert.Equal(t, []any{"2-2", "2-1", "CITES"}, rels[0].CSVRow())
}

func TestMapInputUndeclaredNode(t *testing.T) {
	graphs := parseAll(t, "g # 1\nn 1 5\ne 1 2 CITES\n")
	_, _, err := MapReducer{}.MapInput(graphs[0])
	assert.ErrorContains(t, err, "undeclared node 2")
}

func TestReduceConflict(t *testing.T) {
	_, err := PaperNode{ID: "1", PaperNo: 1}.Reduce(PaperNode{ID: "1", PaperNo: 2})
	assert.Error(t, err)

	n, err := KeywordNode{ID: "k", Word: "k"}.Reduce(KeywordNode{ID: "k", Word: "k"})
	require.NoError(t, err)
	assert.Equal(t, KeywordNode{ID: "k", Word: "k"}, n)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dblp.nel")
	require.NoError(t, os.WriteFile(input, []byte(sample), 0644))

	opts := importer.Options{
		NodeFiles: filepath.Join(dir, importer.DefaultNodeFiles),
		EdgeFiles: filepath.Join(dir, importer.DefaultEdgeFiles),
		Sorted:    true,
	}
	sum, err := importer.Run(context.Background(), zerolog.Nop(), opts,
		NewReader(zerolog.Nop()).ReadFile(input), MapReducer{})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Inputs)
	assert.Equal(t, 3, sum.Nodes)
	assert.Equal(t, 2, sum.NodeReductions)
	assert.Equal(t, 2, sum.Relationships)
	assert.Equal(t, 1, sum.RelReductions)

	data, err := os.ReadFile(filepath.Join(dir, "nodes-Paper.csv"))
	require.NoError(t, err)
	assert.Equal(t, "node_id:ID(Paper),paper_no:int,:LABEL\n101,101,Paper\n102,102,Paper\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "nodes-Keyword.csv"))
	require.NoError(t, err)
	assert.Equal(t, "node_id:ID(Keyword),word,:LABEL\ngraphs,graphs,Keyword\n", string(data))

	assert.FileExists(t, filepath.Join(dir, "edges-CITES_Paper_to_Paper.csv"))
	assert.FileExists(t, filepath.Join(dir, "edges-HAS_KEYWORD_Paper_to_Keyword.csv"))
}
