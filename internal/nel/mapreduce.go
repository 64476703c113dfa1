package nel

import (
	"fmt"
	"strconv"

	"github.com/systemshift/neo4j-db-utils/pkg/importdefs"
)

// PaperNode is a DBLP paper.
type PaperNode struct {
	ID      string
	PaperNo int
}

func (p PaperNode) NodeType() string { return PaperType }
func (p PaperNode) NodeID() string   { return p.ID }
func (p PaperNode) CSVRow() []any    { return []any{p.ID, p.PaperNo, PaperType} }

func (p PaperNode) Reduce(other importdefs.Node) (importdefs.Node, error) {
	o, ok := other.(PaperNode)
	if !ok || o != p {
		return nil, fmt.Errorf("paper %s: conflicting definitions %v and %v", p.ID, p, other)
	}
	return p, nil
}

func (p PaperNode) String() string {
	return fmt.Sprintf("(Paper %d, id=%s)", p.PaperNo, p.ID)
}

// KeywordNode is a keyword attached to papers.
type KeywordNode struct {
	ID   string
	Word string
}

func (k KeywordNode) NodeType() string { return KeywordType }
func (k KeywordNode) NodeID() string   { return k.ID }
func (k KeywordNode) CSVRow() []any    { return []any{k.ID, k.Word, KeywordType} }

func (k KeywordNode) Reduce(other importdefs.Node) (importdefs.Node, error) {
	o, ok := other.(KeywordNode)
	if !ok || o != k {
		return nil, fmt.Errorf("keyword %s: conflicting definitions %v and %v", k.ID, k, other)
	}
	return k, nil
}

func (k KeywordNode) String() string {
	return fmt.Sprintf("(Keyword %s, id=%s)", k.Word, k.ID)
}

// MapReducer maps graphs to paper and keyword nodes. With LocalNodes set,
// node ids are scoped to their graph as "<graph>-<local>"; otherwise the
// global name is the id, so the same paper in two graphs is one node.
type MapReducer struct {
	LocalNodes bool
}

func (m MapReducer) nodeID(g *Graph, local int, global string) string {
	if m.LocalNodes {
		return fmt.Sprintf("%d-%d", g.ID, local)
	}
	return global
}

func (m MapReducer) MapInput(g *Graph) ([]importdefs.Node, []importdefs.Relationship, error) {
	nodes := make([]importdefs.Node, 0, len(g.order))
	byLocal := make(map[int]importdefs.Node, len(g.order))

	for _, local := range g.order {
		var n importdefs.Node
		if paperNo, ok := g.papers[local]; ok {
			n = PaperNode{ID: m.nodeID(g, local, strconv.Itoa(paperNo)), PaperNo: paperNo}
		} else {
			word := g.keywords[local]
			n = KeywordNode{ID: m.nodeID(g, local, word), Word: word}
		}
		byLocal[local] = n
		nodes = append(nodes, n)
	}

	rels := make([]importdefs.Relationship, 0, len(g.edges))
	for _, e := range g.edges {
		src, ok := byLocal[e.src]
		if !ok {
			return nil, nil, fmt.Errorf("graph %d: edge references undeclared node %d", g.ID, e.src)
		}
		dest, ok := byLocal[e.dest]
		if !ok {
			return nil, nil, fmt.Errorf("graph %d: edge references undeclared node %d", g.ID, e.dest)
		}
		rels = append(rels, importdefs.NewSimpleRelationship(
			src.NodeType(), src.NodeID(), e.label, dest.NodeType(), dest.NodeID()))
	}

	return nodes, rels, nil
}

func (MapReducer) NodeHeaderRow(nodeType string) []string {
	if nodeType == PaperType {
		return []string{"node_id:ID(Paper)", "paper_no:int", ":LABEL"}
	}
	return []string{"node_id:ID(Keyword)", "word", ":LABEL"}
}

func (MapReducer) RelHeaderRow(relType, sourceType, destType string) []string {
	return importdefs.SimpleHeaderRow(relType, sourceType, destType)
}
