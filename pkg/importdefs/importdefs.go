// Package importdefs defines the graph components produced when building
// Neo4j bulk-import files, and the template a caller implements to turn
// their own input records into those components.
package importdefs

import (
	"fmt"
)

// Node is a vertex destined for a nodes-<Type>.csv import file.
type Node interface {
	// NodeType is the label of the node and selects its output file.
	NodeType() string
	// NodeID must be unique within the node type. It does not have
	// to be unique across types.
	NodeID() string
	// Reduce combines two nodes that share type and id.
	Reduce(other Node) (Node, error)
	// CSVRow returns one value per column of the node file.
	CSVRow() []any
}

// RelID uniquely identifies a relationship. There is at most one
// relationship of a given type between any two nodes.
type RelID struct {
	SourceType string
	SourceID   string
	RelType    string
	DestType   string
	DestID     string
}

// Compare orders ids field by field: source type, source id, relationship
// type, destination type, destination id.
func (r RelID) Compare(o RelID) int {
	for _, p := range [][2]string{
		{r.SourceType, o.SourceType},
		{r.SourceID, o.SourceID},
		{r.RelType, o.RelType},
		{r.DestType, o.DestType},
		{r.DestID, o.DestID},
	} {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// FileKey is the (type, source type, destination type) triple that selects
// the edge file a relationship is written to.
func (r RelID) FileKey() string {
	return fmt.Sprintf("%s_%s_to_%s", r.RelType, r.SourceType, r.DestType)
}

func (r RelID) String() string {
	return fmt.Sprintf("(%s %s)-[%s]->(%s %s)", r.SourceType, r.SourceID, r.RelType, r.DestType, r.DestID)
}

// Relationship is an edge destined for an edges-*_to_*.csv import file.
type Relationship interface {
	RelID() RelID
	// Merge combines two relationships with the same id.
	Merge(other Relationship) (Relationship, error)
	CSVRow() []any
}

// SimpleRelationship is a relationship without properties. Its id is the
// full specification of the relationship.
type SimpleRelationship RelID

// NewSimpleRelationship returns a property-less relationship between two nodes.
func NewSimpleRelationship(sourceType, sourceID, relType, destType, destID string) SimpleRelationship {
	return SimpleRelationship{
		SourceType: sourceType,
		SourceID:   sourceID,
		RelType:    relType,
		DestType:   destType,
		DestID:     destID,
	}
}

func (s SimpleRelationship) RelID() RelID {
	return RelID(s)
}

// Merge succeeds only when other has the same id.
func (s SimpleRelationship) Merge(other Relationship) (Relationship, error) {
	if other.RelID() != s.RelID() {
		return nil, fmt.Errorf("merging %s with different relationship %s", s.RelID(), other.RelID())
	}
	return s, nil
}

func (s SimpleRelationship) CSVRow() []any {
	return []any{s.SourceID, s.DestID, s.RelType}
}

// SimpleHeaderRow is the header for edge files whose relationships carry no
// properties. It can back MapReducer.RelHeaderRow directly.
func SimpleHeaderRow(relType, fromType, toType string) []string {
	return []string{
		fmt.Sprintf(":START_ID(%s)", fromType),
		fmt.Sprintf(":END_ID(%s)", toType),
		":TYPE",
	}
}

// MapReducer is implemented once per input format. MapInput turns a single
// input record into the nodes and relationships it contributes; the header
// methods describe the columns of each output file. See
// https://neo4j.com/docs/operations-manual/current/tools/import/file-header-format/
type MapReducer[T any] interface {
	MapInput(input T) ([]Node, []Relationship, error)
	NodeHeaderRow(nodeType string) []string
	RelHeaderRow(relType, sourceType, destType string) []string
}
