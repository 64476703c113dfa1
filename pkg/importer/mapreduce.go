// Package importer runs a sequential map-reduce over caller-supplied input
// records and writes the result as Neo4j bulk-import CSV files.
package importer

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/rs/zerolog"

	"github.com/systemshift/neo4j-db-utils/pkg/importdefs"
)

// progressEvery is how often, in inputs, progress is logged.
const progressEvery = 10000

type nodeKey struct {
	typ string
	id  string
}

// Result is the reduced graph, in first-seen order.
type Result struct {
	Nodes          []importdefs.Node
	Relationships  []importdefs.Relationship
	Inputs         int
	NodeReductions int
	RelReductions  int
}

// MapAndReduce maps every input and folds nodes sharing (type, id) and
// relationships sharing a RelID. A reduced component keeps the position of
// its first occurrence.
func MapAndReduce[T any](ctx context.Context, log zerolog.Logger, mr importdefs.MapReducer[T], inputs iter.Seq2[T, error]) (*Result, error) {
	res := &Result{}
	nodeIndex := make(map[nodeKey]int)
	relIndex := make(map[importdefs.RelID]int)

	for input, err := range inputs {
		if err != nil {
			return nil, fmt.Errorf("reading input %d: %w", res.Inputs+1, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		nodes, rels, err := mr.MapInput(input)
		if err != nil {
			return nil, fmt.Errorf("mapping input %d: %w", res.Inputs+1, err)
		}

		for _, n := range nodes {
			key := nodeKey{typ: n.NodeType(), id: n.NodeID()}
			idx, ok := nodeIndex[key]
			if !ok {
				nodeIndex[key] = len(res.Nodes)
				res.Nodes = append(res.Nodes, n)
				continue
			}
			reduced, err := res.Nodes[idx].Reduce(n)
			if err != nil {
				return nil, fmt.Errorf("reducing node %s %q: %w", key.typ, key.id, err)
			}
			res.Nodes[idx] = reduced
			res.NodeReductions++
		}

		for _, r := range rels {
			id := r.RelID()
			idx, ok := relIndex[id]
			if !ok {
				relIndex[id] = len(res.Relationships)
				res.Relationships = append(res.Relationships, r)
				continue
			}
			merged, err := res.Relationships[idx].Merge(r)
			if err != nil {
				return nil, fmt.Errorf("merging relationship %s: %w", id, err)
			}
			res.Relationships[idx] = merged
			res.RelReductions++
		}

		res.Inputs++
		if res.Inputs%progressEvery == 0 {
			log.Info().Int("inputs", res.Inputs).Msg("processed inputs")
		}
	}

	log.Info().
		Int("nodes", len(res.Nodes)).
		Int("relationships", len(res.Relationships)).
		Int("node_reductions", res.NodeReductions).
		Int("relationship_reductions", res.RelReductions).
		Msg("map-reduce completed")

	return res, nil
}

// Sort orders nodes by (type, id) and relationships by RelID.
func (r *Result) Sort() {
	slices.SortStableFunc(r.Nodes, func(a, b importdefs.Node) int {
		return cmp.Or(
			cmp.Compare(a.NodeType(), b.NodeType()),
			cmp.Compare(a.NodeID(), b.NodeID()),
		)
	})
	slices.SortStableFunc(r.Relationships, func(a, b importdefs.Relationship) int {
		return a.RelID().Compare(b.RelID())
	})
}
