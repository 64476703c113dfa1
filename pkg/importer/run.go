package importer

import (
	"context"
	"iter"
	"time"

	"github.com/rs/zerolog"

	"github.com/systemshift/neo4j-db-utils/pkg/importdefs"
)

// Summary describes a completed run.
type Summary struct {
	Inputs         int
	Nodes          int
	Relationships  int
	NodeReductions int
	RelReductions  int
	NodeFiles      []FileStats
	EdgeFiles      []FileStats
	Elapsed        time.Duration
}

// Run validates opts, reduces inputs through mr and writes the import files.
func Run[T any](ctx context.Context, log zerolog.Logger, opts Options, inputs iter.Seq2[T, error], mr importdefs.MapReducer[T]) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := MapAndReduce(ctx, log, mr, inputs)
	if err != nil {
		return nil, err
	}
	if opts.Sorted {
		res.Sort()
	}

	nodeFiles, err := WriteNodes(log, mr, res.Nodes, opts.NodeFiles)
	if err != nil {
		return nil, err
	}
	edgeFiles, err := WriteRelationships(log, mr, res.Relationships, opts.EdgeFiles)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Inputs:         res.Inputs,
		Nodes:          len(res.Nodes),
		Relationships:  len(res.Relationships),
		NodeReductions: res.NodeReductions,
		RelReductions:  res.RelReductions,
		NodeFiles:      nodeFiles,
		EdgeFiles:      edgeFiles,
		Elapsed:        time.Since(start),
	}
	log.Info().Dur("elapsed", sum.Elapsed).Msg("completed generation of import files")
	return sum, nil
}
