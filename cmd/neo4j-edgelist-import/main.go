// Command neo4j-edgelist-import creates Neo4j bulk-import CSV files from a
// simple edge list: one "src dest label" triple per line, # for comments.
// With --sqlite-query the input is instead a SQLite database queried for
// (source, dest, label) rows.
package main

import (
	"context"
	"fmt"
	"iter"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/systemshift/neo4j-db-utils/internal/edgelist"
	"github.com/systemshift/neo4j-db-utils/internal/logger"
	"github.com/systemshift/neo4j-db-utils/pkg/importer"
)

func newRootCmd() *cobra.Command {
	opts := importer.DefaultOptions()
	var (
		sqliteQuery string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:          "neo4j-edgelist-import INPUT_FILE",
		Short:        "Create .csv import files for neo4j from a simple edge list format",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(logLevel, "console", cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			input := args[0]
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("input file %s does not exist", input)
			}

			var edges iter.Seq2[edgelist.Edge, error]
			if sqliteQuery != "" {
				edges = edgelist.ReadSQLite(cmd.Context(), input, sqliteQuery)
			} else {
				edges = edgelist.ReadFile(input)
			}

			_, err = importer.Run(cmd.Context(), log, opts, edges, edgelist.MapReducer{})
			return err
		},
	}

	importer.RegisterFlags(cmd, &opts)
	cmd.Flags().StringVar(&sqliteQuery, "sqlite-query", "",
		"Treat INPUT_FILE as a SQLite database and read edges with this query, e.g. \""+edgelist.DefaultQuery+"\"")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level")
	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
