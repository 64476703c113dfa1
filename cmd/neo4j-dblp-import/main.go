// Command neo4j-dblp-import creates Neo4j bulk-import CSV files from DBLP
// community graphs in NEL format, producing Paper and Keyword nodes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/systemshift/neo4j-db-utils/internal/logger"
	"github.com/systemshift/neo4j-db-utils/internal/nel"
	"github.com/systemshift/neo4j-db-utils/pkg/importer"
)

func newRootCmd() *cobra.Command {
	opts := importer.DefaultOptions()
	var (
		localNodes bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:          "neo4j-dblp-import FILENAME",
		Short:        "Process a NEL file containing DBLP data",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(logLevel, "console", cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			input := args[0]
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("%s does not exist", input)
			}

			graphs := nel.NewReader(log).ReadFile(input)
			_, err = importer.Run(cmd.Context(), log, opts, graphs, nel.MapReducer{LocalNodes: localNodes})
			return err
		},
	}

	importer.RegisterFlags(cmd, &opts)
	cmd.Flags().BoolVar(&localNodes, "local-nodes", false,
		"Treat each node id as local to its graph (defaults to global)")
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
