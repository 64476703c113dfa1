package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/systemshift/neo4j-db-utils/internal/graph"
	"github.com/systemshift/neo4j-db-utils/internal/neoctl"
)

var (
	waitReady   bool
	waitTimeout time.Duration
	assumeYes   bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new database from the import directory",
	Long: `Create replaces any existing database with one bulk-imported from the
nodes-*.csv and edges-*.csv files in the import directory. It refuses to run
while the managed container is running.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensurePassword(cmd); err != nil {
			return fmt.Errorf("create: %w", err)
		}
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		return m.RunAll(cmd.Context(), []neoctl.Command{neoctl.CmdCreate}, false, writeStatus)
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the database container",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensurePassword(cmd); err != nil {
			return fmt.Errorf("start: %w", err)
		}
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		if err := m.RunAll(cmd.Context(), []neoctl.Command{neoctl.CmdStart}, false, writeStatus); err != nil {
			return err
		}
		if !waitReady {
			return nil
		}
		return waitForBolt(cmd.Context(), cmd)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the database container",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		return m.RunAll(cmd.Context(), []neoctl.Command{neoctl.CmdStop}, false, writeStatus)
	},
}

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Stop the container and delete the database",
	Long: `Destroy stops the managed container and removes the data, log and
cid-files directories under the root. It asks for confirmation unless --yes
is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		return m.RunAll(cmd.Context(), []neoctl.Command{neoctl.CmdDestroy}, assumeYes, writeStatus)
	},
}

var runCmd = &cobra.Command{
	Use:   "run COMMAND...",
	Short: "Run several commands in order, e.g. run destroy create start",
	Long: `Run validates every command first, then runs them in order and stops
at the first failure. Commands are create, start, stop, status and destroy.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := neoctl.ParseCommands(args)
		if err != nil {
			return err
		}
		if neoctl.NeedsPassword(cmds) {
			if err := ensurePassword(cmd); err != nil {
				return err
			}
		}
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		if err := m.RunAll(cmd.Context(), cmds, assumeYes, writeStatus); err != nil {
			return err
		}
		if waitReady && cmds[len(cmds)-1] == neoctl.CmdStart {
			return waitForBolt(cmd.Context(), cmd)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{startCmd, runCmd} {
		c.Flags().BoolVar(&waitReady, "wait", false, "After start, wait until neo4j accepts bolt connections")
		c.Flags().DurationVar(&waitTimeout, "wait-timeout", 2*time.Minute, "How long --wait waits")
	}
	for _, c := range []*cobra.Command{destroyCmd, runCmd} {
		c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation before destroying data")
	}
}

func boltConfig() graph.Config {
	return graph.Config{
		URI:      cfg.BoltURI,
		Username: "neo4j",
		Password: cfg.Password,
		Database: cfg.Database,
	}
}

func waitForBolt(ctx context.Context, cmd *cobra.Command) error {
	client, err := graph.Open(boltConfig())
	if err != nil {
		return err
	}
	defer client.Close(context.Background())

	ctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()

	log.Info().Str("uri", cfg.BoltURI).Msg("waiting for neo4j")
	if err := client.WaitReady(ctx, time.Second); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Neo4j is accepting connections at "+cfg.BoltURI+".")
	return nil
}
