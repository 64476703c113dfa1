package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/systemshift/neo4j-db-utils/internal/graph"
	"github.com/systemshift/neo4j-db-utils/internal/neoctl"
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var showCounts bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the database container is running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		st, err := m.Status(cmd.Context())
		if err != nil {
			return err
		}
		writeStatus(cmd.OutOrStdout(), st)

		if !showCounts || !st.Running {
			return nil
		}
		if err := ensurePassword(cmd); err != nil {
			return err
		}
		return writeCounts(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	statusCmd.Flags().BoolVar(&showCounts, "counts", false, "Also show node and relationship counts over bolt")
}

// writeStatus is the styled status report.
func writeStatus(w io.Writer, st *neoctl.Status) {
	switch {
	case !st.RootExists:
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Root directory for Neo4j install %s does not exist.", st.Root)))
	case st.Running:
		fmt.Fprintln(w, runningStyle.Render("Neo4j is running, container id is "+st.ContainerID+"."))
	default:
		fmt.Fprintln(w, dimStyle.Render("Neo4j is not running."))
	}
}

func writeCounts(ctx context.Context, w io.Writer) error {
	client, err := graph.New(ctx, boltConfig())
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	counts, err := client.Counts(ctx)
	if err != nil {
		return err
	}

	writeTable(w, "Nodes", counts.Labels)
	writeTable(w, "Relationships", counts.RelationshipTypes)
	return nil
}

func writeTable(w io.Writer, title string, counts map[string]int64) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(counts) == 0 {
		fmt.Fprintln(w, dimStyle.Render("  none"))
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-30s %d\n", k, counts[k])
	}
}
