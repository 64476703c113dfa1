package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const (
	// NodeLabel is replaced by the node type in the node file template.
	NodeLabel = "NODE_LABEL"
	// EdgeLabel is replaced by <rel>_<src>_to_<dest> in the edge file template.
	EdgeLabel = "EDGE_LABEL"

	DefaultNodeFiles = "nodes-" + NodeLabel + ".csv"
	DefaultEdgeFiles = "edges-" + EdgeLabel + ".csv"
)

// Options controls where import files are written.
type Options struct {
	NodeFiles string
	EdgeFiles string
	// Sorted orders nodes and relationships before writing so output is
	// reproducible. It holds everything in memory twice, so keep it for tests.
	Sorted bool
}

// DefaultOptions writes into the current directory.
func DefaultOptions() Options {
	return Options{
		NodeFiles: DefaultNodeFiles,
		EdgeFiles: DefaultEdgeFiles,
	}
}

// RegisterFlags adds the output flags to cmd, bound to opts.
func RegisterFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVar(&opts.NodeFiles, "output-node-files", DefaultNodeFiles,
		"Location and format for output node csv files. One file is created per unique node label, replacing "+NodeLabel+" with the label")
	cmd.Flags().StringVar(&opts.EdgeFiles, "output-edge-files", DefaultEdgeFiles,
		"Location and format for output edge csv files. One file is created per relationship type and endpoint labels, replacing "+EdgeLabel+" with <type>_<source>_to_<dest>")
	cmd.Flags().BoolVar(&opts.Sorted, "sorted", false,
		"Sort all nodes and relationships before writing for consistent results (expensive, meant for tests)")
}

// Validate checks both templates and resolves them to absolute paths.
func (o *Options) Validate() error {
	if !strings.Contains(o.NodeFiles, NodeLabel) {
		return fmt.Errorf("--output-node-files value of %q does not contain %s", o.NodeFiles, NodeLabel)
	}
	if !strings.Contains(o.EdgeFiles, EdgeLabel) {
		return fmt.Errorf("--output-edge-files value of %q does not contain %s", o.EdgeFiles, EdgeLabel)
	}

	var err error
	if o.NodeFiles, err = absTemplate("--output-node-files", o.NodeFiles); err != nil {
		return err
	}
	if o.EdgeFiles, err = absTemplate("--output-edge-files", o.EdgeFiles); err != nil {
		return err
	}
	return nil
}

func absTemplate(flag, tmpl string) (string, error) {
	abs, err := filepath.Abs(tmpl)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", flag, err)
	}
	dir := filepath.Dir(abs)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s parent directory %q not found", flag, dir)
	}
	return abs, nil
}
