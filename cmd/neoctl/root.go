package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/systemshift/neo4j-db-utils/internal/config"
	"github.com/systemshift/neo4j-db-utils/internal/logger"
	"github.com/systemshift/neo4j-db-utils/internal/neoctl"
	"github.com/systemshift/neo4j-db-utils/internal/version"
)

// Global flags, applied over the NEOCTL_* environment when set.
var (
	rootFlag      string
	importFlag    string
	passwordFlag  string
	dockerFlag    string
	logLevelFlag  string
	logFormatFlag string
)

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "neoctl",
	Short: "Manage a Neo4j instance running in docker",
	Long: `neoctl creates a Neo4j database from bulk-import CSV files
(nodes-*.csv and edges-*.csv) and manages the docker container serving it.

Data, logs and the container-id file live under the root directory.`,
	Version:           version.Version(),
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command, cancelling on SIGINT or SIGTERM.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlag, "neo4j-root", "", "Root directory for Neo4j files (default ~/neo4j, env NEOCTL_ROOT)")
	pf.StringVar(&importFlag, "import-directory", "", "Directory holding import files, used only by create (default ., env NEOCTL_IMPORT_DIRECTORY)")
	pf.StringVar(&passwordFlag, "password", "", "Password for the neo4j user, needed by create and start (env NEOCTL_PASSWORD)")
	pf.StringVar(&dockerFlag, "docker", "", "Path to the docker binary (env NEOCTL_DOCKER)")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level (env NEOCTL_LOG_LEVEL)")
	pf.StringVar(&logFormatFlag, "log-format", "", "Log format, console or json (env NEOCTL_LOG_FORMAT)")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}

	override := func(name string, dst *string, val string) {
		if cmd.Flags().Changed(name) {
			*dst = val
		}
	}
	override("neo4j-root", &cfg.Root, rootFlag)
	override("import-directory", &cfg.ImportDirectory, importFlag)
	override("password", &cfg.Password, passwordFlag)
	override("docker", &cfg.Docker, dockerFlag)
	override("log-level", &cfg.LogLevel, logLevelFlag)
	override("log-format", &cfg.LogFormat, logFormatFlag)

	if cfg.Root, err = config.ExpandPath(cfg.Root); err != nil {
		return err
	}
	if cfg.ImportDirectory, err = config.ExpandPath(cfg.ImportDirectory); err != nil {
		return err
	}

	log, err = logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return err
}

// newManager builds a lifecycle manager from the loaded configuration.
func newManager(cmd *cobra.Command) (*neoctl.Manager, error) {
	dockerPath := cfg.Docker
	if dockerPath == "" {
		var err error
		if dockerPath, err = neoctl.FindDocker(neoctl.DefaultDockerPaths); err != nil {
			return nil, err
		}
	}

	runner := neoctl.NewExecRunner(dockerPath, log)
	settings := neoctl.Settings{
		Root:            cfg.Root,
		ImportDirectory: cfg.ImportDirectory,
		Password:        cfg.Password,
		Image:           cfg.Image,
		AdminImport:     cfg.AdminImport,
		PageCacheSize:   cfg.PageCacheSize,
		HeapMaxSize:     cfg.HeapMaxSize,
		HTTPPort:        cfg.HTTPPort,
		BoltPort:        cfg.BoltPort,
		TTY:             neoctl.IsTerminal(os.Stdin),
	}

	return neoctl.New(settings, runner,
		neoctl.WithLogger(log),
		neoctl.WithOutput(cmd.OutOrStdout()),
		neoctl.WithConfirmer(neoctl.LineConfirmer{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}),
	), nil
}

// ensurePassword prompts for the password when none was configured.
func ensurePassword(cmd *cobra.Command) error {
	if cfg.Password != "" {
		return nil
	}
	pw, err := neoctl.PromptPassword(os.Stdin, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg.Password = pw
	return nil
}
