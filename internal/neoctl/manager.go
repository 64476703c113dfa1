// Package neoctl manages the lifecycle of a Neo4j instance running in Docker:
// bulk-importing CSV files into a fresh database, then starting, stopping and
// destroying the container that serves it.
package neoctl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ContainerImportDir is where the import directory is mounted in the container.
const ContainerImportDir = "/var/lib/neo4j/import"

// Settings configures a Manager.
type Settings struct {
	Root            string
	ImportDirectory string
	Password        string

	Image         string
	AdminImport   string
	PageCacheSize string
	HeapMaxSize   string
	HTTPPort      int
	BoltPort      int

	// TTY allocates a pseudo-terminal for the import container.
	TTY bool
	// User is the uid:gid the container runs as. Empty means the current user.
	User string
}

// Status is the observed state of the managed instance.
type Status struct {
	Root        string
	RootExists  bool
	Running     bool
	ContainerID string
}

// Manager drives docker to manage one Neo4j instance.
type Manager struct {
	settings Settings
	layout   Layout
	docker   Runner
	confirm  Confirmer
	log      zerolog.Logger
	out      io.Writer
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithOutput sets where user-facing messages are written.
func WithOutput(w io.Writer) Option {
	return func(m *Manager) { m.out = w }
}

// WithConfirmer sets how destroy asks for confirmation.
func WithConfirmer(c Confirmer) Option {
	return func(m *Manager) { m.confirm = c }
}

// New returns a manager for the instance described by s.
func New(s Settings, docker Runner, opts ...Option) *Manager {
	if s.Image == "" {
		s.Image = "neo4j:latest"
	}
	if s.AdminImport == "" {
		s.AdminImport = "bin/neo4j-admin import"
	}
	if s.PageCacheSize == "" {
		s.PageCacheSize = "1024M"
	}
	if s.HeapMaxSize == "" {
		s.HeapMaxSize = "1024M"
	}
	if s.HTTPPort == 0 {
		s.HTTPPort = 7474
	}
	if s.BoltPort == 0 {
		s.BoltPort = 7687
	}
	if s.User == "" {
		s.User = fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())
	}

	m := &Manager{
		settings: s,
		layout:   NewLayout(s.Root),
		docker:   docker,
		confirm:  denyAll{},
		log:      zerolog.Nop(),
		out:      io.Discard,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Layout returns the host directories of the instance.
func (m *Manager) Layout() Layout {
	return m.layout
}

// Running reports whether the recorded container is running.
func (m *Manager) Running(ctx context.Context) (bool, error) {
	cid, err := m.layout.ContainerID()
	if err != nil || cid == "" {
		return false, err
	}

	stdout, stderr, err := m.docker.Output(ctx, "inspect", "-f", "{{.State.Running}}", cid)
	if err != nil {
		if strings.Contains(stderr, "No such object: "+cid) {
			return false, nil
		}
		return false, fmt.Errorf("%w: inspect %s: %v: %s", ErrDocker, cid, err, strings.TrimSpace(stderr))
	}

	switch result := strings.TrimSpace(stdout); result {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected output from docker inspect: %q", result)
	}
}

// Status reports whether the root exists and whether its container runs.
func (m *Manager) Status(ctx context.Context) (*Status, error) {
	st := &Status{Root: m.layout.Root}
	if !exists(m.layout.Root) {
		return st, nil
	}
	st.RootExists = true

	running, err := m.Running(ctx)
	if err != nil {
		return nil, err
	}
	if running {
		st.Running = true
		st.ContainerID, _ = m.layout.ContainerID()
	}
	return st, nil
}

// ImportFiles returns the node and edge files in the import directory as
// paths inside the container.
func (m *Manager) ImportFiles() (nodes, edges []string, err error) {
	dir := m.settings.ImportDirectory
	if !isDir(dir) {
		return nil, nil, fmt.Errorf("import directory %s: %w", dir, ErrMissingDirectory)
	}

	nodeFiles, err := filepath.Glob(filepath.Join(dir, "nodes-*.csv"))
	if err != nil {
		return nil, nil, err
	}
	if len(nodeFiles) == 0 {
		return nil, nil, fmt.Errorf("%w: expected nodes-*.csv in %s", ErrNoNodeFiles, dir)
	}
	edgeFiles, err := filepath.Glob(filepath.Join(dir, "edges-*.csv"))
	if err != nil {
		return nil, nil, err
	}

	for _, f := range nodeFiles {
		nodes = append(nodes, ContainerImportDir+"/"+filepath.Base(f))
	}
	for _, f := range edgeFiles {
		edges = append(edges, ContainerImportDir+"/"+filepath.Base(f))
	}
	return nodes, edges, nil
}

// Create builds a fresh database from the import directory. Existing data,
// log and cid directories are replaced.
func (m *Manager) Create(ctx context.Context) error {
	if err := m.requirePassword(); err != nil {
		return err
	}
	if err := m.refuseIfRunning(ctx, "destroy it first before attempting a create"); err != nil {
		return err
	}

	nodes, edges, err := m.ImportFiles()
	if err != nil {
		return err
	}
	m.log.Info().Int("node_files", len(nodes)).Int("edge_files", len(edges)).Msg("found import files")

	for _, dir := range m.layout.Dirs() {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if err := m.run(ctx, "pull", m.settings.Image); err != nil {
		return err
	}
	if err := m.run(ctx, m.createArgs(nodes, edges)...); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Created neo4j database from import files.")
	return nil
}

func (m *Manager) createArgs(nodes, edges []string) []string {
	args := []string{"run", "-i"}
	if m.settings.TTY {
		args = append(args, "-t")
	}
	args = append(args,
		"--rm",
		"--name=neoctl-import-"+uuid.NewString()[:8],
		"--volume="+m.layout.Data+":/data",
		"--volume="+m.settings.ImportDirectory+":"+ContainerImportDir,
		"--volume="+m.layout.Log+":/logs",
	)
	args = append(args, m.envArgs()...)
	args = append(args, m.userMapArgs()...)
	args = append(args, m.settings.Image)
	args = append(args, strings.Fields(m.settings.AdminImport)...)
	for _, f := range nodes {
		args = append(args, "--nodes="+f)
	}
	for _, f := range edges {
		args = append(args, "--relationships="+f)
	}
	return args
}

// Start runs the database detached, recording its id in the cid file.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.requirePassword(); err != nil {
		return err
	}
	if err := m.refuseIfRunning(ctx, ""); err != nil {
		return err
	}
	if !isDir(m.layout.Data) {
		return fmt.Errorf("%w in %s, run create first", ErrNoDatabase, m.layout.Data)
	}

	// A cid file left by a dead container makes docker run refuse to start.
	if err := os.Remove(m.layout.CIDFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale container id: %w", err)
	}
	for _, dir := range []string{m.layout.Log, m.layout.CIDDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if err := m.run(ctx, m.startArgs()...); err != nil {
		return err
	}

	cid, _ := m.layout.ContainerID()
	m.log.Info().Str("cid", cid).Msg("neo4j started")
	fmt.Fprintf(m.out, "Neo4j started, http on port %d, bolt on port %d.\n", m.settings.HTTPPort, m.settings.BoltPort)
	return nil
}

func (m *Manager) startArgs() []string {
	args := []string{
		"run", "-d", "--rm",
		"--publish=" + strconv.Itoa(m.settings.HTTPPort) + ":7474",
		"--publish=" + strconv.Itoa(m.settings.BoltPort) + ":7687",
		"--cidfile=" + m.layout.CIDFile,
		"--volume=" + m.layout.Data + ":/data",
		"--volume=" + m.layout.Log + ":/logs",
	}
	args = append(args, m.envArgs()...)
	args = append(args, m.userMapArgs()...)
	return append(args, m.settings.Image)
}

// Stop stops the recorded container if it is running.
func (m *Manager) Stop(ctx context.Context) error {
	stopped, err := m.stopIfRunning(ctx)
	if err != nil {
		return err
	}
	if stopped {
		fmt.Fprintln(m.out, "Neo4j stopped.")
	} else {
		fmt.Fprintln(m.out, "Neo4j already stopped.")
	}
	return nil
}

// Destroy stops the container and removes the data, log and cid
// directories. Unless force is set the confirmer must approve first.
func (m *Manager) Destroy(ctx context.Context, force bool) error {
	if !force {
		ok, err := m.confirm.Confirm(fmt.Sprintf("Destroy the neo4j instance and all data under %s?", m.layout.Root))
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if !ok {
			return fmt.Errorf("destroy %w, nothing removed", ErrAborted)
		}
	}

	if _, err := m.stopIfRunning(ctx); err != nil {
		return err
	}
	for _, dir := range m.layout.Dirs() {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}

	fmt.Fprintln(m.out, "Destroyed neo4j instance and its data.")
	return nil
}

func (m *Manager) stopIfRunning(ctx context.Context) (bool, error) {
	running, err := m.Running(ctx)
	if err != nil || !running {
		return false, err
	}
	cid, err := m.layout.ContainerID()
	if err != nil {
		return false, err
	}
	if err := m.run(ctx, "stop", cid); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) refuseIfRunning(ctx context.Context, hint string) error {
	running, err := m.Running(ctx)
	if err != nil {
		return err
	}
	if !running {
		return nil
	}
	if hint != "" {
		return fmt.Errorf("%w, %s", ErrAlreadyRunning, hint)
	}
	return ErrAlreadyRunning
}

func (m *Manager) requirePassword() error {
	if m.settings.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func (m *Manager) envArgs() []string {
	return []string{
		"--env=NEO4J_AUTH=neo4j/" + m.settings.Password,
		"--env=NEO4J_dbms_memory_pagecache_size=" + m.settings.PageCacheSize,
		"--env=NEO4J_dbms_memory_heap_maxSize=" + m.settings.HeapMaxSize,
	}
}

// userMapArgs runs the container as the invoking user so files written to
// the mounted volumes stay owned by them.
func (m *Manager) userMapArgs() []string {
	return []string{
		"-u", m.settings.User,
		"--userns=host",
		"-v", "/etc/group:/etc/group:ro",
		"-v", "/etc/passwd:/etc/passwd:ro",
	}
}

func (m *Manager) run(ctx context.Context, args ...string) error {
	if err := m.docker.Run(ctx, args...); err != nil {
		return fmt.Errorf("%w with command: %s: %v", ErrDocker, strings.Join(Redact(args), " "), err)
	}
	return nil
}
