package neoctl

import (
	"context"
	"fmt"
	"io"
)

// Command is one lifecycle operation.
type Command string

const (
	CmdCreate  Command = "create"
	CmdStart   Command = "start"
	CmdStop    Command = "stop"
	CmdStatus  Command = "status"
	CmdDestroy Command = "destroy"
)

// ParseCommands converts names to commands, rejecting unknown ones.
func ParseCommands(names []string) ([]Command, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: none given, expected one of create, start, stop, status, destroy", ErrUnknownCommand)
	}
	cmds := make([]Command, 0, len(names))
	for _, name := range names {
		switch c := Command(name); c {
		case CmdCreate, CmdStart, CmdStop, CmdStatus, CmdDestroy:
			cmds = append(cmds, c)
		default:
			return nil, fmt.Errorf("%w %q", ErrUnknownCommand, name)
		}
	}
	return cmds, nil
}

// NeedsPassword reports whether any of cmds requires the neo4j password.
func NeedsPassword(cmds []Command) bool {
	for _, c := range cmds {
		if c == CmdCreate || c == CmdStart {
			return true
		}
	}
	return false
}

// Validate checks the preconditions of every command before any is run.
func (m *Manager) Validate(cmds []Command) error {
	for _, c := range cmds {
		switch c {
		case CmdCreate:
			if !isDir(m.settings.ImportDirectory) {
				return fmt.Errorf("import directory %s: %w", m.settings.ImportDirectory, ErrMissingDirectory)
			}
			if err := m.requirePassword(); err != nil {
				return fmt.Errorf("%w for create command", err)
			}
		case CmdStart:
			if err := m.requirePassword(); err != nil {
				return fmt.Errorf("%w for start command", err)
			}
		}
	}
	return nil
}

// RunAll validates cmds and then runs them in order, stopping at the first
// failure. Status results are written with report.
func (m *Manager) RunAll(ctx context.Context, cmds []Command, force bool, report func(io.Writer, *Status)) error {
	if err := m.Validate(cmds); err != nil {
		return err
	}
	for _, c := range cmds {
		m.log.Debug().Str("command", string(c)).Msg("running command")

		var err error
		switch c {
		case CmdCreate:
			err = m.Create(ctx)
		case CmdStart:
			err = m.Start(ctx)
		case CmdStop:
			err = m.Stop(ctx)
		case CmdDestroy:
			err = m.Destroy(ctx, force)
		case CmdStatus:
			var st *Status
			if st, err = m.Status(ctx); err == nil {
				report(m.out, st)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
	}
	return nil
}

// WriteStatus is the plain-text status report.
func WriteStatus(w io.Writer, st *Status) {
	switch {
	case !st.RootExists:
		fmt.Fprintf(w, "Root directory for Neo4j install %s does not exist.\n", st.Root)
	case st.Running:
		fmt.Fprintf(w, "Neo4j is running, container id is %s.\n", st.ContainerID)
	default:
		fmt.Fprintln(w, "Neo4j is not running.")
	}
}
