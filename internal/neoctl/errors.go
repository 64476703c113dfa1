package neoctl

import "errors"

var (
	// ErrAlreadyRunning is returned by create and start when the recorded
	// container is still running.
	ErrAlreadyRunning = errors.New("neo4j is already running")
	// ErrNoNodeFiles means the import directory holds no nodes-*.csv files.
	ErrNoNodeFiles = errors.New("no node import files found")
	// ErrNoDatabase means start was asked for before create.
	ErrNoDatabase = errors.New("no database found")
	// ErrMissingDirectory is returned when a required directory is absent.
	ErrMissingDirectory = errors.New("directory does not exist")
	// ErrPasswordRequired is returned by create and start without a password.
	ErrPasswordRequired = errors.New("password required")
	// ErrAborted is returned when destroy is not confirmed.
	ErrAborted = errors.New("aborted")
	// ErrUnknownCommand is returned by ParseCommands.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDocker wraps a failed docker invocation.
	ErrDocker = errors.New("docker failed")
)
