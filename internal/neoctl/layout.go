package neoctl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CIDFileName is the container-id file written by docker run --cidfile.
const CIDFileName = "neo4j.cid"

// Layout is the set of host directories backing a managed instance.
type Layout struct {
	Root    string
	Data    string
	Log     string
	CIDDir  string
	CIDFile string
}

// NewLayout returns the layout under root.
func NewLayout(root string) Layout {
	cidDir := filepath.Join(root, "cid-files")
	return Layout{
		Root:    root,
		Data:    filepath.Join(root, "data"),
		Log:     filepath.Join(root, "log"),
		CIDDir:  cidDir,
		CIDFile: filepath.Join(cidDir, CIDFileName),
	}
}

// Dirs returns the directories create recreates and destroy removes.
func (l Layout) Dirs() []string {
	return []string{l.Data, l.Log, l.CIDDir}
}

// ContainerID returns the recorded container id, or "" when the cid file is
// missing or empty.
func (l Layout) ContainerID() (string, error) {
	data, err := os.ReadFile(l.CIDFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading container id: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
