package level

import (
	"embed"
	"io/fs"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tomz197/rotander/internal/config"
)

//go:embed levels/*.json
var builtin embed.FS

// Builtin returns the levels shipped with the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "levels")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}

// Manager walks numbered level files (1.json, 2.json, ...) in order.
type Manager struct {
	fsys    fs.FS
	start   int
	current int
}

// NewManager starts at level start in fsys.
func NewManager(fsys fs.FS, start int) *Manager {
	start = max(start, 1)
	return &Manager{fsys: fsys, start: start, current: start}
}

// NewManagerFromDir uses dir when set, the built-in levels otherwise.
func NewManagerFromDir(dir string, start int) (*Manager, error) {
	if dir == "" {
		return NewManager(Builtin(), start), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, "levels directory")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("levels path %s is not a directory", dir)
	}
	return NewManager(os.DirFS(dir), start), nil
}

// Current returns the current level number.
func (m *Manager) Current() int {
	return m.current
}

// Path returns the file name of the current level.
func (m *Manager) Path() string {
	return levelFile(m.current)
}

// Advance moves to the next level number.
func (m *Manager) Advance() {
	m.current++
}

// Reset goes back to the starting level.
func (m *Manager) Reset() {
	m.current = m.start
}

// HasNext reports whether a file exists for the level after the current one.
func (m *Manager) HasNext() bool {
	_, err := fs.Stat(m.fsys, levelFile(m.current+1))
	return err == nil
}

// Load parses the current level.
func (m *Manager) Load(base config.Settings) (*Level, error) {
	return LoadFS(m.fsys, m.Path(), base)
}

func levelFile(n int) string {
	return strconv.Itoa(n) + ".json"
}
