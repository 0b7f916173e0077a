// Package level loads level files: the static shapes, the enemies and any
// per-level setting overrides.
package level

import (
	"encoding/json"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/geometry"
	"github.com/tomz197/rotander/internal/object"
)

var (
	// ErrNoShapes is returned for a level without any static shape.
	ErrNoShapes = errors.New("level has no shapes")
	// ErrEdgeOutOfRange is returned when a shape edge references a missing vertex.
	ErrEdgeOutOfRange = geometry.ErrEdgeOutOfRange
)

// Enemy defaults when a level omits them.
const (
	defaultEnemySize  = 1.0
	defaultEnemySpeed = 0.1
)

// Level is a parsed level file.
type Level struct {
	Name     string
	Shapes   []object.Shape
	Enemies  []EnemySpec
	Settings config.Settings
}

// EnemySpec is where an enemy starts and how it moves.
type EnemySpec struct {
	Position mgl64.Vec3
	Size     float64
	Speed    float64
}

// NewEnemies creates fresh enemies for one level attempt.
func (l *Level) NewEnemies() []*object.Enemy {
	return lo.Map(l.Enemies, func(e EnemySpec, _ int) *object.Enemy {
		return object.NewEnemy(e.Position, e.Size, e.Speed)
	})
}

// Targets returns the indices of the target shapes.
func (l *Level) Targets() []int {
	return lo.FilterMap(l.Shapes, func(s object.Shape, i int) (int, bool) {
		return i, s.Target
	})
}

// Load reads a level file from disk.
func Load(path string, base config.Settings) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read level %s", path)
	}
	l, err := Parse(data, base)
	if err != nil {
		return nil, errors.Wrapf(err, "level %s", path)
	}
	return l, nil
}

// LoadFS reads a level file from fsys.
func LoadFS(fsys fs.FS, name string, base config.Settings) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read level %s", name)
	}
	l, err := Parse(data, base)
	if err != nil {
		return nil, errors.Wrapf(err, "level %s", name)
	}
	return l, nil
}

// Parse decodes a level document. Settings absent from the document keep
// their value from base.
func Parse(data []byte, base config.Settings) (*Level, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if len(doc.Shapes) == 0 {
		return nil, ErrNoShapes
	}

	s := base
	doc.Settings.apply(&s)
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "settings")
	}

	l := &Level{Name: doc.Name, Settings: s}
	for i, sd := range doc.Shapes {
		shape, err := sd.shape(s.Display.DefaultShape)
		if err != nil {
			name := sd.Name
			if name == "" {
				name = "#" + strconv.Itoa(i)
			}
			return nil, errors.Wrapf(err, "shape %s", name)
		}
		l.Shapes = append(l.Shapes, shape)
	}

	l.Enemies = lo.Map(doc.Enemies, func(e enemyDoc, _ int) EnemySpec {
		return EnemySpec{
			Position: mgl64.Vec3(e.Position),
			Size:     lo.FromPtrOr(e.Size, defaultEnemySize),
			Speed:    lo.FromPtrOr(e.Speed, defaultEnemySpeed),
		}
	})
	return l, nil
}
