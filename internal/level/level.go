package level

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/geometry"
)

var ErrInvalidLevel = errors.New("invalid level")

// Level is a named set of static geometry loaded from YAML:
//
//	name: arena
//	geometry:
//	  - type: 1
//	    position: [0, -300]
//	    rect: {width: 800, height: 20}
//	  - type: 2
//	    position: [120, 40]
//	    rotation: 0.4
//	    vertices: [[-30, -20], [30, -20], [0, 35]]
type Level struct {
	Name     string     `yaml:"name"`
	Geometry []Geometry `yaml:"geometry"`
}

// Geometry describes one static polygon: either explicit vertices relative
// to Position, or a Rect centered on Position.
type Geometry struct {
	Type     int32        `yaml:"type"`
	Position [2]float32   `yaml:"position"`
	Rotation float32      `yaml:"rotation,omitempty"`
	Vertices [][2]float32 `yaml:"vertices,omitempty"`
	Rect     *Rect        `yaml:"rect,omitempty"`
}

type Rect struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Load decodes and validates a level.
func Load(r io.Reader) (*Level, error) {
	var l Level
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadFile loads the level at path.
func LoadFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (l *Level) Validate() error {
	for i, g := range l.Geometry {
		switch {
		case g.Rect != nil && len(g.Vertices) > 0:
			return fmt.Errorf("%w: geometry %d has both rect and vertices", ErrInvalidLevel, i)
		case g.Rect != nil:
			if g.Rect.Width <= 0 || g.Rect.Height <= 0 {
				return fmt.Errorf("%w: geometry %d rect must have positive size", ErrInvalidLevel, i)
			}
		case len(g.Vertices) < 3:
			return fmt.Errorf("%w: geometry %d needs at least 3 vertices, got %d", ErrInvalidLevel, i, len(g.Vertices))
		}
	}
	return nil
}

// Polygon builds the polygon described by g.
func (g Geometry) Polygon() *geometry.Polygon {
	position := geometry.Vec(g.Position[0], g.Position[1])
	var p *geometry.Polygon
	if g.Rect != nil {
		p = geometry.NewRectangle(position, g.Rect.Width, g.Rect.Height)
	} else {
		p = geometry.NewPolygon(position)
		for _, v := range g.Vertices {
			p.AddVertex(geometry.Vec(v[0], v[1]))
		}
	}
	if g.Rotation != 0 {
		p.Rotate(g.Rotation)
	}
	return p
}

// Polygons builds every entry's polygon in document order.
func (l *Level) Polygons() []*geometry.Polygon {
	out := make([]*geometry.Polygon, len(l.Geometry))
	for i, g := range l.Geometry {
		out[i] = g.Polygon()
	}
	return out
}

// Apply registers every entry as static geometry on h.
func (l *Level) Apply(h *collision.Handler) error {
	for i, g := range l.Geometry {
		if err := h.AddStaticGeometry(g.Polygon(), collision.Type(g.Type)); err != nil {
			return fmt.Errorf("level %q geometry %d: %w", l.Name, i, err)
		}
	}
	return nil
}

// WalledArena returns a level made of four walls enclosing a width x height
// area centered on the origin.
func WalledArena(width, height, thickness float32, wallType int32) *Level {
	hw, hh, ht := width/2, height/2, thickness/2
	wall := func(x, y, w, h float32) Geometry {
		return Geometry{Type: wallType, Position: [2]float32{x, y}, Rect: &Rect{Width: w, Height: h}}
	}
	return &Level{
		Name: "walled-arena",
		Geometry: []Geometry{
			wall(0, -hh-ht, width+2*thickness, thickness),
			wall(0, hh+ht, width+2*thickness, thickness),
			wall(-hw-ht, 0, thickness, height),
			wall(hw+ht, 0, thickness, height),
		},
	}
}
