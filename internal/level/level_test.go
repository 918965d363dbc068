package level

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/geometry"
)

const arenaYAML = `
name: test-arena
geometry:
  - type: 1
    position: [0, -50]
    rect: {width: 100, height: 10}
  - type: 2
    position: [10, 10]
    vertices: [[-5, -5], [5, -5], [0, 5]]
  - type: 3
    position: [0, 0]
    rotation: 1.5707964
    rect: {width: 4, height: 2}
`

func TestLoad(t *testing.T) {
	l, err := Load(strings.NewReader(arenaYAML))
	require.NoError(t, err)
	require.Equal(t, "test-arena", l.Name)
	require.Len(t, l.Geometry, 3)

	require.Len(t, l.Polygons(), 3)

	rect := l.Geometry[0].Polygon()
	require.Equal(t, geometry.Vec(0, -50), rect.Position())
	require.Equal(t, 4, rect.VertexCount())

	tri := l.Geometry[1].Polygon()
	require.Equal(t, 3, tri.VertexCount())
	v, err := tri.Vertex(2)
	require.NoError(t, err)
	require.Equal(t, geometry.Vec(0, 5), v)

	rotated := l.Geometry[2].Polygon()
	v, err = rotated.Vertex(0)
	require.NoError(t, err)
	require.True(t, v.ApproxEqual(geometry.Vec(1, -2), 1e-4), v.String())
}

func TestLoadRejectsInvalid(t *testing.T) {
	for _, doc := range []string{
		"geometry:\n  - type: 1\n    vertices: [[0, 0], [1, 1]]\n",
		"geometry:\n  - type: 1\n    rect: {width: 0, height: 1}\n",
		"geometry:\n  - type: 1\n    rect: {width: 1, height: 1}\n    vertices: [[0, 0], [1, 0], [0, 1]]\n",
	} {
		_, err := Load(strings.NewReader(doc))
		require.ErrorIs(t, err, ErrInvalidLevel, doc)
	}

	_, err := Load(strings.NewReader("geometry:\n  - kind: 1\n"))
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	l, err := Load(strings.NewReader(arenaYAML))
	require.NoError(t, err)

	h := collision.NewHandler(collision.NewArena())
	require.NoError(t, l.Apply(h))

	static := h.StaticGeometry()
	require.Len(t, static, 3)
	require.Equal(t, collision.Type(2), static[1].Type)
	require.True(t, h.RemoveStaticGeometry(l.Geometry[1].Polygon(), 2))
}

func TestWalledArena(t *testing.T) {
	l := WalledArena(200, 100, 10, 9)
	require.NoError(t, l.Validate())

	h := collision.NewHandler(collision.NewArena())
	require.NoError(t, l.Apply(h))

	var hits []collision.Event
	body := geometry.NewRectangle(geometry.Vec(98, 0), 10, 10)
	o := collision.NewObject(h.Arena().Insert(body), 1, collision.WithCallback(func(ev collision.Event) {
		hits = append(hits, ev)
	}))
	require.NoError(t, h.AddObject(o))

	h.TestCollisions()
	require.Len(t, hits, 1)
	require.Equal(t, collision.Type(9), hits[0].Other.Type())
	require.True(t, hits[0].Normal.ApproxEqual(geometry.Vec(-1, 0), 1e-4))
	require.InDelta(t, 3, hits[0].Magnitude, 1e-4)
}
