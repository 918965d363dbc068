package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/geometry"
	"github.com/zeusync/collision/internal/core/systems"
	"github.com/zeusync/collision/internal/level"
)

const eps = 1e-3

func newScene(t *testing.T, lvl *level.Level) (*Scene, *systems.Runner, *collision.Handler) {
	t.Helper()
	h := collision.NewHandler(collision.NewArena())
	if lvl != nil {
		require.NoError(t, lvl.Apply(h))
	}
	s := NewScene(h, nil)
	r := systems.NewRunner(nil)
	require.NoError(t, s.Install(r, nil))
	return s, r, h
}

func TestInstallOrder(t *testing.T) {
	_, r, _ := newScene(t, nil)
	require.Equal(t, []string{"movement", collision.SystemName}, r.GetExecutionOrder())
}

func TestBodyBouncesOffWall(t *testing.T) {
	s, r, _ := newScene(t, level.WalledArena(200, 100, 10, 1))

	b, err := s.AddBody(geometry.NewRectangle(geometry.Vec(90, 0), 10, 10), geometry.Vec(50, 0), 0)
	require.NoError(t, err)

	// 90 -> 100 puts the right edge 5 units into the wall at x=100.
	require.NoError(t, r.Update(0.2))

	require.True(t, b.Position().ApproxEqual(geometry.Vec(95, 0), eps), b.Position().String())
	require.True(t, b.Velocity.ApproxEqual(geometry.Vec(-50, 0), eps), b.Velocity.String())
	require.Equal(t, uint64(1), b.Contacts)
}

func TestBodiesSplitCorrection(t *testing.T) {
	s, r, _ := newScene(t, nil)

	a, err := s.AddBody(geometry.NewRectangle(geometry.Vec(-10, 0), 10, 10), geometry.Vec(10, 0), 0)
	require.NoError(t, err)
	b, err := s.AddBody(geometry.NewRectangle(geometry.Vec(10, 0), 10, 10), geometry.Vec(-10, 0), 0)
	require.NoError(t, err)

	require.NoError(t, r.Update(0.75))

	require.True(t, a.Position().ApproxEqual(geometry.Vec(-5, 0), eps), a.Position().String())
	require.True(t, b.Position().ApproxEqual(geometry.Vec(5, 0), eps), b.Position().String())
	require.True(t, a.Velocity.ApproxEqual(geometry.Vec(-10, 0), eps))
	require.True(t, b.Velocity.ApproxEqual(geometry.Vec(10, 0), eps))
}

func TestSpawnIsDeterministic(t *testing.T) {
	opts := Options{Bodies: 8, Seed: 42, Width: 400, Height: 300, MaxSpeed: 100}

	s1, _, h1 := newScene(t, nil)
	require.NoError(t, s1.Spawn(opts))
	s2, _, _ := newScene(t, nil)
	require.NoError(t, s2.Spawn(opts))

	require.Len(t, h1.Objects(), 8)
	for i, b := range s1.Bodies() {
		other := s2.Bodies()[i]
		require.Equal(t, b.Position(), other.Position())
		require.Equal(t, b.Velocity, other.Velocity)
		require.LessOrEqual(t, b.Velocity.Magnitude(), opts.MaxSpeed+eps)
		require.Same(t, b, b.Object().UserData())
	}
}

func TestSpawnedBodiesStayInsideWalls(t *testing.T) {
	const w, h = 400, 300
	s, r, _ := newScene(t, level.WalledArena(w, h, 40, 1))
	require.NoError(t, s.Spawn(Options{Bodies: 12, Seed: 3, Width: w, Height: h, MaxSpeed: 150}))

	for i := 0; i < 600; i++ {
		require.NoError(t, r.Update(1.0/60))
	}
	for _, b := range s.Bodies() {
		p := b.Position()
		require.Less(t, p.X, float32(w/2+20), p.String())
		require.Greater(t, p.X, float32(-w/2-20), p.String())
		require.Less(t, p.Y, float32(h/2+20), p.String())
		require.Greater(t, p.Y, float32(-h/2-20), p.String())
	}
}

func TestRemoveBody(t *testing.T) {
	s, _, h := newScene(t, nil)
	b, err := s.AddBody(geometry.NewRectangle(geometry.Vec(0, 0), 4, 4), geometry.Vector2d{}, 0)
	require.NoError(t, err)
	require.Equal(t, 1, h.Arena().Len())

	require.NoError(t, s.RemoveBody(b))
	require.Empty(t, s.Bodies())
	require.Empty(t, h.Objects())
	require.Equal(t, 0, h.Arena().Len())
	require.ErrorIs(t, s.RemoveBody(b), collision.ErrObjectNotFound)
}

func TestSnapshot(t *testing.T) {
	s, _, _ := newScene(t, level.WalledArena(100, 100, 10, 4))
	_, err := s.AddBody(geometry.NewRectangle(geometry.Vec(3, 4), 2, 2), geometry.Vector2d{}, 0)
	require.NoError(t, err)

	shapes := s.Snapshot()
	require.Len(t, shapes, 5)
	for _, sh := range shapes[:4] {
		require.True(t, sh.Static)
		require.Equal(t, int32(4), sh.Type)
	}
	body := shapes[4]
	require.False(t, body.Static)
	require.Equal(t, int32(BodyType), body.Type)
	require.NotZero(t, body.ID)
	require.Equal(t, geometry.Vec(2, 3), body.Vertices[0])
}
