package collision

import "github.com/zeusync/collision/internal/core/geometry"

// PolygonHandle identifies a polygon stored in an Arena. Handles are never
// reused, so a handle that outlives its polygon fails lookup.
type PolygonHandle uint64

// InvalidHandle is never returned by Insert.
const InvalidHandle PolygonHandle = 0

// Arena maps stable handles to borrowed polygons. The arena does not own
// the polygons: the entity that inserted a polygon keeps mutating it in
// place and must Remove it before discarding it.
type Arena struct {
	next     PolygonHandle
	polygons map[PolygonHandle]*geometry.Polygon
}

func NewArena() *Arena {
	return &Arena{polygons: make(map[PolygonHandle]*geometry.Polygon)}
}

// Insert stores p and returns its handle. A nil polygon yields InvalidHandle.
func (a *Arena) Insert(p *geometry.Polygon) PolygonHandle {
	if p == nil {
		return InvalidHandle
	}
	a.next++
	a.polygons[a.next] = p
	return a.next
}

// Lookup returns the polygon behind h.
func (a *Arena) Lookup(h PolygonHandle) (*geometry.Polygon, bool) {
	p, ok := a.polygons[h]
	return p, ok
}

// Remove drops h. It reports whether the handle was live.
func (a *Arena) Remove(h PolygonHandle) bool {
	if _, ok := a.polygons[h]; !ok {
		return false
	}
	delete(a.polygons, h)
	return true
}

func (a *Arena) Len() int { return len(a.polygons) }
