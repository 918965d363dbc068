package collision

import (
	"fmt"
	"sync/atomic"
)

// Type is an opaque classification tag chosen by the game.
type Type int32

// ObjectID identifies a collision object for its whole lifetime.
type ObjectID uint64

// Callback receives collision events for the object it is attached to.
type Callback func(Event)

// Collider is the read-only view of the other participant in an Event.
type Collider interface {
	Type() Type
	UserData() any
	Static() bool
}

var objectIDs atomic.Uint64

// Object pairs a borrowed polygon handle with a type tag, an optional
// callback and opaque user data.
type Object struct {
	id       ObjectID
	polygon  PolygonHandle
	typ      Type
	callback Callback
	userdata any
}

var _ Collider = (*Object)(nil)

// ObjectOption configures an Object at creation.
type ObjectOption func(*Object)

func WithCallback(cb Callback) ObjectOption {
	return func(o *Object) { o.callback = cb }
}

func WithUserData(data any) ObjectOption {
	return func(o *Object) { o.userdata = data }
}

// NewObject creates an unregistered object for the polygon behind handle.
func NewObject(handle PolygonHandle, typ Type, opts ...ObjectOption) *Object {
	o := &Object{
		id:      ObjectID(objectIDs.Add(1)),
		polygon: handle,
		typ:     typ,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Object) ID() ObjectID                 { return o.id }
func (o *Object) PolygonHandle() PolygonHandle { return o.polygon }
func (o *Object) Type() Type                   { return o.typ }
func (o *Object) UserData() any                { return o.userdata }
func (o *Object) Static() bool                 { return false }
func (o *Object) HasCallback() bool            { return o.callback != nil }

func (o *Object) String() string {
	return fmt.Sprintf("Object{id=%d type=%d polygon=%d}", o.id, o.typ, o.polygon)
}

func (o *Object) notify(ev Event) {
	if o.callback != nil {
		o.callback(ev)
	}
}
