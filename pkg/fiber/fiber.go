// Package fiber holds the fiber trees the engine builds and commits.
//
// Fibers live in a per-generation arena (Tree) and link to each other by
// index. A committed tree and the tree being built are two generations; a
// fiber reaches its counterpart in the other generation through a Ref that
// only resolves while that generation is still current, so nothing keeps an
// abandoned tree reachable.
package fiber

import (
	"github.com/viridian-dev/viridian/pkg/hook"
	"github.com/viridian-dev/viridian/pkg/host"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

// ID indexes a fiber within its tree.
type ID int32

// NoID is the absent link.
const NoID ID = -1

// RootID is the index of every tree's root fiber.
const RootID ID = 0

// Valid reports whether id refers to a fiber.
func (id ID) Valid() bool { return id >= 0 }

// Effect is the pending host mutation recorded on a fiber.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectPlace
	EffectUpdate
	EffectDelete
)

// String returns the effect's name.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectPlace:
		return "place"
	case EffectUpdate:
		return "update"
	case EffectDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Ref points at a fiber of a specific generation.
type Ref struct {
	Gen uint64
	ID  ID
}

// NoRef is the empty reference.
var NoRef = Ref{ID: NoID}

// Valid reports whether the reference names a fiber.
func (r Ref) Valid() bool { return r.ID.Valid() }

// Fiber is one unit of work and one node of a fiber tree.
type Fiber struct {
	Type  vdom.Type
	Props vdom.Props

	// Node is the host node: the container for the root, the created node
	// for host and text fibers, nil for function fibers.
	Node host.Node

	Parent  ID
	Child   ID
	Sibling ID

	Alternate Ref
	Effect    Effect
	Hooks     []*hook.Record
}

// IsFunc reports whether the fiber is a function component.
func (f *Fiber) IsFunc() bool { return f.Type.Kind == vdom.KindFunc }

// HasNode reports whether the fiber owns a host node.
func (f *Fiber) HasNode() bool { return f.Node != nil }
