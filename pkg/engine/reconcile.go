package engine

import (
	"github.com/cockroachdb/errors"

	"github.com/viridian-dev/viridian/pkg/fiber"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

// reconcileChildren builds the children of fiber parentID by walking the
// new elements and the committed children in lockstep by position.
//
// At each position a committed fiber of the same type is reused (UPDATE:
// its host node carries over). Otherwise a new element becomes a fresh
// fiber (PLACE) and the committed fiber, if any, is scheduled for DELETE.
// A nil element is a hole: it produces no fiber but still consumes the
// committed fiber at its position.
func (e *Engine) reconcileChildren(tree *fiber.Tree, parentID fiber.ID, elements []*vdom.Element) error {
	parent := tree.Get(parentID)
	if parent == nil {
		return errors.AssertionFailedf("reconcile: no fiber %d", parentID)
	}
	oldID := fiber.NoID
	if alt := e.current.Resolve(parent.Alternate); alt != nil {
		oldID = alt.Child
	}

	prev := fiber.NoID
	for i := 0; i < len(elements) || oldID.Valid(); i++ {
		var el *vdom.Element
		if i < len(elements) {
			el = elements[i]
		}
		old := e.current.Get(oldID)
		same := old != nil && el != nil && old.Type == el.Type

		newID := fiber.NoID
		switch {
		case same:
			newID = tree.Add(&fiber.Fiber{
				Type:      old.Type,
				Props:     el.Props,
				Node:      old.Node,
				Alternate: e.current.Ref(oldID),
				Effect:    fiber.EffectUpdate,
			}, parentID)
		case el != nil:
			newID = tree.Add(&fiber.Fiber{
				Type:      el.Type,
				Props:     el.Props,
				Alternate: fiber.NoRef,
				Effect:    fiber.EffectPlace,
			}, parentID)
		}
		if old != nil && !same {
			old.Effect = fiber.EffectDelete
			e.deletions = append(e.deletions, oldID)
		}
		if old != nil {
			oldID = old.Sibling
		} else {
			oldID = fiber.NoID
		}

		if newID.Valid() {
			if prev.Valid() {
				tree.Get(prev).Sibling = newID
			} else {
				parent.Child = newID
			}
			prev = newID
		}
	}
	return nil
}
