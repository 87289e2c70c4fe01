package engine

import (
	"github.com/viridian-dev/viridian/pkg/host"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

// applyProps brings node from prev to next and returns the number of host
// mutations made. The order is fixed: stale handlers are removed, vanished
// attributes cleared, new or changed attributes set, and new or changed
// handlers added.
func applyProps(h host.Host, node host.Node, prev, next vdom.Props) (int, error) {
	ops := 0

	for _, ph := range prev.Handlers {
		if next.Handler(ph.Event) == ph.Listener {
			continue
		}
		if err := h.RemoveEventListener(node, ph.Event, ph.Listener); err != nil {
			return ops, hostErr("removeEventListener", err)
		}
		ops++
	}

	for _, pa := range prev.Attrs {
		if _, ok := next.Attr(pa.Key); ok {
			continue
		}
		if err := h.RemoveAttribute(node, pa.Key); err != nil {
			return ops, hostErr("removeAttribute", err)
		}
		ops++
	}
	prevStyle, nextStyle := prev.StyleString(), next.StyleString()
	if prevStyle != "" && nextStyle == "" {
		if err := h.RemoveAttribute(node, "style"); err != nil {
			return ops, hostErr("removeAttribute", err)
		}
		ops++
	}

	for _, na := range next.Attrs {
		if pv, ok := prev.Attr(na.Key); ok && pv == na.Value {
			continue
		}
		if err := h.SetAttribute(node, na.Key, na.Value); err != nil {
			return ops, hostErr("setAttribute", err)
		}
		ops++
	}
	if nextStyle != "" && nextStyle != prevStyle {
		if err := h.SetAttribute(node, "style", nextStyle); err != nil {
			return ops, hostErr("setAttribute", err)
		}
		ops++
	}

	for _, nh := range next.Handlers {
		if prev.Handler(nh.Event) == nh.Listener {
			continue
		}
		if err := h.AddEventListener(node, nh.Event, nh.Listener); err != nil {
			return ops, hostErr("addEventListener", err)
		}
		ops++
	}
	return ops, nil
}
