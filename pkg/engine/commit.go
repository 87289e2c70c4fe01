package engine

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/viridian-dev/viridian/pkg/fiber"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

// commitRoot applies the finished work-in-progress tree to the host in one
// step and makes it current. On a host error the walk stops where it is:
// mutations already applied stay, the current tree is kept and the pass
// fails.
func (e *Engine) commitRoot() {
	p := e.pass
	start := time.Now()

	ctx := p.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	_, span := e.tracer.Start(ctx, "viridian.commit")
	defer span.End()

	stats := CommitStats{
		Pass:    p.id,
		Trigger: p.trigger,
		Units:   p.units,
		Fibers:  e.wip.Len(),
	}

	err := e.commitDeletions(&stats)
	if err == nil {
		err = e.commitTree(&stats)
	}
	if err != nil {
		span.RecordError(err)
		e.abort(err, "commit")
		return
	}

	e.current = e.wip
	e.wip = nil
	e.next = fiber.NoID
	e.deletions = nil

	stats.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("viridian.placed", stats.Placed),
		attribute.Int("viridian.updated", stats.Updated),
		attribute.Int("viridian.deleted", stats.Deleted),
		attribute.Int("viridian.host_ops", stats.HostOps),
	)
	e.metrics.committed(stats)
	e.logger.Debug("render pass committed",
		"pass", stats.Pass,
		"units", stats.Units,
		"placed", stats.Placed,
		"updated", stats.Updated,
		"deleted", stats.Deleted,
		"host_ops", stats.HostOps,
		"duration", stats.Duration)
	e.finishPass(p, nil, "")

	for _, fn := range e.observers {
		fn(stats)
	}
	if e.dirty {
		e.dirty = false
		e.rerender()
	}
}

// commitDeletions detaches the host nodes of every fiber scheduled for
// deletion. Deleted fibers belong to the current tree; a function fiber
// has no node of its own, so each top-most host node beneath it is removed.
func (e *Engine) commitDeletions(stats *CommitStats) error {
	old := e.current
	for _, id := range e.deletions {
		if f := old.Get(id); f == nil || f.Effect != fiber.EffectDelete {
			return errors.AssertionFailedf("fiber %d on deletions list is not tagged %s", id, fiber.EffectDelete)
		}
		parent := old.HostParent(id)
		if parent == nil {
			continue
		}
		for _, n := range old.TopHostNodes(id) {
			if err := e.host.RemoveChild(parent.Node, n); err != nil {
				return hostErr("removeChild", err)
			}
			stats.HostOps++
		}
		stats.Deleted++
	}
	return nil
}

// commitTree walks the work-in-progress tree in pre-order and applies each
// fiber's effect. New nodes are appended to their nearest host ancestor.
func (e *Engine) commitTree(stats *CommitStats) error {
	tree := e.wip
	tree.Root().Alternate = fiber.NoRef

	for id := tree.Next(fiber.RootID); id.Valid(); id = tree.Next(id) {
		f := tree.Get(id)
		switch f.Effect {
		case fiber.EffectPlace:
			if f.HasNode() {
				parent := tree.HostParent(id)
				if parent == nil {
					return errors.AssertionFailedf("fiber %d has no host ancestor", id)
				}
				if err := e.host.AppendChild(parent.Node, f.Node); err != nil {
					return hostErr("appendChild", err)
				}
				stats.HostOps++
			}
			stats.Placed++

		case fiber.EffectUpdate:
			if f.HasNode() {
				var prev vdom.Props
				if alt := e.current.Resolve(f.Alternate); alt != nil {
					prev = alt.Props
				}
				n, err := applyProps(e.host, f.Node, prev, f.Props)
				stats.HostOps += n
				if err != nil {
					return err
				}
			}
			stats.Updated++
		}
		f.Alternate = fiber.NoRef
	}
	return nil
}
