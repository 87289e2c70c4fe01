package engine

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	verrors "github.com/viridian-dev/viridian/internal/errors"
	"github.com/viridian-dev/viridian/pkg/fiber"
	"github.com/viridian-dev/viridian/pkg/hook"
	"github.com/viridian-dev/viridian/pkg/host"
	"github.com/viridian-dev/viridian/pkg/idle"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

var (
	// ErrHostOperation marks a failed host mutation.
	ErrHostOperation = verrors.New("E102")

	// ErrComponentPanic marks a component that panicked while rendering.
	ErrComponentPanic = verrors.New("E104")

	// ErrSuperseded finishes a pass replaced by a newer one before commit.
	ErrSuperseded = verrors.New("E105")
)

// CommitStats describes one commit.
type CommitStats struct {
	Pass     uint64
	Trigger  string
	Units    int
	Fibers   int
	Placed   int
	Updated  int
	Deleted  int
	HostOps  int
	Duration time.Duration
}

// Engine is the incremental renderer. See the package documentation.
type Engine struct {
	host  host.Host
	sched idle.Scheduler

	logger         *slog.Logger
	yieldThreshold time.Duration
	lenient        bool
	metrics        *metrics
	tracer         trace.Tracer

	gen       uint64
	passes    uint64
	current   *fiber.Tree
	wip       *fiber.Tree
	next      fiber.ID
	deletions []fiber.ID
	scope     *hook.Scope
	pass      *Pass
	observers []func(CommitStats)

	// dirty records a state update that arrived before anything was
	// committed; it is replayed right after the first commit.
	dirty bool
}

// New creates an engine rendering into h and registers its work loop with
// sched.
func New(h host.Host, sched idle.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		host:           h,
		sched:          sched,
		logger:         slog.Default(),
		yieldThreshold: DefaultYieldThreshold,
		tracer:         otel.Tracer("viridian"),
		next:           fiber.NoID,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.arm()
	return e
}

// Render schedules a pass that renders el into container. The previous
// committed tree, if any, is the baseline for reconciliation. A pass still
// in progress is superseded.
func (e *Engine) Render(el *vdom.Element, container host.Node) *Pass {
	var children []*vdom.Element
	if el != nil {
		children = []*vdom.Element{el}
	}
	alt := fiber.NoRef
	if e.current != nil {
		alt = e.current.Ref(fiber.RootID)
	}
	return e.begin(TriggerRender, container, children, alt)
}

// rerender restarts rendering from the committed root. It is the Rerender
// callback of every hook scope.
func (e *Engine) rerender() {
	if e.current == nil {
		e.dirty = true
		return
	}
	root := e.current.Root()
	e.begin(TriggerState, root.Node, root.Props.Children, e.current.Ref(fiber.RootID))
}

func (e *Engine) begin(trigger string, container host.Node, children []*vdom.Element, alt fiber.Ref) *Pass {
	if e.pass != nil && !e.pass.Finished() {
		e.finishPass(e.pass, verrors.New("E105").WithOp(e.pass.trigger), "superseded")
	}

	e.gen++
	e.passes++
	e.wip = fiber.NewTree(e.gen, container, children, alt)
	e.next = fiber.RootID
	e.dropDeletions()

	p := newPass(e.passes, trigger)
	p.ctx, p.span = e.tracer.Start(context.Background(), "viridian.render",
		trace.WithAttributes(
			attribute.Int64("viridian.pass", int64(p.id)),
			attribute.String("viridian.trigger", trigger),
		))
	e.pass = p
	e.metrics.passStarted(trigger)
	e.logger.Debug("render pass started", "pass", p.id, "trigger", trigger)
	return p
}

// Flush performs all pending work synchronously, ignoring idle deadlines,
// and returns the result of the latest pass.
func (e *Engine) Flush() error {
	for e.wip != nil {
		e.run(idle.Unbounded{})
	}
	if e.pass == nil {
		return nil
	}
	return e.pass.Err()
}

// OnCommit registers fn to run after every successful commit.
func (e *Engine) OnCommit(fn func(CommitStats)) {
	e.observers = append(e.observers, fn)
}

// Current returns the committed fiber tree, or nil before the first commit.
func (e *Engine) Current() *fiber.Tree { return e.current }

// Pending reports whether a pass is in progress.
func (e *Engine) Pending() bool { return e.wip != nil }

// Pass returns the latest pass, or nil.
func (e *Engine) Pass() *Pass { return e.pass }

// ActiveScope returns the hook scope of the component being evaluated, or
// nil outside component evaluation.
func (e *Engine) ActiveScope() *hook.Scope { return e.scope }

// Host returns the host the engine renders into.
func (e *Engine) Host() host.Host { return e.host }

func (e *Engine) arm() {
	e.sched.RequestIdleCallback(e.workLoop)
}

// workLoop is the idle callback. It always re-registers itself.
func (e *Engine) workLoop(d idle.Deadline) {
	defer e.arm()
	e.run(d)
}

// run performs units until none remain or d drops below the yield
// threshold, then commits a finished tree. At least one unit runs per
// call; the deadline is only consulted between units.
func (e *Engine) run(d idle.Deadline) {
	yield := false
	for e.next.Valid() && !yield {
		e.step()
		yield = d.TimeRemaining() < e.yieldThreshold
	}
	if e.next.Valid() {
		e.metrics.yield()
		return
	}
	if e.wip != nil {
		e.commitRoot()
	}
}

// step performs the next unit of work.
func (e *Engine) step() {
	tree, id := e.wip, e.next
	next, err := e.performUnit(tree, id)
	if tree != e.wip {
		// The unit started a new pass; the abandoned walk does not continue.
		return
	}
	if err != nil {
		e.abort(err, "error")
		return
	}
	e.pass.units++
	e.metrics.unit()
	e.next = next
}

// abort drops the work-in-progress tree. The current tree and the host are
// left as they were at the last commit.
func (e *Engine) abort(err error, reason string) {
	p := e.pass
	e.wip = nil
	e.next = fiber.NoID
	e.dropDeletions()
	e.logger.Error("render pass aborted", "pass", p.id, "reason", reason, "error", err)
	e.finishPass(p, err, reason)
}

// dropDeletions forgets the deletions of an uncommitted pass and clears
// their DELETE tags on the committed tree.
func (e *Engine) dropDeletions() {
	for _, id := range e.deletions {
		if f := e.current.Get(id); f != nil && f.Effect == fiber.EffectDelete {
			f.Effect = fiber.EffectNone
		}
	}
	e.deletions = nil
}

func (e *Engine) finishPass(p *Pass, err error, reason string) {
	if err != nil {
		e.metrics.passAborted(reason)
		if p.span != nil {
			p.span.RecordError(err)
			p.span.SetStatus(codes.Error, reason)
		}
		if reason == "superseded" {
			e.logger.Debug("render pass superseded", "pass", p.id)
		}
	}
	if p.span != nil {
		p.span.SetAttributes(attribute.Int("viridian.units", p.units))
		p.span.End()
	}
	p.finish(err)
}
