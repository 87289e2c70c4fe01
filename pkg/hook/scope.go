package hook

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	verrors "github.com/viridian-dev/viridian/internal/errors"
	"github.com/viridian-dev/viridian/pkg/equal"
)

// Options configures a Scope.
type Options struct {
	// Lenient downgrades hook order violations to warnings. The offending
	// slot starts fresh instead of failing the render.
	Lenient bool

	// Rerender is invoked after a state setter queued an action.
	Rerender func()

	// Logger receives invalid-deps errors and lenient order warnings.
	Logger *slog.Logger

	// Component names the evaluating component in log output.
	Component string
}

// Scope is the hook context of one component evaluation.
type Scope struct {
	prev    []*Record
	next    []*Record
	cursor  int
	mounted bool
	done    bool
	err     error
	opts    Options
}

// NewScope creates a scope for a component whose previous committed
// records are prev. mounted reports whether the component had a previous
// evaluation at all; only then are kind and count checked.
func NewScope(prev []*Record, mounted bool, opts Options) *Scope {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scope{
		prev:    prev,
		next:    make([]*Record, 0, len(prev)),
		mounted: mounted,
		opts:    opts,
	}
}

// Finish closes the scope and returns the records to store on the fiber.
// Any hook called afterwards panics. The error is non-nil in strict mode
// when the hook sequence differs from the previous render.
func (s *Scope) Finish() ([]*Record, error) {
	if s == nil {
		panic(verrors.New("E100").WithOp("Finish"))
	}
	if s.done {
		return s.next, s.err
	}
	s.done = true
	if s.mounted && s.cursor < len(s.prev) {
		s.violation(fmt.Sprintf("expected %d hooks, got %d", len(s.prev), s.cursor))
	}
	return s.next, s.err
}

// Len returns the number of hooks called so far.
func (s *Scope) Len() int {
	return s.cursor
}

func (s *Scope) enter(op string) {
	if s == nil || s.done {
		panic(verrors.New("E100").WithOp(op))
	}
}

// slot advances the cursor and returns the previous record for this
// position, or nil when the position is new or invalid.
func (s *Scope) slot(k Kind) *Record {
	s.enter(k.String())
	i := s.cursor
	s.cursor++

	if i >= len(s.prev) {
		if s.mounted {
			s.violation(fmt.Sprintf("extra %s hook at index %d", k, i))
		}
		return nil
	}
	prev := s.prev[i]
	if prev == nil || prev.Kind != k {
		got := "none"
		if prev != nil {
			got = prev.Kind.String()
		}
		s.violation(fmt.Sprintf("index %d: expected %s, got %s", i, got, k))
		return nil
	}
	return prev
}

func (s *Scope) push(r *Record) {
	s.next = append(s.next, r)
}

func (s *Scope) violation(detail string) {
	if s.opts.Lenient {
		s.opts.Logger.Warn("hook order changed",
			"component", s.opts.Component,
			"detail", detail)
		return
	}
	if s.err == nil {
		s.err = verrors.New("E103").WithDetail(detail).WithOp(s.opts.Component)
	}
}

// checkDeps validates a dependency list and reports whether the previous
// record's list matches it.
func (s *Scope) checkDeps(op string, prev *Record, deps []any) (ok bool, changed bool) {
	if deps == nil {
		s.opts.Logger.Error("invalid dependency list",
			"component", s.opts.Component,
			"hook", op,
			"error", errors.Wrapf(ErrInvalidDeps, "%s at index %d", op, s.cursor-1))
		return false, true
	}
	if prev == nil || !prev.depsOK {
		return true, true
	}
	return true, !equal.Deps(prev.Deps, deps)
}
