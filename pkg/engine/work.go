package engine

import (
	"github.com/cockroachdb/errors"

	verrors "github.com/viridian-dev/viridian/internal/errors"
	"github.com/viridian-dev/viridian/pkg/fiber"
	"github.com/viridian-dev/viridian/pkg/hook"
	"github.com/viridian-dev/viridian/pkg/host"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

// performUnit builds fiber id of tree and returns the next unit.
func (e *Engine) performUnit(tree *fiber.Tree, id fiber.ID) (fiber.ID, error) {
	f := tree.Get(id)
	if f == nil {
		return fiber.NoID, errors.AssertionFailedf("unit %d not in generation %d", id, tree.Gen())
	}

	var err error
	if f.IsFunc() {
		err = e.updateFunc(tree, id, f)
	} else {
		err = e.updateHost(tree, id, f)
	}
	if err != nil {
		return fiber.NoID, err
	}
	return tree.Next(id), nil
}

// updateFunc evaluates a function component with the hooks of its
// committed counterpart and reconciles what it returned.
func (e *Engine) updateFunc(tree *fiber.Tree, id fiber.ID, f *fiber.Fiber) error {
	var prev []*hook.Record
	alt := e.current.Resolve(f.Alternate)
	if alt != nil {
		prev = alt.Hooks
	}

	name := f.Type.String()
	scope := hook.NewScope(prev, alt != nil, hook.Options{
		Lenient:   e.lenient,
		Rerender:  e.rerender,
		Logger:    e.logger,
		Component: name,
	})

	e.scope = scope
	out, err := callComponent(f, scope)
	e.scope = nil

	recs, orderErr := scope.Finish()
	f.Hooks = recs
	if err != nil {
		return err
	}
	if orderErr != nil {
		return orderErr
	}

	children, err := vdom.Normalize(out)
	if err != nil {
		return errors.Wrapf(err, "component %s", name)
	}
	return e.reconcileChildren(tree, id, children)
}

// callComponent invokes the render function, converting a panic into an
// ErrComponentPanic error.
func callComponent(f *fiber.Fiber, s *hook.Scope) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = errors.Newf("%v", r)
			}
			err = verrors.New("E104").WithOp(f.Type.String()).Wrap(cause)
		}
	}()
	return f.Type.Component.Render(s, f.Props), nil
}

// updateHost creates the fiber's host node if it has none yet and
// reconciles its children. The root fiber already holds its container.
func (e *Engine) updateHost(tree *fiber.Tree, id fiber.ID, f *fiber.Fiber) error {
	if !f.HasNode() {
		n, err := e.createNode(f)
		if err != nil {
			return err
		}
		f.Node = n
	}
	return e.reconcileChildren(tree, id, f.Props.Children)
}

// createNode creates a detached host node with f's properties applied.
func (e *Engine) createNode(f *fiber.Fiber) (host.Node, error) {
	var (
		n   host.Node
		err error
		op  string
	)
	switch f.Type.Kind {
	case vdom.KindText:
		op = "createTextNode"
		n, err = e.host.CreateTextNode("")
	case vdom.KindHost:
		op = "createElement"
		n, err = e.host.CreateElement(f.Type.Tag)
	default:
		return nil, errors.AssertionFailedf("cannot create a host node for %s", f.Type.Kind)
	}
	if err != nil {
		return nil, hostErr(op, err)
	}
	if _, err := applyProps(e.host, n, vdom.Props{}, f.Props); err != nil {
		return nil, err
	}
	return n, nil
}

func hostErr(op string, err error) error {
	return verrors.New("E102").WithOp(op).Wrap(err)
}
