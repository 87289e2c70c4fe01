package hook

// State returns the component's state value and a setter.
//
// On the first evaluation the value is initial. Later evaluations start
// from the previous committed value and apply every action queued since,
// in FIFO order. The setter queues an action and asks for a full
// re-render; it never changes the value returned by the current
// evaluation. The setter is the same function on every evaluation.
func State[T any](s *Scope, initial T) (T, func(func(T) T)) {
	prev := s.slot(KindState)

	rec := &Record{Kind: KindState, Value: initial}
	if prev != nil && prev.cell != nil {
		v, okValue := cast[T](prev.Value)
		_, okSetter := prev.cell.setter.(func(func(T) T))
		if okValue && okSetter {
			var cur any = v
			for _, a := range prev.cell.since(prev.seq) {
				cur = a(cur)
			}
			rec.Value = cur
			rec.cell = prev.cell
			rec.seq = prev.cell.end()
		} else {
			s.violation("State type changed")
		}
	}
	if rec.cell == nil {
		rec.cell = newCell[T](s.opts.Rerender)
	}
	s.push(rec)

	v, _ := cast[T](rec.Value)
	return v, rec.cell.setter.(func(func(T) T))
}

func newCell[T any](rerender func()) *cell {
	c := &cell{}
	c.setter = func(update func(T) T) {
		c.queue = append(c.queue, func(v any) any {
			t, _ := cast[T](v)
			return update(t)
		})
		if rerender != nil {
			rerender()
		}
	}
	return c
}

// Effect runs fn during evaluation when the component is new or when deps
// differ from the previous evaluation's deps. A nil deps list is invalid:
// the error is logged and fn runs every time.
func Effect(s *Scope, fn func(), deps []any) {
	prev := s.slot(KindEffect)
	ok, changed := s.checkDeps("Effect", prev, deps)
	s.push(&Record{Kind: KindEffect, Deps: deps, depsOK: ok})
	if changed {
		fn()
	}
}

// Memo returns compute's result, recomputing only when deps changed.
func Memo[T any](s *Scope, compute func() T, deps []any) T {
	prev := s.slot(KindMemo)
	ok, changed := s.checkDeps("Memo", prev, deps)

	rec := &Record{Kind: KindMemo, Deps: deps, depsOK: ok}
	if !changed {
		if v, isT := cast[T](prev.Value); isT {
			rec.Value = v
			s.push(rec)
			return v
		}
	}
	v := compute()
	rec.Value = v
	s.push(rec)
	return v
}

// Callback returns fn memoized on deps.
func Callback[F any](s *Scope, fn F, deps []any) F {
	return Memo(s, func() F { return fn }, deps)
}

// Ref returns a box that persists across evaluations.
func Ref[T any](s *Scope, initial T) *Box[T] {
	prev := s.slot(KindRef)
	if prev != nil {
		if b, ok := prev.Value.(*Box[T]); ok {
			s.push(&Record{Kind: KindRef, Value: b})
			return b
		}
		s.violation("Ref type changed")
	}
	b := &Box[T]{Current: initial}
	s.push(&Record{Kind: KindRef, Value: b})
	return b
}

// cast converts a stored value back to T. A nil value converts to T's zero
// value, which keeps interface-typed state usable when it holds nil.
func cast[T any](v any) (T, bool) {
	if v == nil {
		var zero T
		return zero, true
	}
	t, ok := v.(T)
	return t, ok
}
