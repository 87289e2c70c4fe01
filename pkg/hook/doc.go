// Package hook implements positional hook storage for function components.
//
// A Scope is created for every evaluation of a function component. It is
// seeded with the records the component produced the last time it was
// committed and hands each hook call the record at the same position:
//
//	func Counter(s *hook.Scope, props vdom.Props) any {
//	    count, setCount := hook.State(s, 0)
//	    hook.Effect(s, func() { log.Println("count", count) }, []any{count})
//	    return vdom.Button(vdom.OnClick(func(host.Event) {
//	        setCount(func(n int) int { return n + 1 })
//	    }), count)
//	}
//
// Records are matched by call index only. Calling hooks conditionally binds
// state to the wrong call; the scope detects changes in hook kind or count
// and reports them as ErrHookOrder, but two hooks of the same kind that swap
// places go unnoticed.
package hook
