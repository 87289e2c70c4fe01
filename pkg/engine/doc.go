// Package engine renders element trees into a host tree incrementally.
//
// An Engine owns two fiber trees: the current tree, which mirrors what the
// host shows, and a work-in-progress tree built one fiber at a time from
// idle callbacks. Building a fiber evaluates its component (or creates its
// host node) and reconciles its children against the current tree by
// position. When the work-in-progress tree is complete it is committed in
// one uninterruptible step: removals first, then insertions and property
// updates in tree order. The committed tree becomes current.
//
// An Engine is not safe for concurrent use. Drive it from the goroutine
// that runs its idle.Scheduler, for example an idle.Loop:
//
//	loop := idle.NewLoop(idle.LoopConfig{})
//	eng := engine.New(doc, loop, engine.WithLogger(logger))
//	loop.Submit(func() { eng.Render(app, doc.Body()) })
//	go loop.Run(ctx)
package engine
