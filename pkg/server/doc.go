// Package server serves a live view of an engine's host tree.
//
// The server owns nothing the engine touches. Every read or mutation of the
// document runs on the idle loop goroutine through idle.Loop.Do, so HTTP
// handlers never race the work loop or the committer.
//
// # Routes
//
//   - GET  /                      full page with the current body
//   - POST /events/{vid}/{event}  dispatch an event to the node with id vid
//   - GET  /ws                    body HTML pushed after every commit
//   - GET  /metrics               Prometheus metrics, when enabled
//
// # Example Usage
//
//	loop := idle.NewLoop(idle.LoopConfig{})
//	doc := memdom.NewDocument()
//	eng := engine.New(doc, loop)
//	srv := server.New(server.Config{Addr: ":3000"}, loop, doc, eng)
//	_ = loop.Submit(func() { eng.Render(demo.Counter.El(), doc.Body()) })
//	err := srv.Run(ctx)
package server
