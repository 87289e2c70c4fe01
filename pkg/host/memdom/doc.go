// Package memdom is an in-memory host tree.
//
// A Document owns a tree of element and text nodes and implements host.Host,
// so the engine can render into it exactly as it would into a browser DOM.
// It is what the CLI, the dev server and most tests render into.
//
// Document methods are safe for concurrent use. Listeners are invoked
// without the document lock held, so a listener may mutate the tree.
package memdom
