// Package render serializes an in-memory host tree to HTML.
//
// The live server uses it to ship the current document to browsers after
// every commit and the CLI uses it to print a render. Elements with event
// listeners are tagged with a data-vid attribute carrying their memdom node
// id so that a client can route events back to the right node.
package render
