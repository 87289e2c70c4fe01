// Package errors provides structured, coded errors for Viridian.
//
// Every failure kind the renderer can report has a registered code that maps
// to a short message, a longer explanation and a fix suggestion:
//
//   - runtime: hook misuse, component panics, hook order violations
//   - host: host-tree mutation failures during render or commit
//   - config: invalid configuration files
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("E100").
//	    WithDetail("State called after the component returned").
//	    Wrap(cause)
//
//	fmt.Print(err.Format())
//	// ERROR E100: Hook called outside component evaluation
//	//
//	//   Hooks read and write the evaluating fiber's hook list ...
//	//
//	//   Hint: Call hooks at the top level of a component's render function.
//
// Errors created from the same code match each other under errors.Is, so
// callers can test for a kind without holding a sentinel.
package errors
