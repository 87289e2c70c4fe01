package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// Runtime (E100-E149)

	"E100": {
		Category:   CategoryRuntime,
		Message:    "Hook called outside component evaluation",
		Detail:     "Hooks read and write the evaluating fiber's hook list. Calling one after the component returned, or with no component being evaluated, would mutate state that belongs to nobody.",
		Suggestion: "Call hooks at the top level of a component's render function, never from event handlers or goroutines.",
	},
	"E101": {
		Category:   CategoryRuntime,
		Message:    "Invalid dependency list",
		Detail:     "The dependency argument of Effect, Memo or Callback must be a slice. A nil list cannot be compared, so the hook recomputes on every render.",
		Suggestion: "Pass []any{} to run once, or list every value the computation reads.",
	},
	"E103": {
		Category:   CategoryRuntime,
		Message:    "Hook order changed between renders",
		Detail:     "Hooks are matched to their previous state by call position. A different number or kind of hook calls binds state to the wrong hook.",
		Suggestion: "Do not call hooks inside conditions or loops whose shape changes between renders.",
	},
	"E104": {
		Category:   CategoryRuntime,
		Message:    "Component panicked during render",
		Detail:     "The render pass was aborted before commit; the host tree still shows the previous render.",
	},
	"E105": {
		Category: CategoryRuntime,
		Message:  "Render pass superseded",
		Detail:   "A newer render or state update replaced this pass before it committed. Nothing from it reached the host tree.",
	},

	// Host (E150-E199)

	"E102": {
		Category:   CategoryHost,
		Message:    "Host operation failed",
		Detail:     "A host-tree mutation returned an error. Mutations applied before the failure are not rolled back.",
		Suggestion: "Check the host implementation; a retry re-renders against the last committed tree.",
	},
	"E150": {
		Category: CategoryHost,
		Message:  "Unknown host node",
		Detail:   "The host received a node it did not create.",
	},
	"E151": {
		Category: CategoryHost,
		Message:  "Node is not a child of the given parent",
	},

	// Config (E200-E249)

	"E200": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Suggestion: "Run `viridian render --config <file>` to see the resolved values.",
	},
	"E201": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be read",
	},

	// CLI (E250-E299)

	"E250": {
		Category: CategoryCLI,
		Message:  "Unknown demo application",
	},
}

// Codes returns every registered code in ascending order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
