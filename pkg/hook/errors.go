package hook

import (
	verrors "github.com/viridian-dev/viridian/internal/errors"
)

var (
	// ErrHookContext is raised (as a panic) when a hook runs without an
	// evaluating component.
	ErrHookContext = verrors.New("E100")

	// ErrInvalidDeps is logged when a dependency list is nil.
	ErrInvalidDeps = verrors.New("E101")

	// ErrHookOrder is returned by Scope.Finish when hook kinds or count
	// changed since the previous render.
	ErrHookOrder = verrors.New("E103")
)
