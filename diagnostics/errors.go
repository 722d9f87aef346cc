package diagnostics

import "errors"

// Sentinel errors returned by packages that consult a finished ErrorReport
// (primarily runtime.Emit). Wrap these with fmt.Errorf("...: %w", ...) to
// add context; callers should compare with errors.Is.
var (
	// ErrViolationsPresent is returned by runtime.Emit when the ErrorReport
	// it was handed is non-empty: the graph still has unmet requirements
	// and must not be translated into runtime calls.
	ErrViolationsPresent = errors.New("diagnostics: graph has unresolved requirement violations")

	// ErrUnsupportedTensorRequirement marks a violation whose Requirement
	// names a rank or shape the fixer has no coercion for (e.g. a Tensor
	// demanded where only a 2-D matrix type is representable).
	ErrUnsupportedTensorRequirement = errors.New("diagnostics: requirement is not representable as a matrix type")

	// ErrUnsupportedNodeType marks an attempt to emit a node the runtime
	// glue does not know how to handle: an unknown node kind, an
	// analysis-only graph type, or an input with no runtime id.
	ErrUnsupportedNodeType = errors.New("diagnostics: unsupported node type")
)
