package transform

import "errors"

// ErrNoTargetType marks a rule that reports no declared classification:
// a contract violation by the service, not an environmental condition.
var ErrNoTargetType = errors.New("transformer target type must not be empty")

// Transformer is one rewrite rule a service contributes. The declared
// TargetType must match the type of every target the rule addresses; the
// launcher rejects rules that disagree before they reach the store.
type Transformer interface {
	// Name identifies the rule in diagnostics.
	Name() string

	// TargetType is the rule's declared classification. Returning the empty
	// value is a contract violation.
	TargetType() TargetType

	// Targets lists the concrete elements this rule applies to. An empty
	// slice is a valid no-op contribution.
	Targets() []Target

	// Transform rewrites the element's bytes. Invoked by the application
	// phase, never during registration.
	Transform(input []byte) ([]byte, error)
}
