package enhance

import "context"

// Kind selects which prompt the enhancement uses.
type Kind string

const (
	KindSummary     Kind = "summary"
	KindDescription Kind = "description"
)

// Valid reports whether k is a known enhancement kind.
func (k Kind) Valid() bool {
	return k == KindSummary || k == KindDescription
}

// Client produces an improved version of the given text.
type Client interface {
	Enhance(ctx context.Context, kind Kind, text string) (string, error)
}
