// Package resolve provides [argument.Tokenizer]s
// which resolve candidate values from various sources.
package resolve

import (
	"fmt"

	"github.com/djdv/go-arguments/internal/argument"
	"github.com/djdv/go-arguments/internal/generic"
)

// Chain queries each of its tokenizers in order.
// If more than one supplies a value for a property,
// the value from the earliest tokenizer is used.
type Chain []argument.Tokenizer

const (
	// ErrUnexpectedArgument is returned for arguments
	// that don't refer to any property.
	ErrUnexpectedArgument = generic.ConstError("unexpected argument")
	// ErrDuplicateArgument is returned when a property
	// is provided more than once within the same source.
	ErrDuplicateArgument = generic.ConstError("argument provided multiple times")
	// ErrMissingValue is returned when a named argument has no value.
	ErrMissingValue = generic.ConstError("argument is missing a value")
)

func (chain Chain) Tokenize(arguments []string, properties []*argument.Descriptor) (argument.Candidates, error) {
	merged := make(argument.Candidates, len(properties))
	for _, tokenizer := range chain {
		candidates, err := tokenizer.Tokenize(arguments, properties)
		if err != nil {
			return nil, err
		}
		for name, value := range candidates {
			if _, supplied := merged[name]; !supplied {
				merged[name] = value
			}
		}
	}
	return merged, nil
}

func addCandidate(candidates argument.Candidates, desc *argument.Descriptor, value string) error {
	if previous, exists := candidates[desc.Name]; exists {
		return fmt.Errorf("%w: `%s`"+
			"\n\tgot: %q"+
			"\n\thave: %q",
			ErrDuplicateArgument, desc.Name,
			value, previous,
		)
	}
	candidates[desc.Name] = value
	return nil
}
