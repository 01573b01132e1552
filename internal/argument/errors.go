package argument

import (
	"strconv"
	"strings"

	"github.com/djdv/go-arguments/internal/generic"
)

const (
	// ErrMissingRequired is returned when a required property
	// did not receive a candidate value.
	ErrMissingRequired = generic.ConstError("missing required argument")
	// ErrRevival is returned when a candidate value
	// could not be converted into the property's type.
	ErrRevival = generic.ConstError("malformed argument value")
	// ErrHook is returned when a hook's callback returns an error.
	ErrHook = generic.ConstError("argument hook failed")
	// ErrUnexpectedType is returned when the population target
	// doesn't match the metadata it's populated with.
	ErrUnexpectedType = generic.ConstError("unexpected type")
	// ErrNoTokenizer is returned by [Engine.Bind]
	// if the engine was constructed without a [Tokenizer].
	ErrNoTokenizer = generic.ConstError("engine has no tokenizer")
)

// PropertyError is returned when a population pass fails.
// It may be matched against both its Kind and its cause via [errors.Is].
type PropertyError struct {
	// Property is the name of the offending property.
	// It is empty for failures of class-scoped hooks.
	Property string
	// Value is the candidate value of the property, if any.
	Value string
	// Kind is one of the package's sentinel errors.
	Kind error
	// Stage is set when Kind is [ErrHook].
	Stage Stage
	Err   error
}

func (pe *PropertyError) Error() string {
	var sb strings.Builder
	if pe.Property != "" {
		sb.WriteString("argument `" + pe.Property + "`: ")
	}
	sb.WriteString(pe.Kind.Error())
	if pe.Kind == ErrRevival {
		sb.WriteString(" " + strconv.Quote(pe.Value))
	}
	if pe.Stage != 0 {
		sb.WriteString(" (" + pe.Stage.String() + ")")
	}
	if pe.Err != nil {
		sb.WriteString(": " + pe.Err.Error())
	}
	return sb.String()
}

func (pe *PropertyError) Unwrap() []error {
	if pe.Err == nil {
		return []error{pe.Kind}
	}
	return []error{pe.Kind, pe.Err}
}
