package generic

import "fmt"

// OptionFunc is the constraint for functional options
// that modify a settings value of type T.
type OptionFunc[T any] interface {
	~func(*T) error
}

// ErrOptionAlreadySet is returned by options
// which may only be provided once.
const ErrOptionAlreadySet = ConstError("option provided multiple times")

// ApplyOptions calls each option with `settings`,
// returning the first error encountered.
func ApplyOptions[
	OT OptionFunc[T],
	T any,
](settings *T, options ...OT,
) error {
	for _, apply := range options {
		if err := apply(settings); err != nil {
			return err
		}
	}
	return nil
}

// ErrIfOptionWasSet returns an error if `current`
// no longer holds the option's initial value.
func ErrIfOptionWasSet[T comparable](name string, current, initial T) error {
	if current != initial {
		return OptionAlreadySet(name)
	}
	return nil
}

// OptionAlreadySet wraps [ErrOptionAlreadySet] with the option's name.
func OptionAlreadySet(name string) error {
	return fmt.Errorf("%w: %s", ErrOptionAlreadySet, name)
}
