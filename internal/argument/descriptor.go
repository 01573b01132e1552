package argument

import (
	"reflect"
	"strings"
)

// NoPosition is the [Descriptor.Position] of
// properties that may only be provided by name.
const NoPosition = -1

type (
	// Descriptor describes a single bindable struct field.
	// Descriptors are built once per type by a metadata source
	// and must not be modified afterwards.
	Descriptor struct {
		// Name is the canonical argument name.
		Name string
		// Shortcut is an alternate name for the argument.
		// An empty value means the argument has no shortcut.
		Shortcut    string
		Description string
		// Position is the index of the argument within
		// the positional (unnamed) arguments, or [NoPosition].
		Position int
		// IgnoreCase allows the name and shortcut to match
		// regardless of letter case.
		IgnoreCase bool
		// Required properties must receive a candidate value
		// by the end of the [BeforePopulateProperty] stage.
		Required bool
		// Action marks the property which selects
		// the program's action; it never has a shortcut.
		Action   bool
		Examples []Example
		// Hooks are the property-scoped hooks in declaration order.
		Hooks []Hook
		// Index is the field's index sequence within the struct type,
		// as used by [reflect.Value.FieldByIndex].
		Index []int
		Type  reflect.Type
	}

	// Example is a sample argument value with a description of its effect.
	Example struct {
		Example, Description string
	}

	// Metadata is the ordered set of properties and class-scoped hooks
	// for a settings struct type.
	Metadata struct {
		Type reflect.Type
		// Description and Examples describe the settings type as a whole.
		Description string
		Examples    []Example
		Properties  []*Descriptor
		ClassHooks  []Hook
	}
)

// Positional reports whether the property may be provided without a name.
func (desc *Descriptor) Positional() bool { return desc.Position != NoPosition }

// Matches reports whether `name` refers to this property,
// either by its name or its shortcut.
func (desc *Descriptor) Matches(name string) bool {
	equal := func(a, b string) bool { return a == b }
	if desc.IgnoreCase {
		equal = strings.EqualFold
	}
	if equal(desc.Name, name) {
		return true
	}
	return desc.Shortcut != "" && equal(desc.Shortcut, name)
}

func (desc *Descriptor) String() string { return desc.Name }

// ActionProperty returns the property marked as the action, or nil.
func (meta *Metadata) ActionProperty() *Descriptor {
	for _, desc := range meta.Properties {
		if desc.Action {
			return desc
		}
	}
	return nil
}

// Property returns the property referred to by `name`, or nil.
func (meta *Metadata) Property(name string) *Descriptor {
	for _, desc := range meta.Properties {
		if desc.Matches(name) {
			return desc
		}
	}
	return nil
}
