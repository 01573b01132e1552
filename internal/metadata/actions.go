package metadata

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/djdv/go-arguments/internal/argument"
	"github.com/djdv/go-arguments/internal/generic"
)

// Actions maps the values of a settings type's action property
// to the functions that carry them out.
type Actions[T any] map[string]func(*T) error

const (
	// ErrUnknownAction is returned by [Actions.Dispatch]
	// when the action property's value has no function.
	ErrUnknownAction = generic.ConstError("unknown action")
	// ErrNoAction is returned by [Actions.Dispatch]
	// for types without an action property.
	ErrNoAction = generic.ConstError("type has no action property")
)

// Dispatch calls the function for the value of
// the action property within `set`.
// Values are matched case-insensitively if the property ignores case.
func (actions Actions[T]) Dispatch(meta *argument.Metadata, set *T) error {
	desc := meta.ActionProperty()
	if desc == nil {
		return fmt.Errorf("%w: %v", ErrNoAction, meta.Type)
	}
	field := reflect.ValueOf(set).Elem().FieldByIndex(desc.Index)
	var value string
	if field.Kind() == reflect.String {
		value = field.String()
	} else {
		value = fmt.Sprint(field.Interface())
	}
	if action, ok := actions[value]; ok {
		return action(set)
	}
	if desc.IgnoreCase {
		for name, action := range actions {
			if strings.EqualFold(name, value) {
				return action(set)
			}
		}
	}
	return fmt.Errorf("%w: `%s`"+
		"\n\tgot: %q"+
		"\n\twant one of: %q",
		ErrUnknownAction, desc.Name,
		value, actions.names(),
	)
}

func (actions Actions[T]) names() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
