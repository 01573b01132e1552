package sticky

import "github.com/djdv/go-arguments/internal/argument"

// Priority is the [argument.BeforePopulateProperty] priority of [Hook]s.
const Priority = argument.PriorityHigh

// TagKey is the struct tag key conventionally registered with [TagHook].
// E.g. `sticky:""`.
const TagKey = "sticky"

// Hook supplies remembered values to properties that received none,
// and remembers the final value of properties that did.
type Hook struct {
	argument.HookBase
	store *Store
}

// NewHook returns a hook backed by `store`.
func NewHook(store *Store) *Hook {
	return &Hook{
		HookBase: argument.HookBase{
			Priorities: argument.Priorities{
				BeforePopulateProperty: Priority,
			},
		},
		store: store,
	}
}

// TagHook returns a hook constructor for use with
// the metadata package's tag registry.
// The tag's value is ignored.
func TagHook(store *Store) func(string) (argument.Hook, error) {
	hook := NewHook(store)
	return func(string) (argument.Hook, error) { return hook, nil }
}

func (hook *Hook) BeforePopulateProperty(ctx *argument.BeforePropertyContext) error {
	if _, present := ctx.Value(); present {
		return nil
	}
	if value, ok := hook.store.Lookup(ctx.Descriptor.Name); ok {
		ctx.SetValue(value)
	}
	return nil
}

func (hook *Hook) AfterPopulateProperty(ctx *argument.AfterPropertyContext) error {
	value, present := ctx.Value()
	if !present {
		return nil
	}
	return hook.store.Set(ctx.Descriptor.Name, value)
}
