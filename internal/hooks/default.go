// Package hooks provides general purpose [argument.Hook]s.
package hooks

import (
	"fmt"

	"github.com/djdv/go-arguments/internal/argument"
)

// DefaultPriority is the [argument.BeforePopulateProperty]
// priority of hooks returned by [Default].
// It is lower than that of remembered (sticky) values,
// so a remembered value takes precedence over a static default.
const DefaultPriority = argument.PriorityNormal

// DefaultTagKey is the struct tag key
// which attaches a [Default] hook to a property.
// E.g. `default:"8080"`.
const DefaultTagKey = "default"

type defaultValue struct {
	argument.HookBase
	value string
}

// Default returns a hook that supplies the string form of `value`
// to properties that received no candidate value.
func Default(value any) argument.Hook {
	return &defaultValue{
		HookBase: argument.HookBase{
			Priorities: argument.Priorities{
				BeforePopulateProperty: DefaultPriority,
			},
		},
		value: fmt.Sprint(value),
	}
}

func (dv *defaultValue) BeforePopulateProperty(ctx *argument.BeforePropertyContext) error {
	if _, present := ctx.Value(); !present {
		ctx.SetValue(dv.value)
	}
	return nil
}

func (dv *defaultValue) String() string { return "default:" + dv.value }
