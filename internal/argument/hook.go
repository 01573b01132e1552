package argument

import (
	"cmp"
	"fmt"
	"slices"
)

type (
	// Stage identifies one of the extension points of a population pass.
	Stage uint

	// Hook is a unit of behavior attached to either
	// a settings type (class-scoped), or one of its properties.
	//
	// Implementations will typically embed [HookBase]
	// and override only the stages they participate in.
	Hook interface {
		// Priority returns the ordering key of the hook for the stage.
		// Higher values run first.
		Priority(Stage) int
		BeforeParse(*ParseContext) error
		BeforePopulateProperties(*ObjectContext) error
		BeforePopulateProperty(*BeforePropertyContext) error
		AfterPopulateProperty(*AfterPropertyContext) error
		AfterPopulateProperties(*ObjectContext) error
	}

	// Priorities holds a priority for each [Stage].
	Priorities struct {
		BeforeParse,
		BeforePopulateProperties,
		BeforePopulateProperty,
		AfterPopulateProperty,
		AfterPopulateProperties int
	}

	// HookBase implements [Hook] with no-op callbacks
	// and the priorities it holds.
	HookBase struct{ Priorities }
)

const (
	_ Stage = iota
	BeforeParse
	BeforePopulateProperties
	BeforePopulateProperty
	AfterPopulateProperty
	AfterPopulateProperties
)

const (
	// PriorityHigh is used by hooks which should run
	// before most others within a stage.
	PriorityHigh = 10
	// PriorityNormal is the zero priority.
	PriorityNormal = 0
)

func (stage Stage) String() string {
	switch stage {
	case BeforeParse:
		return "before parse"
	case BeforePopulateProperties:
		return "before populate properties"
	case BeforePopulateProperty:
		return "before populate property"
	case AfterPopulateProperty:
		return "after populate property"
	case AfterPopulateProperties:
		return "after populate properties"
	default:
		return fmt.Sprintf("Stage(%d)", uint(stage))
	}
}

func (hb HookBase) Priority(stage Stage) int {
	switch stage {
	case BeforeParse:
		return hb.Priorities.BeforeParse
	case BeforePopulateProperties:
		return hb.Priorities.BeforePopulateProperties
	case BeforePopulateProperty:
		return hb.Priorities.BeforePopulateProperty
	case AfterPopulateProperty:
		return hb.Priorities.AfterPopulateProperty
	case AfterPopulateProperties:
		return hb.Priorities.AfterPopulateProperties
	default:
		return PriorityNormal
	}
}

func (HookBase) BeforeParse(*ParseContext) error                     { return nil }
func (HookBase) BeforePopulateProperties(*ObjectContext) error       { return nil }
func (HookBase) BeforePopulateProperty(*BeforePropertyContext) error { return nil }
func (HookBase) AfterPopulateProperty(*AfterPropertyContext) error   { return nil }
func (HookBase) AfterPopulateProperties(*ObjectContext) error        { return nil }

// Sort returns a copy of `hooks`, ordered by
// descending priority for the stage.
// Hooks of equal priority retain their relative order.
func Sort(stage Stage, hooks []Hook) []Hook {
	sorted := slices.Clone(hooks)
	slices.SortStableFunc(sorted, func(a, b Hook) int {
		return cmp.Compare(b.Priority(stage), a.Priority(stage))
	})
	return sorted
}
