package argument

type (
	// Context is the state shared by every stage of a population pass.
	// Contexts are only valid for the duration of the hook call
	// they're passed to.
	Context struct {
		// Descriptor is the property the hook is attached to.
		// It is nil for class-scoped hooks.
		Descriptor *Descriptor
		// Arguments are the raw argument tokens of the pass.
		Arguments []string
		// Target is the pointer to the settings struct being populated.
		Target any
	}

	// ParseContext is passed to [Hook.BeforeParse].
	// Hooks may replace or modify its Arguments
	// before they're tokenized.
	ParseContext struct{ Context }

	// ObjectContext is passed to the class-scoped stages
	// [Hook.BeforePopulateProperties] and [Hook.AfterPopulateProperties].
	ObjectContext struct {
		Context
		Properties []*Descriptor
	}

	// BeforePropertyContext is passed to [Hook.BeforePopulateProperty].
	BeforePropertyContext struct {
		Context
		candidate
	}

	// AfterPropertyContext is passed to [Hook.AfterPopulateProperty].
	AfterPropertyContext struct {
		Context
		candidate
		// Revived is the value assigned to the property.
		// It is nil when no value was assigned.
		Revived any
	}

	candidate struct {
		value   string
		present bool
	}
)

// Value returns the candidate string for the property,
// and whether one has been supplied (by the tokenizer or a hook).
func (c candidate) Value() (string, bool) { return c.value, c.present }

// SetValue sets the candidate string for the property.
// Hooks that only provide fallback values should
// check [BeforePropertyContext.Value] first.
func (ctx *BeforePropertyContext) SetValue(value string) {
	ctx.candidate = candidate{value: value, present: true}
}
