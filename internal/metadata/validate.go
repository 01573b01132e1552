package metadata

import (
	"fmt"
	"strings"

	"github.com/djdv/go-arguments/internal/argument"
)

// validate checks that names, explicit shortcuts, positions,
// and the action designation are unique among the properties.
func validate(properties []*argument.Descriptor) error {
	var (
		action    *argument.Descriptor
		positions = make(map[int]*argument.Descriptor)
	)
	for i, desc := range properties {
		if desc.Name == "" {
			return fmt.Errorf("%w: property has an empty name", ErrInvalidTag)
		}
		if desc.Action {
			if action != nil {
				return fmt.Errorf("%w: both `%s` and `%s` are marked as the action",
					ErrDuplicateName, action.Name, desc.Name)
			}
			action = desc
		}
		if desc.Positional() {
			if other, ok := positions[desc.Position]; ok {
				return fmt.Errorf("%w: `%s` and `%s` share position %d",
					ErrDuplicateName, other.Name, desc.Name, desc.Position)
			}
			positions[desc.Position] = desc
		}
		for _, other := range properties[:i] {
			for _, name := range []string{desc.Name, desc.Shortcut} {
				if name != "" && collides(other, desc, name) {
					return fmt.Errorf("%w: `%s` conflicts with `%s`",
						ErrDuplicateName, desc.Name, other.Name)
				}
			}
		}
	}
	return nil
}

// assignShortcuts gives each of the `defaulted` properties
// the first character of its name as a shortcut,
// unless another property already uses it.
func assignShortcuts(properties, defaulted []*argument.Descriptor) {
	for _, desc := range defaulted {
		var (
			shortcut = defaultShortcut(desc.Name)
			taken    bool
		)
		for _, other := range properties {
			if other != desc && collides(other, desc, shortcut) {
				taken = true
				break
			}
		}
		if !taken {
			desc.Shortcut = shortcut
		}
	}
}

// collides reports whether `name` (of property `desc`)
// would be matched by the name or shortcut of `other`.
func collides(other, desc *argument.Descriptor, name string) bool {
	equal := func(a, b string) bool { return a == b }
	if other.IgnoreCase || desc.IgnoreCase {
		equal = strings.EqualFold
	}
	return equal(other.Name, name) ||
		(other.Shortcut != "" && equal(other.Shortcut, name))
}
