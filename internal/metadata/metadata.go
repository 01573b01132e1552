// Package metadata builds [argument.Metadata] from
// the fields and struct tags of a settings type.
//
// Every exported field is bound to an argument unless it's tagged with `arg:"-"`.
// Fields of embedded structs are bound as if they were declared
// within the outer struct. Recognized tags:
//
//	arg:"name=N,shortcut=S,noshortcut,position=0,required,action,ignorecase,matchcase"
//	description:"text"
//	example:"example|description" (may be repeated)
//
// Any other tag key that has a registered [TagHook]
// (such as `default:"value"`) attaches a hook to the property,
// in the order the tags are declared.
package metadata

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/djdv/go-arguments/internal/argument"
	"github.com/djdv/go-arguments/internal/generic"
	"github.com/djdv/go-arguments/internal/hooks"
)

type (
	// TagHook constructs a property-scoped hook from the value
	// of the struct tag it was registered for.
	TagHook func(tagValue string) (argument.Hook, error)

	// ClassHooker may be implemented by settings types
	// to declare their class-scoped hooks.
	ClassHooker interface {
		ArgumentHooks() []argument.Hook
	}

	// ClassDescriber may be implemented by settings types
	// to describe the type as a whole.
	ClassDescriber interface {
		ArgumentClass() Class
	}

	// Class is the type-level metadata of a settings type.
	Class struct {
		Description string
		Examples    []argument.Example
		// MatchCase makes properties match names case-sensitively
		// unless [WithIgnoreCase] or their tags say otherwise.
		MatchCase bool
	}

	// Option configures [Describe].
	Option func(*settings) error

	settings struct {
		tagHooks      map[string]TagHook
		classHooks    []argument.Hook
		propertyHooks map[string][]argument.Hook
		ignoreCase    *bool
	}
)

const (
	// ErrInvalidTag is returned when a struct tag can't be interpreted.
	ErrInvalidTag = generic.ConstError("invalid struct tag")
	// ErrDuplicateName is returned when two properties
	// share a name, shortcut, position, or the action designation.
	ErrDuplicateName = generic.ConstError("duplicate argument")
	// ErrUnexpectedType is returned for types that aren't structs,
	// or fields that can't be bound.
	ErrUnexpectedType = generic.ConstError("unexpected type")
)

var (
	classHookerType    = reflect.TypeOf((*ClassHooker)(nil)).Elem()
	classDescriberType = reflect.TypeOf((*ClassDescriber)(nil)).Elem()
)

// WithTagHook registers a hook constructor for the struct tag `key`.
func WithTagHook(key string, hook TagHook) Option {
	return func(set *settings) error {
		switch key {
		case argTagKey, descriptionTagKey, exampleTagKey:
			return fmt.Errorf("%w: tag key %q is reserved", ErrInvalidTag, key)
		}
		set.tagHooks[key] = hook
		return nil
	}
}

// WithClassHooks appends class-scoped hooks.
func WithClassHooks(hooks ...argument.Hook) Option {
	return func(set *settings) error {
		set.classHooks = append(set.classHooks, hooks...)
		return nil
	}
}

// WithPropertyHooks appends hooks to the property
// bound to the Go field named `field`.
// They're declared after any hooks from the field's tags.
func WithPropertyHooks(field string, hooks ...argument.Hook) Option {
	return func(set *settings) error {
		set.propertyHooks[field] = append(set.propertyHooks[field], hooks...)
		return nil
	}
}

// WithIgnoreCase sets whether properties match names case-insensitively
// when their tags don't say otherwise. The default is true,
// unless the type's [Class] sets MatchCase.
func WithIgnoreCase(ignore bool) Option {
	return func(set *settings) error {
		if set.ignoreCase != nil {
			return generic.OptionAlreadySet("ignore case")
		}
		set.ignoreCase = &ignore
		return nil
	}
}

// Describe returns the metadata for struct type `typ`
// (or the struct `typ` points to).
func Describe(typ reflect.Type, options ...Option) (*argument.Metadata, error) {
	set := settings{
		tagHooks: map[string]TagHook{
			hooks.DefaultTagKey: defaultTagHook,
		},
		propertyHooks: make(map[string][]argument.Hook),
	}
	if err := generic.ApplyOptions(&set, options...); err != nil {
		return nil, err
	}
	if typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w:"+
			" got: %v"+
			" want: struct",
			ErrUnexpectedType, typ,
		)
	}
	fields, err := bindableFields(typ, nil)
	if err != nil {
		return nil, err
	}
	class := describeClass(typ)
	if set.ignoreCase == nil {
		ignoreCase := !class.MatchCase
		set.ignoreCase = &ignoreCase
	}
	meta := &argument.Metadata{
		Type:        typ,
		Description: class.Description,
		Examples:    class.Examples,
		Properties:  make([]*argument.Descriptor, 0, len(fields)),
		ClassHooks:  classHooks(typ, set.classHooks),
	}
	var (
		seen      = make(map[string]struct{}, len(fields))
		defaulted []*argument.Descriptor
	)
	for _, field := range fields {
		desc, wantShortcut, err := describeField(field, &set)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ.Name(), field.Name, err)
		}
		if desc == nil {
			continue
		}
		seen[field.Name] = struct{}{}
		meta.Properties = append(meta.Properties, desc)
		if wantShortcut {
			defaulted = append(defaulted, desc)
		}
	}
	for name := range set.propertyHooks {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("%w: %s has no bound field named %q",
				ErrUnexpectedType, typ.Name(), name)
		}
	}
	if err := validate(meta.Properties); err != nil {
		return nil, fmt.Errorf("%s: %w", typ.Name(), err)
	}
	assignShortcuts(meta.Properties, defaulted)
	return meta, nil
}

// MustDescribe is like [Describe] but panics on error.
// It's intended for package level initialization of static types.
func MustDescribe[T any](options ...Option) *argument.Metadata {
	meta, err := Describe(reflect.TypeOf((*T)(nil)).Elem(), options...)
	if err != nil {
		panic(err)
	}
	return meta
}

func defaultTagHook(value string) (argument.Hook, error) {
	return hooks.Default(value), nil
}

func classHooks(typ reflect.Type, optionHooks []argument.Hook) []argument.Hook {
	var declared []argument.Hook
	if reflect.PointerTo(typ).Implements(classHookerType) {
		hooker := reflect.New(typ).Interface().(ClassHooker)
		declared = hooker.ArgumentHooks()
	}
	return append(declared, optionHooks...)
}

func describeClass(typ reflect.Type) Class {
	if !reflect.PointerTo(typ).Implements(classDescriberType) {
		return Class{}
	}
	return reflect.New(typ).Interface().(ClassDescriber).ArgumentClass()
}

// bindableFields returns the fields of `typ`,
// with embedded structs expanded in place.
func bindableFields(typ reflect.Type, prefix []int) ([]reflect.StructField, error) {
	fields := make([]reflect.StructField, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		field.Index = append(append([]int(nil), prefix...), field.Index...)
		if field.Anonymous &&
			field.Type.Kind() == reflect.Struct &&
			field.Tag.Get(argTagKey) != "-" {
			embedded, err := bindableFields(field.Type, field.Index)
			if err != nil {
				return nil, err
			}
			fields = append(fields, embedded...)
			continue
		}
		if !field.IsExported() {
			if field.Tag != "" {
				return nil, fmt.Errorf("%w: field %s is tagged but not exported",
					ErrUnexpectedType, field.Name)
			}
			continue
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// describeField returns nil if the field is ignored.
// Otherwise it returns the property's descriptor,
// and whether it should receive a default shortcut.
func describeField(field reflect.StructField, set *settings) (*argument.Descriptor, bool, error) {
	pairs, err := parseTag(field.Tag)
	if err != nil {
		return nil, false, err
	}
	desc := &argument.Descriptor{
		Position:   argument.NoPosition,
		IgnoreCase: *set.ignoreCase,
		Index:      field.Index,
		Type:       field.Type,
	}
	var options argOptions
	for _, pair := range pairs {
		switch pair.key {
		case argTagKey:
			if options, err = parseArgTag(pair.value); err != nil {
				return nil, false, err
			}
			if options.ignore {
				return nil, false, nil
			}
		case descriptionTagKey:
			desc.Description = pair.value
		case exampleTagKey:
			example, description, _ := strings.Cut(pair.value, exampleSeparator)
			desc.Examples = append(desc.Examples, argument.Example{
				Example:     strings.TrimSpace(example),
				Description: strings.TrimSpace(description),
			})
		default:
			makeHook, ok := set.tagHooks[pair.key]
			if !ok {
				continue // Tags for other packages.
			}
			hook, err := makeHook(pair.value)
			if err != nil {
				return nil, false, fmt.Errorf("%w: %s: %s", ErrInvalidTag, pair, err)
			}
			desc.Hooks = append(desc.Hooks, hook)
		}
	}
	desc.Hooks = append(desc.Hooks, set.propertyHooks[field.Name]...)
	return desc, applyArgOptions(desc, field, options), nil
}

// applyArgOptions sets the descriptor's values from its `arg` tag,
// returning true if the property should receive a default shortcut.
func applyArgOptions(desc *argument.Descriptor, field reflect.StructField, options argOptions) bool {
	desc.Name = options.name
	if desc.Name == "" {
		desc.Name = argumentName(field.Name)
	}
	desc.Required = options.required
	desc.Action = options.action
	if options.position != nil {
		desc.Position = *options.position
	}
	if options.ignoreCase != nil {
		desc.IgnoreCase = *options.ignoreCase
	}
	switch {
	case options.action, options.noShortcut:
		return false
	case options.shortcut != "":
		desc.Shortcut = options.shortcut
		return false
	default:
		return true
	}
}
