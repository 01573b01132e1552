package argument

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/djdv/go-arguments/internal/generic"
	"github.com/u-root/uio/ulog"
)

type (
	// Reviver converts candidate strings into values of a Go type.
	Reviver interface {
		Revive(typ reflect.Type, value string) (any, error)
	}

	// Candidates maps property names to their candidate values.
	Candidates map[string]string

	// Tokenizer resolves raw argument tokens into
	// at most one candidate value per property.
	Tokenizer interface {
		Tokenize(arguments []string, properties []*Descriptor) (Candidates, error)
	}

	// Engine executes population passes.
	Engine struct {
		reviver   Reviver
		tokenizer Tokenizer
		log       ulog.Logger
	}

	// EngineOption configures an [Engine].
	EngineOption func(*Engine) error
)

// WithLogger sets the logger used to trace population passes.
func WithLogger(log ulog.Logger) EngineOption {
	return func(engine *Engine) error {
		engine.log = log
		return nil
	}
}

// WithTokenizer sets the tokenizer used by [Engine.Bind].
func WithTokenizer(tokenizer Tokenizer) EngineOption {
	return func(engine *Engine) error {
		if engine.tokenizer != nil {
			return generic.OptionAlreadySet("tokenizer")
		}
		engine.tokenizer = tokenizer
		return nil
	}
}

// NewEngine returns an engine which revives candidate values with `reviver`.
func NewEngine(reviver Reviver, options ...EngineOption) (*Engine, error) {
	engine := &Engine{
		reviver: reviver,
		log:     ulog.Null,
	}
	if err := generic.ApplyOptions(engine, options...); err != nil {
		return nil, err
	}
	return engine, nil
}

// Bind runs the [BeforeParse] stage over `arguments`,
// tokenizes the result, and then populates `target`
// with the candidates (see [Engine.Populate]).
func (engine *Engine) Bind(target any, meta *Metadata, arguments []string) error {
	tokenizer := engine.tokenizer
	if tokenizer == nil {
		return ErrNoTokenizer
	}
	if _, err := targetStruct(target, meta); err != nil {
		return err
	}
	arguments, err := engine.beforeParse(target, meta, arguments)
	if err != nil {
		return err
	}
	candidates, err := tokenizer.Tokenize(arguments, meta.Properties)
	if err != nil {
		return err
	}
	return engine.populate(target, meta, arguments, candidates)
}

// Populate assigns each property of `target` using its candidate value
// and the hooks within `meta`.
// Candidates are keyed by [Descriptor.Name].
//
// If an error is returned, properties that were assigned
// before the failure retain their values.
func (engine *Engine) Populate(target any, meta *Metadata, candidates Candidates) error {
	if _, err := targetStruct(target, meta); err != nil {
		return err
	}
	return engine.populate(target, meta, nil, candidates)
}

func (engine *Engine) beforeParse(target any, meta *Metadata, arguments []string) ([]string, error) {
	type scopedHook struct {
		Hook
		*Descriptor
	}
	scoped := make([]scopedHook, 0, len(meta.ClassHooks))
	for _, hook := range meta.ClassHooks {
		scoped = append(scoped, scopedHook{Hook: hook})
	}
	for _, desc := range meta.Properties {
		for _, hook := range desc.Hooks {
			scoped = append(scoped, scopedHook{Hook: hook, Descriptor: desc})
		}
	}
	slices.SortStableFunc(scoped, func(a, b scopedHook) int {
		return cmp.Compare(b.Hook.Priority(BeforeParse), a.Hook.Priority(BeforeParse))
	})
	for _, hook := range scoped {
		ctx := &ParseContext{
			Context: Context{
				Descriptor: hook.Descriptor,
				Arguments:  arguments,
				Target:     target,
			},
		}
		if err := hook.Hook.BeforeParse(ctx); err != nil {
			return nil, hookError(hook.Descriptor, BeforeParse, "", err)
		}
		arguments = ctx.Arguments
	}
	return arguments, nil
}

func (engine *Engine) populate(target any, meta *Metadata,
	arguments []string, candidates Candidates,
) error {
	var (
		log         = engine.log
		structValue = reflect.ValueOf(target).Elem()
		objectCtx   = &ObjectContext{
			Context: Context{
				Arguments: arguments,
				Target:    target,
			},
			Properties: meta.Properties,
		}
	)
	for _, hook := range Sort(BeforePopulateProperties, meta.ClassHooks) {
		if err := hook.BeforePopulateProperties(objectCtx); err != nil {
			return hookError(nil, BeforePopulateProperties, "", err)
		}
	}
	for _, desc := range meta.Properties {
		common := Context{
			Descriptor: desc,
			Arguments:  arguments,
			Target:     target,
		}
		value, present := candidates[desc.Name]
		before := &BeforePropertyContext{
			Context: common,
			candidate: candidate{
				value:   value,
				present: present,
			},
		}
		for _, hook := range Sort(BeforePopulateProperty, desc.Hooks) {
			previous := before.candidate
			if err := hook.BeforePopulateProperty(before); err != nil {
				return hookError(desc, BeforePopulateProperty, previous.value, err)
			}
			if current := before.candidate; previous.present && current != previous {
				log.Printf("%s: %T replaced candidate %q with %q",
					desc.Name, hook, previous.value, current.value)
			}
		}
		after := &AfterPropertyContext{
			Context:   common,
			candidate: before.candidate,
		}
		if value, present := before.Value(); present {
			revived, err := engine.reviver.Revive(desc.Type, value)
			if err != nil {
				return &PropertyError{
					Property: desc.Name,
					Value:    value,
					Kind:     ErrRevival,
					Err:      err,
				}
			}
			field := structValue.FieldByIndex(desc.Index)
			if err := assign(field, revived); err != nil {
				return &PropertyError{
					Property: desc.Name,
					Value:    value,
					Kind:     ErrRevival,
					Err:      err,
				}
			}
			after.Revived = revived
			log.Printf("%s: assigned %q", desc.Name, value)
		} else if desc.Required {
			return &PropertyError{
				Property: desc.Name,
				Kind:     ErrMissingRequired,
			}
		}
		for _, hook := range Sort(AfterPopulateProperty, desc.Hooks) {
			if err := hook.AfterPopulateProperty(after); err != nil {
				return hookError(desc, AfterPopulateProperty, after.value, err)
			}
		}
	}
	for _, hook := range Sort(AfterPopulateProperties, meta.ClassHooks) {
		if err := hook.AfterPopulateProperties(objectCtx); err != nil {
			return hookError(nil, AfterPopulateProperties, "", err)
		}
	}
	return nil
}

func hookError(desc *Descriptor, stage Stage, value string, err error) error {
	pe := &PropertyError{
		Value: value,
		Kind:  ErrHook,
		Stage: stage,
		Err:   err,
	}
	if desc != nil {
		pe.Property = desc.Name
	}
	return pe
}

func targetStruct(target any, meta *Metadata) (reflect.Value, error) {
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.IsNil() ||
		value.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w:"+
			" got: %T"+
			" want: non-nil pointer to struct",
			ErrUnexpectedType, target,
		)
	}
	elem := value.Elem()
	if meta.Type != nil && elem.Type() != meta.Type {
		return reflect.Value{}, fmt.Errorf("%w:"+
			" got: %T"+
			" want: *%v",
			ErrUnexpectedType, target, meta.Type,
		)
	}
	return elem, nil
}

func assign(field reflect.Value, value any) error {
	if !field.CanSet() {
		return fmt.Errorf("%w: field of type %v is not settable",
			ErrUnexpectedType, field.Type(),
		)
	}
	var (
		fieldType = field.Type()
		rValue    = reflect.ValueOf(value)
	)
	if !rValue.IsValid() {
		field.Set(reflect.Zero(fieldType))
		return nil
	}
	switch rType := rValue.Type(); {
	case rType.AssignableTo(fieldType):
	case rType.ConvertibleTo(fieldType):
		rValue = rValue.Convert(fieldType)
	default:
		return fmt.Errorf("%w: `%#v` is not assignable to %v",
			ErrUnexpectedType, value, fieldType,
		)
	}
	field.Set(rValue)
	return nil
}
