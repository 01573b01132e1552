// Package revive converts argument strings into Go values.
package revive

import (
	"encoding"
	"encoding/csv"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/djdv/go-arguments/internal/generic"
)

type (
	// Parser converts strings into values of its Type.
	Parser interface {
		Type() reflect.Type
		Parse(string) (any, error)
	}

	// ParseFunc receives a string representation of a value,
	// and returns a typed Go value of it.
	ParseFunc[T any] func(string) (T, error)

	genericParser[T any] struct {
		parse ParseFunc[T]
	}

	// Registry revives strings using its registered parsers,
	// falling back to built-in conversions for
	// Go's primitive kinds, [encoding.TextUnmarshaler]s,
	// and slices or arrays (from comma separated values).
	Registry struct {
		parsers map[reflect.Type]Parser
	}

	// Option configures a [Registry].
	Option func(*Registry) error
)

// ErrUnexpectedType is returned when there is no way
// to revive a value of the requested type.
const ErrUnexpectedType = generic.ConstError("unexpected type")

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func (gp genericParser[T]) Type() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (gp genericParser[T]) Parse(s string) (any, error) { return gp.parse(s) }

// NewParser wraps a [ParseFunc], creating a [Parser] for its type.
func NewParser[T any](parse ParseFunc[T]) Parser {
	return genericParser[T]{parse: parse}
}

// With registers parsers with the registry.
// Parsers provided later replace earlier ones for the same type.
func With(parsers ...Parser) Option {
	return func(registry *Registry) error {
		for _, parser := range parsers {
			registry.parsers[parser.Type()] = parser
		}
		return nil
	}
}

// New returns a registry which includes a parser for [time.Duration].
func New(options ...Option) (*Registry, error) {
	registry := &Registry{
		parsers: map[reflect.Type]Parser{
			reflect.TypeOf(time.Duration(0)): NewParser(time.ParseDuration),
		},
	}
	if err := generic.ApplyOptions(registry, options...); err != nil {
		return nil, err
	}
	return registry, nil
}

// Revive interprets `value` as a value of type `typ`.
func (registry *Registry) Revive(typ reflect.Type, value string) (any, error) {
	reflectValue, err := registry.revive(typ, value)
	if err != nil {
		return nil, err
	}
	return reflectValue.Interface(), nil
}

func (registry *Registry) revive(typ reflect.Type, value string) (reflect.Value, error) {
	if parser, ok := registry.parsers[typ]; ok {
		goValue, err := parser.Parse(value)
		if err != nil {
			return reflect.Value{}, err
		}
		return conform(typ, goValue)
	}
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		pointer := reflect.New(typ)
		if err := pointer.Interface().(encoding.TextUnmarshaler).
			UnmarshalText([]byte(value)); err != nil {
			return reflect.Value{}, err
		}
		return pointer.Elem(), nil
	}
	switch kind := typ.Kind(); kind {
	case reflect.Pointer:
		elem, err := registry.revive(typ.Elem(), value)
		if err != nil {
			return reflect.Value{}, err
		}
		pointer := reflect.New(typ.Elem())
		pointer.Elem().Set(elem)
		return pointer, nil
	case reflect.Slice, reflect.Array:
		values, err := csv.NewReader(strings.NewReader(value)).Read()
		if err != nil {
			return reflect.Value{}, err
		}
		return registry.reviveVector(typ, values)
	default:
		return parseBuiltin(typ, value)
	}
}

func (registry *Registry) reviveVector(typ reflect.Type, values []string) (reflect.Value, error) {
	vector, err := makeVector(typ, len(values))
	if err != nil {
		return reflect.Value{}, err
	}
	elemType := typ.Elem()
	for i, stringValue := range values {
		elem, err := registry.revive(elemType, stringValue)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		vector.Index(i).Set(elem)
	}
	return vector, nil
}

// conform returns the parser's value as a value of `typ`.
func conform(typ reflect.Type, goValue any) (reflect.Value, error) {
	reflectValue := reflect.ValueOf(goValue)
	switch {
	case !reflectValue.IsValid():
		return reflect.Zero(typ), nil
	case reflectValue.Type().AssignableTo(typ):
		return reflectValue, nil
	case reflectValue.Type().ConvertibleTo(typ):
		return reflectValue.Convert(typ), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: parser returned %T for type %s",
			ErrUnexpectedType, goValue, typ,
		)
	}
}

// parseBuiltin interprets the string as/into the provided Go type.
func parseBuiltin(typ reflect.Type, value string) (reflect.Value, error) {
	var (
		goValue any
		err     error
	)
	switch kind := typ.Kind(); kind {
	case reflect.String:
		goValue = value
	case reflect.Bool:
		goValue, err = strconv.ParseBool(value)
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		goValue, err = strconv.ParseInt(value, 0, typ.Bits())
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		goValue, err = strconv.ParseUint(value, 0, typ.Bits())
	case reflect.Float32, reflect.Float64:
		goValue, err = strconv.ParseFloat(value, typ.Bits())
	case reflect.Complex64, reflect.Complex128:
		goValue, err = strconv.ParseComplex(value, typ.Bits())
	default:
		err = fmt.Errorf("%w: no parser for value type: %s kind: %s",
			ErrUnexpectedType, typ, kind,
		)
	}
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(goValue).Convert(typ), nil
}

// makeVector takes in an array or slice type and returns a new value for it.
func makeVector(typ reflect.Type, elemCount int) (reflect.Value, error) {
	switch vectorKind := typ.Kind(); vectorKind {
	case reflect.Array:
		if vectorLen := typ.Len(); elemCount > vectorLen {
			err := fmt.Errorf("array of size %d cannot fit %d elements",
				vectorLen, elemCount,
			)
			return reflect.Value{}, err
		}
		return reflect.New(typ).Elem(), nil
	case reflect.Slice:
		return reflect.MakeSlice(typ, elemCount, elemCount), nil
	default:
		err := fmt.Errorf(
			"%w:"+
				" got: `%s`"+
				" want: `%s` or `%s`",
			ErrUnexpectedType,
			vectorKind,
			reflect.Slice, reflect.Array,
		)
		return reflect.Value{}, err
	}
}
