package resolve

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/djdv/go-arguments/internal/argument"
	"github.com/djdv/go-arguments/internal/generic"
	cmds "github.com/ipfs/go-ipfs-cmds"
	"github.com/ipfs/go-ipfs-cmds/cli"
	"github.com/u-root/uio/ulog"
)

type (
	// CommandLine resolves values from program arguments.
	//
	// Named arguments may be written as `-name value`,
	// `--name value`, `-name=value`, or with the property's shortcut.
	// Boolean properties may omit their value, implying "true".
	// Remaining arguments are assigned to positional properties in order.
	// Arguments after a `--` are always positional.
	//
	// Tokens are rewritten into their canonical form
	// (`--name=value`, followed by `--` and the positional values),
	// and parsed by the go-ipfs-cmds command line parser.
	CommandLine struct {
		log ulog.Logger
	}

	// CommandLineOption configures a [CommandLine].
	CommandLineOption func(*CommandLine) error
)

const terminator = "--"

// WithLogger sets the logger used to trace resolution.
func WithLogger(log ulog.Logger) CommandLineOption {
	return func(cl *CommandLine) error {
		cl.log = log
		return nil
	}
}

// NewCommandLine returns a program argument tokenizer.
func NewCommandLine(options ...CommandLineOption) (*CommandLine, error) {
	cl := &CommandLine{log: ulog.Null}
	if err := generic.ApplyOptions(cl, options...); err != nil {
		return nil, err
	}
	return cl, nil
}

func (cl *CommandLine) Tokenize(arguments []string, properties []*argument.Descriptor) (argument.Candidates, error) {
	canonical, err := canonicalize(arguments, properties)
	if err != nil {
		return nil, err
	}
	cl.log.Printf("command line: %q", canonical)
	request, err := cli.Parse(context.Background(), canonical, nil,
		commandFor(properties))
	if err != nil {
		return nil, err
	}
	// The parser always sets an encoding,
	// which only counts if it was given as an argument.
	if !slices.ContainsFunc(canonical, func(token string) bool {
		return strings.HasPrefix(token, terminator+cmds.EncLong+"=")
	}) {
		delete(request.Options, cmds.EncLong)
	}
	return NewRequest(request).Tokenize(nil, properties)
}

// commandFor defines a command with an option
// for each named property, and an argument for
// each positional property.
func commandFor(properties []*argument.Descriptor) *cmds.Command {
	command := &cmds.Command{
		Options: make([]cmds.Option, 0, len(properties)),
	}
	for _, desc := range properties {
		optionConstructor := cmds.StringOption
		if isBool(desc.Type) {
			optionConstructor = cmds.BoolOption
		}
		command.Options = append(command.Options,
			optionConstructor(desc.Name, desc.Description))
	}
	for _, desc := range positionalProperties(properties) {
		command.Arguments = append(command.Arguments,
			cmds.StringArg(desc.Name, false, false, desc.Description))
	}
	return command
}

// canonicalize resolves names and shortcuts (honoring [argument.Descriptor.IgnoreCase]),
// and the values of named arguments, returning the arguments
// as `--name=value` pairs followed by `--` and the positional values.
func canonicalize(arguments []string, properties []*argument.Descriptor) ([]string, error) {
	var (
		named      = make([]string, 0, len(arguments))
		positional []string
		seen       = make(map[string]string, len(properties))
	)
	for i := 0; i < len(arguments); i++ {
		token := arguments[i]
		if token == terminator {
			positional = append(positional, arguments[i+1:]...)
			break
		}
		if !isNamed(token) {
			positional = append(positional, token)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(token, "-"), "=")
		desc := lookup(properties, name)
		if desc == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedArgument, token)
		}
		if !hasValue {
			var next string
			if i+1 < len(arguments) {
				next = arguments[i+1]
			}
			switch {
			case isBool(desc.Type):
				value = "true"
				if _, err := strconv.ParseBool(next); err == nil {
					value = next
					i++
				}
			case i+1 < len(arguments) && !isNamed(next):
				value = next
				i++
			default:
				return nil, fmt.Errorf("%w: %s", ErrMissingValue, token)
			}
		}
		if previous, exists := seen[desc.Name]; exists {
			return nil, fmt.Errorf("%w: `%s`"+
				"\n\tgot: %q"+
				"\n\thave: %q",
				ErrDuplicateArgument, desc.Name,
				value, previous,
			)
		}
		seen[desc.Name] = value
		named = append(named, terminator+desc.Name+"="+value)
	}
	if count, limit := len(positional), len(positionalProperties(properties)); count > limit {
		return nil, fmt.Errorf("%w: %q (expected at most %d positional arguments)",
			ErrUnexpectedArgument, positional[limit:], limit)
	}
	if len(positional) == 0 {
		return named, nil
	}
	return append(append(named, terminator), positional...), nil
}

// isNamed reports whether the token looks like `-name`.
// Negative numbers are treated as values.
func isNamed(token string) bool {
	if len(token) < 2 || token[0] != '-' || token == terminator {
		return false
	}
	_, err := strconv.ParseFloat(token, 64)
	return err != nil
}

func isBool(typ reflect.Type) bool {
	return typ != nil && typ.Kind() == reflect.Bool
}

func lookup(properties []*argument.Descriptor, name string) *argument.Descriptor {
	for _, desc := range properties {
		if desc.Matches(name) {
			return desc
		}
	}
	return nil
}
