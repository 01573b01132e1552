package metadata

import (
	"encoding/csv"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type (
	// tagPair is a single `key:"value"` entry of a struct tag.
	tagPair struct{ key, value string }

	// argOptions are the values of the `arg` tag.
	argOptions struct {
		name, shortcut string
		position       *int
		ignoreCase     *bool
		ignore,
		required,
		action,
		noShortcut bool
	}
)

const (
	argTagKey         = "arg"
	descriptionTagKey = "description"
	exampleTagKey     = "example"
	exampleSeparator  = "|"
)

func (tag tagPair) String() string {
	return fmt.Sprintf("`%s:%q`", tag.key, tag.value)
}

// parseTag splits a struct tag into its pairs, in declaration order.
// Unlike [reflect.StructTag.Lookup], keys may repeat.
func parseTag(tag reflect.StructTag) ([]tagPair, error) {
	var (
		pairs []tagPair
		rest  = string(tag)
	)
	for {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			return pairs, nil
		}
		colon := strings.Index(rest, `:"`)
		if colon <= 0 {
			return nil, fmt.Errorf("%w: malformed struct tag `%s`",
				ErrInvalidTag, tag)
		}
		key := rest[:colon]
		if strings.ContainsAny(key, " \"") {
			return nil, fmt.Errorf("%w: malformed key %q in struct tag `%s`",
				ErrInvalidTag, key, tag)
		}
		rest = rest[colon+1:]
		end := 1
		for end < len(rest) && rest[end] != '"' {
			if rest[end] == '\\' {
				end++
			}
			end++
		}
		if end >= len(rest) {
			return nil, fmt.Errorf("%w: unterminated value in struct tag `%s`",
				ErrInvalidTag, tag)
		}
		value, err := strconv.Unquote(rest[:end+1])
		if err != nil {
			return nil, fmt.Errorf("%w: struct tag `%s`: %s",
				ErrInvalidTag, tag, err)
		}
		pairs = append(pairs, tagPair{key: key, value: value})
		rest = rest[end+1:]
	}
}

// parseArgTag interprets the comma separated values of an `arg` tag.
// E.g. `arg:"name=port,shortcut=P,required"`.
func parseArgTag(value string) (argOptions, error) {
	var options argOptions
	if strings.TrimSpace(value) == "-" {
		options.ignore = true
		return options, nil
	}
	if value == "" {
		return options, nil
	}
	fields, err := csv.NewReader(strings.NewReader(value)).Read()
	if err != nil {
		return options, fmt.Errorf("%w: could not parse tag value `%s` as CSV: %s",
			ErrInvalidTag, value, err)
	}
	for _, field := range fields {
		var (
			field       = strings.TrimSpace(field)
			key, arg, _ = strings.Cut(field, "=")
			enabled     = true
		)
		switch key {
		case "name":
			options.name = arg
		case "shortcut":
			options.shortcut = arg
		case "noshortcut":
			options.noShortcut = true
		case "position":
			position, err := strconv.Atoi(arg)
			if err != nil || position < 0 {
				return options, fmt.Errorf("%w: invalid position %q",
					ErrInvalidTag, arg)
			}
			options.position = &position
		case "required":
			options.required = true
		case "action":
			options.action = true
		case "ignorecase":
			options.ignoreCase = &enabled
		case "matchcase":
			enabled = false
			options.ignoreCase = &enabled
		default:
			return options, fmt.Errorf("%w: unexpected option %q",
				ErrInvalidTag, field)
		}
	}
	return options, nil
}
