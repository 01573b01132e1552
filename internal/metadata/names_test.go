package metadata

import (
	"errors"
	"reflect"
	"testing"
)

func TestArgumentName(t *testing.T) {
	t.Parallel()
	for _, test := range []struct{ field, want string }{
		{"Color", "color"},
		{"ServerPort", "server-port"},
		{"APIKey", "api-key"},
		{"Snake_Case", "snake-case"},
		{"X", "x"},
	} {
		if got := argumentName(test.field); got != test.want {
			t.Errorf("argumentName(%q)"+
				"\n\tgot: %q"+
				"\n\twant: %q",
				test.field, got, test.want)
		}
	}
	if got := defaultShortcut("über"); got != "ü" {
		t.Errorf("defaultShortcut did not return the first rune: %q", got)
	}
	if got := defaultShortcut(""); got != "" {
		t.Errorf("defaultShortcut of empty name: %q", got)
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()
	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		const tag reflect.StructTag = `arg:"name=x" example:"1|one"  example:"2|two" json:"-"`
		pairs, err := parseTag(tag)
		if err != nil {
			t.Fatal(err)
		}
		want := []tagPair{
			{"arg", "name=x"},
			{"example", "1|one"},
			{"example", "2|two"},
			{"json", "-"},
		}
		if !reflect.DeepEqual(pairs, want) {
			t.Errorf("parseTag"+
				"\n\tgot: %v"+
				"\n\twant: %v",
				pairs, want)
		}
	})
	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		for _, tag := range []reflect.StructTag{
			`arg`,
			`arg:"unterminated`,
			`:"no key"`,
			`a b:"value"`,
		} {
			if _, err := parseTag(tag); !errors.Is(err, ErrInvalidTag) {
				t.Errorf("tag `%s`"+
					"\n\tgot: %v"+
					"\n\twant: %v",
					tag, err, ErrInvalidTag)
			}
		}
	})
}

func TestParseArgTag(t *testing.T) {
	t.Parallel()
	options, err := parseArgTag("name=port, shortcut=P,position=1,required,matchcase")
	if err != nil {
		t.Fatal(err)
	}
	if options.name != "port" ||
		options.shortcut != "P" ||
		options.position == nil || *options.position != 1 ||
		!options.required ||
		options.ignoreCase == nil || *options.ignoreCase {
		t.Errorf("unexpected options: %+v", options)
	}
	if options, err = parseArgTag(" - "); err != nil || !options.ignore {
		t.Errorf("`-` did not ignore the field: %+v %v", options, err)
	}
	for _, value := range []string{
		"position=-1",
		"position=first",
		"colour",
		`"unbalanced`,
	} {
		if _, err := parseArgTag(value); !errors.Is(err, ErrInvalidTag) {
			t.Errorf("value %q"+
				"\n\tgot: %v"+
				"\n\twant: %v",
				value, err, ErrInvalidTag)
		}
	}
}
