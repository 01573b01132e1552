package resolve

import (
	"os"
	"strings"

	"github.com/djdv/go-arguments/internal/argument"
)

// Environment resolves values from the process environment.
// Each property is looked up by its name in upper snake case,
// preceded by the prefix (if any).
// E.g. property `server-port` with prefix `app` is read from `APP_SERVER_PORT`.
type Environment struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvironment returns an environment variable tokenizer.
func NewEnvironment(prefix string) *Environment {
	return &Environment{
		prefix: prefix,
		lookup: os.LookupEnv,
	}
}

// Key returns the environment variable name for the property.
func (env *Environment) Key(desc *argument.Descriptor) string {
	return envName(env.prefix, desc.Name)
}

func (env *Environment) Tokenize(_ []string, properties []*argument.Descriptor) (argument.Candidates, error) {
	candidates := make(argument.Candidates)
	for _, desc := range properties {
		if value, ok := env.lookup(env.Key(desc)); ok {
			candidates[desc.Name] = value
		}
	}
	return candidates, nil
}

func envName(prefix, name string) string {
	var (
		components = append(strings.Fields(prefix), strings.Split(name, "-")...)
		cleaned    = make([]string, 0, len(components))
	)
	for _, component := range components {
		if component = strings.Map(filterEnv, component); component != "" {
			cleaned = append(cleaned, component)
		}
	}
	return strings.ToUpper(strings.Join(cleaned, "_"))
}

func filterEnv(keyRune rune) rune {
	switch keyRune {
	case '=', '-', '.', ' ':
		return -1
	}
	return keyRune
}
