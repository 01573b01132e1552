package metadata

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

func isExcludedRune(r rune) bool {
	return unicode.IsSpace(r) ||
		r == '=' ||
		r == '-' ||
		r == '.' ||
		r == '_'
}

func filterCli(parameterRune rune) rune {
	if isExcludedRune(parameterRune) {
		return -1
	}
	return parameterRune
}

// argumentName derives a command-line name from a Go identifier.
// E.g. `ServerPort` becomes `server-port`.
func argumentName(fieldName string) string {
	var (
		split   = camelcase.Split(fieldName)
		cleaned = make([]string, 0, len(split))
	)
	for _, component := range split {
		if component = strings.Map(filterCli, component); component != "" {
			cleaned = append(cleaned, component)
		}
	}
	return strings.ToLower(strings.Join(cleaned, "-"))
}

// defaultShortcut returns the first character of the name.
func defaultShortcut(name string) string {
	for _, r := range name {
		return string(r)
	}
	return ""
}
