package resolve

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/djdv/go-arguments/internal/argument"
	cmds "github.com/ipfs/go-ipfs-cmds"
)

// Request resolves values from a go-ipfs-cmds request.
// Options are looked up by property name;
// request arguments are assigned to positional properties.
type Request struct {
	request *cmds.Request
}

// NewRequest returns a tokenizer for the request.
func NewRequest(request *cmds.Request) *Request {
	return &Request{request: request}
}

func (req *Request) Tokenize(_ []string, properties []*argument.Descriptor) (argument.Candidates, error) {
	var (
		candidates = make(argument.Candidates, len(properties))
		options    = req.request.Options
		arguments  = req.request.Arguments
	)
	for _, desc := range properties {
		// NOTE: The cmds-lib already stores values
		// into a single map key using the primary name.
		if option, provided := options[desc.Name]; provided {
			candidates[desc.Name] = optionString(option)
		}
	}
	positional := positionalProperties(properties)
	for position, value := range arguments {
		if position >= len(positional) {
			return nil, fmt.Errorf("%w: %q (no property at position %d)",
				ErrUnexpectedArgument, value, position)
		}
		if err := addCandidate(candidates, positional[position], value); err != nil {
			return nil, err
		}
	}
	return candidates, nil
}

// positionalProperties returns the positional properties
// ordered by their position.
func positionalProperties(properties []*argument.Descriptor) []*argument.Descriptor {
	positional := make([]*argument.Descriptor, 0, len(properties))
	for _, desc := range properties {
		if desc.Positional() {
			positional = append(positional, desc)
		}
	}
	sort.SliceStable(positional, func(i, j int) bool {
		return positional[i].Position < positional[j].Position
	})
	return positional
}

func optionString(option any) string {
	switch typed := option.(type) {
	case string:
		return typed
	case []string:
		var (
			sb     strings.Builder
			writer = csv.NewWriter(&sb)
		)
		if err := writer.Write(typed); err != nil {
			return strings.Join(typed, ",")
		}
		writer.Flush()
		return strings.TrimSuffix(sb.String(), "\n")
	default:
		return fmt.Sprint(typed)
	}
}
