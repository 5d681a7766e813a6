package command

import (
	"errors"
	"fmt"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
)

// ResolveSignature builds the option schemas of a command from its declared
// params, in declaration order. It runs once when the command is defined.
func ResolveSignature(node string, params []Param) ([]*OptionSchema, error) {
	if len(params) > domain.MaxOptions {
		return nil, &DefinitionError{Node: node, Reason: fmt.Sprintf("at most %d options are allowed", domain.MaxOptions)}
	}

	schemas := make([]*OptionSchema, 0, len(params))
	argNames := make(map[string]struct{}, len(params))
	wireNames := make(map[string]struct{}, len(params))

	for _, p := range params {
		s, err := p.schema()
		if err != nil {
			var de *DefinitionError
			if errors.As(err, &de) {
				return nil, &DefinitionError{Node: node + "." + de.Node, Reason: de.Reason}
			}
			return nil, fmt.Errorf("resolving '%s': %w", node, err)
		}

		if _, dup := argNames[s.ArgName]; dup {
			return nil, &DefinitionError{Node: node, Reason: fmt.Sprintf("duplicate parameter '%s'", s.ArgName)}
		}
		if _, dup := wireNames[s.Name]; dup {
			return nil, &DefinitionError{Node: node, Reason: fmt.Sprintf("duplicate option name '%s'", s.Name)}
		}

		argNames[s.ArgName] = struct{}{}
		wireNames[s.Name] = struct{}{}
		schemas = append(schemas, s)
	}

	return schemas, nil
}

func findSchema(schemas []*OptionSchema, wireName string) *OptionSchema {
	for _, s := range schemas {
		if s.Name == wireName {
			return s
		}
	}

	return nil
}
