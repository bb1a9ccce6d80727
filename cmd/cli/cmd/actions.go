package cmd

import (
	"fmt"
	"strings"

	"service-basket/core/types"
)

// parseActions turns CLI tokens into actions, in order.
//
//	Photography            select
//	+Photography           select
//	-Photography           deselect (needs "--" before the first one)
//	select:Photography     select
//	deselect:Photography   deselect
func parseActions(tokens []string) ([]types.Action, error) {
	actions := make([]types.Action, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		var a types.Action
		switch {
		case strings.HasPrefix(tok, "+"):
			a = types.Select(types.Service(tok[1:]))
		case strings.HasPrefix(tok, "-"):
			a = types.Deselect(types.Service(tok[1:]))
		case strings.Contains(tok, ":"):
			kind, name, _ := strings.Cut(tok, ":")
			switch strings.ToLower(kind) {
			case "select":
				a = types.Select(types.Service(name))
			case "deselect":
				a = types.Deselect(types.Service(name))
			default:
				return nil, fmt.Errorf("unknown action %q in %q", kind, tok)
			}
		default:
			a = types.Select(types.Service(tok))
		}

		if a.Service == "" {
			return nil, fmt.Errorf("missing service name in %q", tok)
		}
		actions = append(actions, a)
	}
	return actions, nil
}
