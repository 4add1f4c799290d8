// Package parser turns one raw input line into a structured command
// descriptor. Parse is total: it never fails, performs no I/O, and
// never mutates the registries it consults.
package parser

import (
	"strings"

	"xcsh/pkg/shelltypes"
)

// DomainChecker answers whether a token names a known domain in any
// command source. The navigation validator satisfies this.
type DomainChecker interface {
	IsValidDomain(name string) bool
}

// Parse classifies input, in order: empty line, "/domain ..." direct
// navigation, bare "/" root marker, built-in command, ordinary command.
// An unknown "/x" is not navigation; it falls through to ordinary
// tokenization and the executor re-validates.
func Parse(input string, domains DomainChecker) shelltypes.ParsedCommand {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return shelltypes.ParsedCommand{Raw: "", Args: []string{}}
	}

	if trimmed == "/" {
		return shelltypes.ParsedCommand{Raw: "/", IsBuiltin: true, Args: []string{}}
	}

	if strings.HasPrefix(trimmed, "/") && len(trimmed) > 1 {
		tokens := SplitArgs(trimmed[1:])
		if len(tokens) > 0 && domains != nil && domains.IsValidDomain(tokens[0]) {
			cmd := shelltypes.ParsedCommand{
				Raw:                trimmed,
				IsDirectNavigation: true,
				TargetDomain:       tokens[0],
				Args:               []string{},
			}
			if len(tokens) > 1 {
				cmd.TargetAction = tokens[1]
				cmd.Args = tokens[2:]
			}
			return cmd
		}
		// Unknown "/x" falls through to ordinary classification.
	}

	tokens := SplitArgs(trimmed)
	if len(tokens) == 0 {
		return shelltypes.ParsedCommand{Raw: trimmed, Args: []string{}}
	}

	if shelltypes.Builtins[tokens[0]] {
		return shelltypes.ParsedCommand{
			Raw:       trimmed,
			IsBuiltin: true,
			Args:      tokens[1:],
		}
	}

	return shelltypes.ParsedCommand{Raw: trimmed, Args: tokens}
}

// FirstToken returns the first whitespace-delimited token of a parsed
// command's raw line. Built-in dispatch keys on this.
func FirstToken(cmd shelltypes.ParsedCommand) string {
	tokens := SplitArgs(cmd.Raw)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// SplitArgs splits a line into tokens on spaces, keeping quoted spans
// (single or double quotes) together and stripping the quotes.
func SplitArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)

	for _, r := range input {
		switch {
		case r == '"' || r == '\'':
			if inQuote && r == quoteChar {
				inQuote = false
				quoteChar = 0
			} else if !inQuote {
				inQuote = true
				quoteChar = r
			} else {
				current.WriteRune(r)
			}
		case (r == ' ' || r == '\t') && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args
}
