package commands

import "strings"

// Tokenize splits a command line on whitespace. A double-quoted substring is
// one token with the quotes removed, so `Push "Dock 2" "Ore Ice"` yields
// three tokens. An unterminated quote runs to the end of the line.
func Tokenize(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	hasToken := false

	flush := func() {
		if hasToken {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		hasToken = false
	}

	for _, r := range line {
		switch {
		case r == '"':
			if inQuotes {
				flush()
			} else {
				flush()
				hasToken = true
			}
			inQuotes = !inQuotes
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			current.WriteRune(r)
			hasToken = true
		}
	}
	flush()
	return tokens
}
