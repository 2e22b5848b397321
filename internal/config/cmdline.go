package config

import (
	"strings"

	"github.com/pkg/errors"
)

// SplitCommandLine tokenizes a command line on blanks and tabs. Double
// quotes group characters, including blanks, into a single token and are
// removed from it. An unbalanced quote is a format error.
func SplitCommandLine(s string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inQuote := false
	quoted := false

	flush := func() {
		if quoted || cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
			quoted = false
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			quoted = true
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, errors.Wrap(ErrBadFormat, "unbalanced quote in command line")
	}
	flush()

	if len(args) == 0 {
		return nil, errors.Wrap(ErrMissingCommandLine, "empty command line")
	}
	return args, nil
}
