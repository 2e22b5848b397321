package config

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrBadFormat reports a malformed configuration line, an unknown
	// keyword or an unrecognized environment source.
	ErrBadFormat = errors.New("bad configuration format")

	// ErrMissingCommandLine reports a configuration without the required
	// CommandLine keyword.
	ErrMissingCommandLine = errors.New("missing required keyword CommandLine")
)

// Spec is the validated description of the wrapped program: which executable
// to run, with what command line, working directory and environment.
//
// A Spec is produced by Load and not mutated afterwards; the controller owns
// it for the lifetime of one supervised run.
type Spec struct {
	// ApplicationName optionally names the executable to launch. When set
	// it is used exactly as given, with no search of the PATH, and the
	// first command-line token becomes an arbitrary argv[0].
	ApplicationName string

	// CommandLine is the raw command line as it appeared in the
	// configuration, including any arguments to the wrapped executable.
	// When ApplicationName is empty its first token is resolved as the
	// executable using the host's standard search rules.
	CommandLine string

	// Args is the tokenized form of CommandLine. Never empty for a valid
	// Spec.
	Args []string

	// CurrentDirectory is the working directory for the child. Empty means
	// the directory inherited from the service manager.
	CurrentDirectory string

	// Env holds environment overrides merged over the host environment.
	// A nil map means the environment is inherited unchanged.
	Env map[string]string
}

func (s *Spec) validate() error {
	if strings.TrimSpace(s.CommandLine) == "" {
		return ErrMissingCommandLine
	}
	args, err := SplitCommandLine(s.CommandLine)
	if err != nil {
		return err
	}
	s.Args = args
	return nil
}
