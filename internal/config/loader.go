package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Load reads a service configuration file and returns the launch
// specification it describes.
//
// The native format is one Keyword=Value pair per line. Blank lines are
// ignored; a line without '=' or with an unrecognized keyword is fatal.
// Recognized keywords are ApplicationName, CommandLine (required),
// CurrentDirectory and Environment. Files ending in .yaml or .yml are
// decoded as the YAML variant instead.
func Load(path string) (*Spec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open configuration")
	}
	defer f.Close()

	spec, err := parse(f, filepath.Dir(path))
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return spec, nil
}

func parse(r io.Reader, dir string) (*Spec, error) {
	spec := &Spec{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		keyword, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.Wrapf(ErrBadFormat, "line %d: expected Keyword=Value", lineNo)
		}

		switch keyword {
		case "ApplicationName":
			spec.ApplicationName = value
		case "CommandLine":
			spec.CommandLine = value
		case "CurrentDirectory":
			spec.CurrentDirectory = value
		case "Environment":
			env, err := parseEnvSource(value, scanner, dir, &lineNo)
			if err != nil {
				return nil, err
			}
			spec.Env = env
		default:
			return nil, errors.Wrapf(ErrBadFormat, "line %d: unknown keyword %q", lineNo, keyword)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read configuration")
	}

	if err := spec.validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// parseEnvSource interprets the Environment keyword value, which has the
// grammar source[:path] with source one of default, inline or file. The
// inline source consumes the remainder of the configuration file as
// Name=Value overrides.
func parseEnvSource(value string, inline *bufio.Scanner, dir string, lineNo *int) (map[string]string, error) {
	switch value {
	case "default":
		return nil, nil
	case "inline":
		return parseEnvLines(inline, lineNo)
	}

	source, path, ok := strings.Cut(value, ":")
	if !ok || source != "file" {
		return nil, errors.Wrapf(ErrBadFormat, "line %d: unrecognized environment source %q", *lineNo, value)
	}
	return loadEnvFile(path, dir)
}

func loadEnvFile(path, dir string) (map[string]string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open environment file")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	env, err := parseEnvLines(scanner, &lineNo)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return env, nil
}

func parseEnvLines(scanner *bufio.Scanner, lineNo *int) (map[string]string, error) {
	env := make(map[string]string)
	for scanner.Scan() {
		*lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.Wrapf(ErrBadFormat, "environment line %d: expected Name=Value", *lineNo)
		}
		env[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	return env, nil
}
