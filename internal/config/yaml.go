package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type yamlSpec struct {
	ApplicationName  string       `yaml:"applicationName"`
	CommandLine      string       `yaml:"commandLine"`
	CurrentDirectory string       `yaml:"currentDirectory"`
	Environment      *yamlEnvSpec `yaml:"environment"`
}

type yamlEnvSpec struct {
	Source string            `yaml:"source"`
	Path   string            `yaml:"path"`
	Vars   map[string]string `yaml:"vars"`
}

// loadYAML decodes the YAML configuration variant into the same Spec the
// native format produces. Unknown fields are fatal, mirroring the unknown
// keyword rule of the line format.
func loadYAML(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open configuration")
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	var doc yamlSpec
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Wrapf(ErrBadFormat, "%s: %v", path, err)
	}

	spec := &Spec{
		ApplicationName:  doc.ApplicationName,
		CommandLine:      doc.CommandLine,
		CurrentDirectory: doc.CurrentDirectory,
	}

	if doc.Environment != nil {
		switch doc.Environment.Source {
		case "", "default":
		case "inline":
			env := make(map[string]string, len(doc.Environment.Vars))
			for k, v := range doc.Environment.Vars {
				env[k] = v
			}
			spec.Env = env
		case "file":
			if doc.Environment.Path == "" {
				return nil, errors.Wrapf(ErrBadFormat, "%s: environment source file requires a path", path)
			}
			env, err := loadEnvFile(doc.Environment.Path, filepath.Dir(path))
			if err != nil {
				return nil, err
			}
			spec.Env = env
		default:
			return nil, errors.Wrapf(ErrBadFormat, "%s: unrecognized environment source %q", path, doc.Environment.Source)
		}
	}

	if err := spec.validate(); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return spec, nil
}
