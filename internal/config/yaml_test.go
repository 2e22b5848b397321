package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadYAMLFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.yaml", `
applicationName: /opt/app/bin/server
commandLine: server --port 8080
currentDirectory: /opt/app
environment:
  source: inline
  vars:
    PORT: "8080"
`)

	spec, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/opt/app/bin/server", spec.ApplicationName)
	require.Equal(t, []string{"server", "--port", "8080"}, spec.Args)
	require.Equal(t, "/opt/app", spec.CurrentDirectory)
	require.Equal(t, map[string]string{"PORT": "8080"}, spec.Env)
}

func TestLoadYAMLDefaultEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.yml", "commandLine: sleep 30\n")

	spec, err := Load(path)
	require.NoError(t, err)
	require.Nil(t, spec.Env)
}

func TestLoadYAMLFileEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "service.env", "MODE=batch\n")
	path := writeConfig(t, dir, "service.yaml", `
commandLine: server
environment:
  source: file
  path: service.env
`)

	spec, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"MODE": "batch"}, spec.Env)
}

func TestLoadYAMLRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.yaml", "commandLine: server\nrestartPolicy: always\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestLoadYAMLRejectsUnknownEnvironmentSource(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.yaml", `
commandLine: server
environment:
  source: registry
`)

	_, err := Load(path)
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestLoadYAMLFileSourceRequiresPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.yaml", `
commandLine: server
environment:
  source: file
`)

	_, err := Load(path)
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestLoadYAMLMissingCommandLine(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.yaml", "currentDirectory: /tmp\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrMissingCommandLine)
}
