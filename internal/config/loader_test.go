package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf",
		"ApplicationName=/opt/app/bin/server\n"+
			"CommandLine=server --port 8080\n"+
			"CurrentDirectory=/opt/app\n"+
			"Environment=default\n")

	spec, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/opt/app/bin/server", spec.ApplicationName)
	require.Equal(t, "server --port 8080", spec.CommandLine)
	require.Equal(t, []string{"server", "--port", "8080"}, spec.Args)
	require.Equal(t, "/opt/app", spec.CurrentDirectory)
	require.Nil(t, spec.Env)
}

func TestLoadCommandLineOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf", "CommandLine=sleep 30\n")

	spec, err := Load(path)
	require.NoError(t, err)

	require.Empty(t, spec.ApplicationName)
	require.Equal(t, []string{"sleep", "30"}, spec.Args)
	require.Nil(t, spec.Env)
}

func TestLoadSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf", "\nCommandLine=true\n\n")

	spec, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "true", spec.CommandLine)
}

func TestLoadMissingCommandLine(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf", "CurrentDirectory=/tmp\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrMissingCommandLine)
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf", "CommandLine=true\nthis line has no equals\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestLoadRejectsUnknownKeyword(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf", "CommandLine=true\nRestartPolicy=always\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestLoadInlineEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf",
		"CommandLine=server\n"+
			"Environment=inline\n"+
			"PORT=8080\n"+
			"\n"+
			"DATA_DIR=/var/lib/app\n")

	spec, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"PORT":     "8080",
		"DATA_DIR": "/var/lib/app",
	}, spec.Env)
}

func TestLoadInlineEnvironmentRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf",
		"CommandLine=server\nEnvironment=inline\nnot-a-pair\n")

	_, err := Load(path)
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestLoadFileEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "service.env", "PORT=9090\nMODE=batch\n")
	path := writeConfig(t, dir, "service.conf",
		"CommandLine=server\nEnvironment=file:service.env\n")

	spec, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, map[string]string{"PORT": "9090", "MODE": "batch"}, spec.Env)
}

func TestLoadFileEnvironmentAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	envPath := writeConfig(t, dir, "abs.env", "NAME=value\n")
	path := writeConfig(t, dir, "service.conf",
		"CommandLine=server\nEnvironment=file:"+envPath+"\n")

	spec, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"NAME": "value"}, spec.Env)
}

func TestLoadFileEnvironmentMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf",
		"CommandLine=server\nEnvironment=file:missing.env\n")

	_, err := Load(path)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvironmentSourceErrors(t *testing.T) {
	cases := map[string]string{
		"missing colon after file": "Environment=file",
		"unknown source":           "Environment=registry",
		"unknown source with path": "Environment=registry:hive",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeConfig(t, dir, "service.conf", "CommandLine=server\n"+line+"\n")

			_, err := Load(path)
			require.ErrorIs(t, err, ErrBadFormat)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.conf"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadStripsCarriageReturns(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf", "CommandLine=server --flag\r\n")

	spec, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"server", "--flag"}, spec.Args)
}

func TestLoadErrorsKeepFormatKind(t *testing.T) {
	// Every malformed shape surfaces the same bad-format kind.
	dir := t.TempDir()
	path := writeConfig(t, dir, "service.conf", "CommandLine=server\nEnvironment=file\n")

	_, err := Load(path)
	require.True(t, errors.Is(err, ErrBadFormat))
}
