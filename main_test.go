package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureRoot = filepath.Join("internal", "bindgen", "testdata", "zydis")

func runApp(args ...string) error {
	return newApp().Run(context.Background(), append([]string{"zydis-bindgen"}, args...))
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"one argument", []string{fixtureRoot}},
		{"three arguments", []string{fixtureRoot, "rust", "extra"}},
		{"unknown mode", []string{fixtureRoot, "java"}},
		{"unknown casing", []string{"--casing", "bogus", fixtureRoot, "rust"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runApp(tt.args...)

			var uerr *usageError
			require.ErrorAs(t, err, &uerr)
			assert.Contains(t, uerr.msg, "Usage: zydis-bindgen <zydis path> <rust|py|pxd|cs|ocaml>")
			assert.Equal(t, 2, exitCode(err))
		})
	}
}

func TestProcessingErrorExitCode(t *testing.T) {
	err := runApp("--out-dir", t.TempDir(), t.TempDir(), "rust")
	require.ErrorIs(t, err, os.ErrNotExist)

	var uerr *usageError
	assert.False(t, errors.As(err, &uerr))
	assert.Equal(t, 1, exitCode(err))
}

func TestOutDir(t *testing.T) {
	tests := []struct {
		mode string
		file string
		want string
	}{
		{"rust", "zydis_enums.rs", "pub enum MachineMode {"},
		{"py", "zydis_enums.py", "class MachineMode(IntEnum):"},
		{"cs", "ZydisEnums.cs", "public enum MachineMode"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			require.NoError(t, runApp("--out-dir", dir, fixtureRoot, tt.mode))

			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestCasingFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runApp("--casing", "upperCamel", "--out-dir", dir, fixtureRoot, "rust"))

	data, err := os.ReadFile(filepath.Join(dir, "zydis_enums.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "    LongCompat32 = 1,\n")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 2, exitCode(&usageError{msg: "Usage"}))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
