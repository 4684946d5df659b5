package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given args and returns its stdout.
// Logging is routed to a temp file so tests never touch the real state dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NODEPACK_LOG_PATH", filepath.Join(t.TempDir(), "nodepack.log"))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestPackCommand_EndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mock packing tool requires a POSIX shell")
	}

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{"scripts":{"prepack":"x","build":"y"}}`), 0o644))

	tool := filepath.Join(t.TempDir(), "npm")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\necho \"archive.tgz\"\n"), 0o755))

	out, err := execute(t, "pack", "--tool", tool, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "archive.tgz")

	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	scripts, ok := doc["scripts"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, scripts, "prepack")
	assert.Equal(t, "y", scripts["build"])
}

func TestRewriteShebangsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not meaningful on windows")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "cli")
	require.NoError(t, os.WriteFile(script, []byte("#!/usr/bin/env node\nrun()\n"), 0o755))

	out, err := execute(t, "rewrite-shebangs", "--node", "/opt/node/bin/node", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "rewrote 1 file(s)")

	data, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Equal(t, "/opt/node/bin/node\nrun()\n", string(data))
}

func TestLogPathConfiguration(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nodepack.log")
	t.Setenv("NODEPACK_LOG_PATH", logPath)

	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(logPath)
	require.NoError(t, err, "log file should be created at the configured path")
}

func TestRewriteShebangsCommand_RequiresInterpreter(t *testing.T) {
	dir := t.TempDir()

	// Flags are sticky across executions on the shared command, so clear --node explicitly
	_, err := execute(t, "rewrite-shebangs", "--node=", dir)
	require.Error(t, err)
}
