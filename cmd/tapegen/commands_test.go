package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/tapegen"
	"github.com/ava12/tapegen/grammar"
)

const phrases = `
symbols:
  greeting: union(lit(text, "hi"), lit(text, "hello"))
  noun: >-
    union(seq(lit(text, "cat"), lit(gloss, "CAT")),
          seq(lit(text, "dog"), lit(gloss, "DOG")))
  phrase: seq(greeting, lit(text, " "), noun)
`

var allPhrases = []string{
	`{"gloss":"CAT","text":"hi cat"}`,
	`{"gloss":"DOG","text":"hi dog"}`,
	`{"gloss":"CAT","text":"hello cat"}`,
	`{"gloss":"DOG","text":"hello dog"}`,
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	e := root.Execute()
	return stdout.String(), stderr.String(), e
}

func lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestGenerateCommand(t *testing.T) {
	file := writeFile(t, "phrases.yaml", phrases)
	out, _, err := run(t, "generate", file, "--format", "json")
	require.NoError(t, err)
	assert.ElementsMatch(t, allPhrases, lines(out))
}

func TestGenerateSymbol(t *testing.T) {
	file := writeFile(t, "phrases.yaml", phrases)
	out, _, err := run(t, "generate", file, "greeting", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{`{"text":"hi"}`, `{"text":"hello"}`}, lines(out))
}

func TestGenerateTable(t *testing.T) {
	file := writeFile(t, "phrases.yaml", phrases)
	out, _, err := run(t, "generate", file, "--format", "table")
	require.NoError(t, err)
	for _, s := range []string{"GLOSS", "TEXT", `"hello dog"`, `"CAT"`} {
		assert.Contains(t, strings.ToUpper(out), strings.ToUpper(s))
	}
}

func TestParseCommand(t *testing.T) {
	file := writeFile(t, "phrases.yaml", phrases)
	out, _, err := run(t, "parse", file, "phrase", "--format", "json", "--input", "text=hi dog")
	require.NoError(t, err)
	assert.Equal(t, []string{`{"gloss":"DOG","text":"hi dog"}`}, lines(out))

	out, _, err = run(t, "parse", file, "--format", "json", "-i", "gloss=CAT")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{allPhrases[0], allPhrases[2]}, lines(out))
}

func TestSampleCommand(t *testing.T) {
	file := writeFile(t, "phrases.yaml", phrases)
	out, stderr, err := run(t, "sample", file, "-n", "3", "--seed", "7", "--format", "json", "--summary")
	require.NoError(t, err)

	got := lines(out)
	assert.Len(t, got, 3)
	for _, line := range got {
		var r map[string]string
		require.NoError(t, json.Unmarshal([]byte(line), &r))
		assert.Contains(t, allPhrases, line)
	}
	assert.Contains(t, stderr, "3 records")

	again, _, err := run(t, "sample", file, "-n", "3", "--seed", "7", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestSymbolsCommand(t *testing.T) {
	file := writeFile(t, "phrases.yaml", phrases)
	out, _, err := run(t, "symbols", file)
	require.NoError(t, err)

	for _, s := range []string{"greeting", "noun", "phrase", "gloss, text", "default"} {
		assert.Contains(t, out, s)
	}
	assert.Equal(t, 1, strings.Count(out, "default"))
}

func TestEnvironmentSettings(t *testing.T) {
	file := writeFile(t, "phrases.yaml", phrases)
	t.Setenv("TAPEGEN_MAX_RESULTS", "1")
	t.Setenv("TAPEGEN_FORMAT", "json")
	out, _, err := run(t, "generate", file)
	require.NoError(t, err)
	assert.Len(t, lines(out), 1)
}

func TestConfigFile(t *testing.T) {
	file := writeFile(t, "phrases.yaml", phrases)
	config := writeFile(t, "config.yaml", "max-results: 2\nformat: json\n")
	out, _, err := run(t, "generate", file, "--config", config)
	require.NoError(t, err)
	assert.Len(t, lines(out), 2)

	out, _, err = run(t, "generate", file, "--config", config, "--max-results", "3")
	require.NoError(t, err)
	assert.Len(t, lines(out), 3)

	_, _, err = run(t, "generate", file, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCommandErrors(t *testing.T) {
	broken := writeFile(t, "broken.yaml", "symbols:\n  a: seq(\n")
	_, _, err := run(t, "generate", broken)
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(err))

	file := writeFile(t, "phrases.yaml", phrases)
	_, _, err = run(t, "generate", file, "nothing")
	require.Error(t, err)
	assert.True(t, tapegen.HasCode(err, grammar.UnknownSymbolError))
	assert.Equal(t, 4, exitCode(err))

	_, _, err = run(t, "generate")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}
