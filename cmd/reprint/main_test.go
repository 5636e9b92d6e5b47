// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run runs the command line with the given arguments and standard input.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errs bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errs)
	err = cmd.Execute()
	return out.String(), errs.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, text := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	return dir
}

func TestFmtStdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "{a:1}  [1,2]", "fmt", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Empty(t, stdout)

	dir := writeFiles(t, map[string]string{".reprint.yaml": "print_width: 80\n"})
	stdout, _, err = run(t, "{a:1}  [1,2]", "fmt", "--config", filepath.Join(dir, ".reprint.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "{a: 1}\n[1, 2]\n", stdout)
}

func TestFmtCheckAndWrite(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"good.lit":       "[1, 2]\n",
		"sub/bad.lit":    "[1,2]",
		"sub/ignored.md": "[1,2]",
	})
	bad := filepath.Join(dir, "sub", "bad.lit")

	stdout, _, err := run(t, "", "fmt", "--check", dir)
	require.ErrorIs(t, err, errUnformatted)
	assert.Equal(t, bad+"\n", stdout)

	stdout, _, err = run(t, "", "fmt", "--diff", filepath.Join(dir, "**", "*.lit"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "-[1,2]")
	assert.Contains(t, stdout, "+[1, 2]")
	assert.NotContains(t, stdout, "good.lit")

	_, _, err = run(t, "", "fmt", "--write", "-j", "1", dir)
	require.NoError(t, err)
	text, err := os.ReadFile(bad)
	require.NoError(t, err)
	assert.Equal(t, "[1, 2]\n", string(text))

	stdout, _, err = run(t, "", "fmt", "--check", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFmtFailure(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"ok.lit":     "[1,2]",
		"broken.lit": "[1,",
	})

	stdout, stderr, err := run(t, "", "fmt", "--write", dir)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "could not format file "+filepath.Join(dir, "broken.lit"))

	// The broken file is left alone; the other one is still formatted.
	text, err := os.ReadFile(filepath.Join(dir, "broken.lit"))
	require.NoError(t, err)
	assert.Equal(t, "[1,", string(text))
	text, err = os.ReadFile(filepath.Join(dir, "ok.lit"))
	require.NoError(t, err)
	assert.Equal(t, "[1, 2]\n", string(text))

	_, _, err = run(t, "", "fmt", filepath.Join(dir, "*.nothing"))
	require.Error(t, err)
}

func TestFmtConfig(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		".reprint.yaml": "print_width: 10\nindent_style: space\nindent_width: 2\n",
		"a/list.lit":    "[1111, 2222, 3333]",
	})
	path := filepath.Join(dir, "a", "list.lit")

	stdout, _, err := run(t, "", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  1111,\n  2222,\n  3333\n]\n", stdout)

	stdout, _, err = run(t, "", "fmt", "--width", "80", path)
	require.NoError(t, err)
	assert.Equal(t, "[1111, 2222, 3333]\n", stdout)
}

func TestDumps(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.lit": "[1, ['x']]"})
	path := filepath.Join(dir, "a.lit")

	stdout, _, err := run(t, "", "tree", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Array")
	assert.Contains(t, stdout, "'x'")

	stdout, _, err = run(t, "", "tree", "--formatted", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `\"x\"`)

	stdout, _, err = run(t, "", "ir", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "<node kind=Array>")
	assert.Contains(t, stdout, "<best-fitting")
}
