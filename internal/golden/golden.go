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

// Package golden runs table-driven tests whose table lives in the file
// system: each input file is a test case, and its expected outputs sit next
// to it.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a directory of test cases.
type Corpus struct {
	// The directory holding the test cases, relative to the file that calls
	// [Corpus.Run].
	Root string

	// An environment variable holding a glob. Test cases whose path matches
	// it have their outputs rewritten instead of checked.
	Refresh string

	// The extension (without a dot) of input files, e.g. "lit".
	Extension string

	// The outputs of each test case. An output file that does not exist is
	// expected to be empty.
	Outputs []Output

	// Test runs one test case and returns one string per element of Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one of the outputs of a test case.
type Output struct {
	// Appended to the input's name to get the output's name: for an input
	// "a.lit" and an extension "fmt", the output is "a.lit.fmt".
	Extension string

	// Compares outputs. If nil, they are compared byte for byte.
	Compare Compare
}

// Compare compares a test output with the expected one, and returns a
// description of the mismatch, or "" if there is none.
type Compare func(got, want string) string

// Run runs every test case in the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	dir := callerDir(0)
	root := filepath.Join(dir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.TrimPrefix(filepath.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: could not walk %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("golden: no .%s files in %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		// Refreshing never counts as passing.
		t.Logf("golden: refreshing outputs matching %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, path := range cases {
		name, _ := filepath.Rel(dir, path)
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: could not read %q: %v", path, err)
			}
			results := c.Test(t, name, string(input))

			rewrite := refresh != "" && doublestar.MatchUnvalidated(refresh, filepath.ToSlash(name))
			for i, output := range c.Outputs {
				path := fmt.Sprint(path, ".", output.Extension)
				if rewrite {
					write(t, path, results[i])
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("golden: could not read %q: %v", path, err)
					continue
				}
				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if diff := compare(results[i], string(want)); diff != "" {
					t.Errorf("golden: mismatch for %q:\n%s", path, diff)
				}
			}
		})
	}
}

func write(t *testing.T, path, text string) {
	if text == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("golden: could not delete %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Errorf("golden: could not write %q: %v", path, err)
	}
}

var (
	added   = color.New(color.FgHiGreen, color.Bold)
	removed = color.New(color.FgHiRed, color.Bold)
)

// Diff is the default [Compare]. Mismatches are described with a colored
// unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("golden: could not determine the test's directory")
	}
	return filepath.Dir(file)
}
