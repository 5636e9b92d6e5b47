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
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// expand turns command-line arguments into a sorted list of files.
//
// Globs are expanded, and directories are searched for .lit files. A glob
// that matches nothing is an error.
func expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches := []string{arg}
		if hasMeta(arg) {
			var err error
			matches, err = doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %q", arg)
			}
		}

		for _, path := range matches {
			info, err := os.Stat(path)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				paths = append(paths, path)
				continue
			}

			found, err := doublestar.Glob(os.DirFS(path), "**/*.lit", doublestar.WithFilesOnly())
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				paths = append(paths, filepath.Join(path, filepath.FromSlash(f)))
			}
		}
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// hasMeta returns whether path has any glob metacharacters.
func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{\\")
}
