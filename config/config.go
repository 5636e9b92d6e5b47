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

// Package config loads formatter options from configuration files.
//
// A configuration file is named .reprint.yaml, .reprint.yml or
// .reprint.toml, and may set any of these keys:
//
//	print_width: 100      # columns
//	indent_style: space   # tab or space
//	indent_width: 4       # columns per level of indentation
//	tab_width: 8          # columns per tab
//
// Keys that are not set keep the printer's defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/reprint/printer"
)

// ErrInvalid is wrapped by errors for configuration files that cannot be
// parsed, or that set a key to an invalid value.
var ErrInvalid = errors.New("invalid configuration")

// Names are the file names [Find] looks for, in order of preference.
var Names = []string{".reprint.yaml", ".reprint.yml", ".reprint.toml"}

// File is the contents of a configuration file. Unset keys are nil.
type File struct {
	PrintWidth  *int    `yaml:"print_width"  toml:"print_width"`
	IndentStyle *string `yaml:"indent_style" toml:"indent_style"`
	IndentWidth *int    `yaml:"indent_width" toml:"indent_width"`
	TabWidth    *int    `yaml:"tab_width"    toml:"tab_width"`
}

// Load loads the configuration file at path. Its format is chosen by its
// extension.
func Load(path string) (printer.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return printer.Options{}, err
	}

	var options printer.Options
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		options, err = ParseYAML(data)
	case ".toml":
		options, err = ParseTOML(data)
	default:
		err = fmt.Errorf("%w: unknown file extension %q", ErrInvalid, ext)
	}
	if err != nil {
		return printer.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return options, nil
}

// ParseYAML parses a YAML configuration file.
func ParseYAML(data []byte) (printer.Options, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return printer.Options{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return file.Options()
}

// ParseTOML parses a TOML configuration file.
func ParseTOML(data []byte) (printer.Options, error) {
	var file File
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return printer.Options{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return printer.Options{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	return file.Options()
}

// Options validates the file, and returns the options it sets. Unset options
// are left zero.
func (f *File) Options() (printer.Options, error) {
	var options printer.Options
	positive := func(key string, value *int, field *int) error {
		if value == nil {
			return nil
		}
		if *value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, key, *value)
		}
		*field = *value
		return nil
	}

	if err := errors.Join(
		positive("print_width", f.PrintWidth, &options.PrintWidth),
		positive("indent_width", f.IndentWidth, &options.IndentWidth),
		positive("tab_width", f.TabWidth, &options.TabWidth),
	); err != nil {
		return printer.Options{}, err
	}

	if f.IndentStyle != nil {
		style, err := printer.ParseIndentStyle(*f.IndentStyle)
		if err != nil {
			return printer.Options{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		options.IndentStyle = style
	}
	return options, nil
}

// Find searches dir and its parents for a configuration file, and returns
// the path of the first one found.
func Find(dir string) (path string, ok bool, err error) {
	if dir == "" {
		dir = "."
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}

	for {
		for _, name := range Names {
			path := filepath.Join(dir, name)
			_, err := os.Stat(path)
			switch {
			case err == nil:
				return path, true, nil
			case !errors.Is(err, os.ErrNotExist):
				return "", false, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
