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
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bufbuild/reprint/config"
	"github.com/bufbuild/reprint/printer"
)

// resolver finds the printer options for each file.
type resolver struct {
	logger *zap.Logger
	config string // From --config, if set.
	width  int    // From --width, if set.
}

func newResolver(cmd *cobra.Command, logger *zap.Logger) (*resolver, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return nil, err
	}
	return &resolver{logger: logger, config: path, width: width}, nil
}

// options returns the options for formatting the file at path. For standard
// input, path is empty.
func (r *resolver) options(path string) (printer.Options, error) {
	source := r.config
	if source == "" {
		found, ok, err := config.Find(filepath.Dir(path))
		if err != nil {
			return printer.Options{}, err
		}
		if ok {
			source = found
		}
	}

	var options printer.Options
	if source != "" {
		var err error
		options, err = config.Load(source)
		if err != nil {
			return printer.Options{}, err
		}
		r.logger.Debug("loaded configuration", zap.String("file", path), zap.String("config", source))
	}
	if r.width > 0 {
		options.PrintWidth = r.width
	}
	return options.WithDefaults(), nil
}
