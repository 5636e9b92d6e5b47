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
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bufbuild/reprint/format"
	"github.com/bufbuild/reprint/internal/lit"
	"github.com/bufbuild/reprint/syntax"
)

func newIRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ir <file>",
		Short: "Print the document a file is formatted from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dump(cmd, args[0], func(root *syntax.Node, r *resolver) (string, error) {
				options, err := r.options(args[0])
				if err != nil {
					return "", err
				}
				return format.Document(root, lit.Rule(), options).Dump(lit.Names), nil
			})
		},
	}
}

func newTreeCmd() *cobra.Command {
	var formatted bool
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the syntax tree of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dump(cmd, args[0], func(root *syntax.Node, r *resolver) (string, error) {
				if !formatted {
					return syntax.Dump(root, lit.Names), nil
				}
				options, err := r.options(args[0])
				if err != nil {
					return "", err
				}
				result, err := format.Format(root, lit.Rule(), options)
				if err != nil {
					return "", err
				}
				return syntax.Dump(result.Tree, lit.Names), nil
			})
		},
	}
	cmd.Flags().BoolVar(&formatted, "formatted", false, "print the tree of the formatted file instead")
	return cmd
}

// dump parses a file, and prints what show makes of it.
func dump(cmd *cobra.Command, path string, show func(*syntax.Node, *resolver) (string, error)) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	resolver, err := newResolver(cmd, logger)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	root, err := lit.Parse(string(src))
	if err != nil {
		return fmt.Errorf("%s:%w", path, err)
	}

	out, err := show(root, resolver)
	if err != nil {
		return err
	}
	logger.Debug("dumped", zap.String("file", path), zap.Int("bytes", len(out)))
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}
