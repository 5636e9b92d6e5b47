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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/reprint/internal/lit"
)

var errUnformatted = errors.New("some files are not formatted")

type fmtFlags struct {
	write, check, diff bool
	jobs               int
}

func newFmtCmd() *cobra.Command {
	var flags fmtFlags
	cmd := &cobra.Command{
		Use:   "fmt [flags] [path...]",
		Short: "Format files, or standard input if no paths are given",
		Long: `Format files, or standard input if no paths are given.

Paths may be files, directories, which are searched for .lit files, or
doublestar globs such as "testdata/**/*.lit". By default, formatted files
are printed to standard output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			resolver, err := newResolver(cmd, logger)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return formatStdin(cmd, resolver)
			}
			paths, err := expand(args)
			if err != nil {
				return err
			}
			return formatFiles(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger, resolver, paths, flags)
		},
	}
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to each file")
	cmd.Flags().BoolVar(&flags.check, "check", false, "list files that are not formatted, and fail if there are any")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "print a diff of the changes instead of the result")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files to format at once")
	return cmd
}

// outcome is the result of formatting one file.
type outcome struct {
	path     string
	before   string
	after    string
	reused   int
	err      error
	modified bool
}

func formatStdin(cmd *cobra.Command, resolver *resolver) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}
	options, err := resolver.options("")
	if err != nil {
		return err
	}
	result, err := lit.Format(string(src), options)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "could not format standard input: %v\n", err)
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), result.Text)
	return err
}

// formatFiles formats every file in paths concurrently, then reports on each
// of them in order.
func formatFiles(
	ctx context.Context,
	stdout, stderr io.Writer,
	logger *zap.Logger,
	resolver *resolver,
	paths []string,
	flags fmtFlags,
) error {
	outcomes := make([]outcome, len(paths))
	sema := semaphore.NewWeighted(int64(max(flags.jobs, 1)))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := sema.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sema.Release(1)

			outcomes[i] = formatFile(logger, resolver, path, flags.write)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	diffs := newDiffPrinter(stdout)
	var failed, unformatted int
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			failed++
			fmt.Fprintf(stderr, "could not format file %s: %v\n", o.path, o.err)
			continue
		case o.modified:
			unformatted++
		}

		switch {
		case flags.diff:
			if o.modified {
				if err := diffs.print(o.path, o.before, o.after); err != nil {
					return err
				}
			}
		case flags.check:
			if o.modified {
				fmt.Fprintln(stdout, o.path)
			}
		case !flags.write:
			if _, err := io.WriteString(stdout, o.after); err != nil {
				return err
			}
		}
	}

	logger.Debug("done",
		zap.Int("files", len(paths)),
		zap.Int("failed", failed),
		zap.Int("unformatted", unformatted),
	)
	switch {
	case failed > 0:
		return fmt.Errorf("could not format %d of %d files", failed, len(paths))
	case flags.check && unformatted > 0:
		return errUnformatted
	}
	return nil
}

// formatFile formats a single file. If write is set and the file changed, it
// is rewritten in place.
func formatFile(logger *zap.Logger, resolver *resolver, path string, write bool) outcome {
	o := outcome{path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		o.err = err
		return o
	}
	o.before = string(src)

	options, err := resolver.options(path)
	if err != nil {
		o.err = err
		return o
	}
	result, err := lit.Format(o.before, options)
	if err != nil {
		logger.Error("could not format file", zap.String("file", path), zap.Error(err))
		o.err = err
		return o
	}
	o.after = result.Text
	o.reused = result.Reused
	o.modified = o.after != o.before

	logger.Debug("formatted",
		zap.String("file", path),
		zap.Bool("modified", o.modified),
		zap.Int("reused", o.reused),
	)

	if write && o.modified {
		info, err := os.Stat(path)
		if err != nil {
			o.err = err
			return o
		}
		if err := os.WriteFile(path, []byte(o.after), info.Mode().Perm()); err != nil {
			o.err = err
		}
	}
	return o
}

// diffPrinter prints unified diffs, in color if they go to a terminal.
type diffPrinter struct {
	out                  io.Writer
	added, removed, hunk *color.Color
}

func newDiffPrinter(out io.Writer) *diffPrinter {
	p := &diffPrinter{
		out:     out,
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		hunk:    color.New(color.FgCyan),
	}

	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, c := range []*color.Color{p.added, p.removed, p.hunk} {
		if tty {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *diffPrinter) print(path, before, after string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	})
	if err != nil {
		return err
	}

	for line := range strings.Lines(diff) {
		var err error
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, err = io.WriteString(p.out, line)
		case strings.HasPrefix(line, "+"):
			_, err = p.added.Fprint(p.out, line)
		case strings.HasPrefix(line, "-"):
			_, err = p.removed.Fprint(p.out, line)
		case strings.HasPrefix(line, "@@"):
			_, err = p.hunk.Fprint(p.out, line)
		default:
			_, err = io.WriteString(p.out, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
