// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/xyproto/snakemake/internal/banner"
	"github.com/xyproto/snakemake/internal/ctxlog"
	"github.com/xyproto/snakemake/internal/flagrules"
)

// ErrListExamples is returned when the examples root cannot be listed.
var ErrListExamples = errors.New("failed to list example directories")

// Getwd returns the current working directory. Variable so tests can
// stub it.
var Getwd = os.Getwd

// SkipSet is the set of project names excluded from the run.
type SkipSet map[string]struct{}

// NewSkipSet builds a SkipSet from the trailing command-line arguments.
// Names match project directory base names exactly, case-sensitively.
func NewSkipSet(names []string) SkipSet {
	s := make(SkipSet, len(names))

	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			s[n] = struct{}{}
		}
	}

	return s
}

// Contains reports whether name is in the skip set.
func (s SkipSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

var separatorStyle = lipgloss.NewStyle().Faint(true)

// Runner drives one atomic command across every example project
// directory. All fields are set once at construction; the runner itself
// holds no mutable state between sweeps.
type Runner struct {
	Banner  banner.Renderer
	Rules   flagrules.Table
	Fs      afero.Fs
	Invoker Invoker
	Out     io.Writer
}

// Version asks sm for its version, the informative line printed once
// before the first sweep.
func (r *Runner) Version(ctx context.Context) error {
	return r.Invoker.Invoke(ctx, []string{"version"}, "")
}

// RunAll runs command once in every project directory under exampleDir,
// in directory listing order. Non-directory entries are ignored and
// skipped projects are logged but never invoked. A failing invocation
// does not stop the sweep; all failures are returned together once the
// sweep is complete. The sweep stops early only when ctx is cancelled.
func (r *Runner) RunAll(ctx context.Context, command, exampleDir string, skip SkipSet) error {
	if label, ok := banner.Label(command); ok {
		r.Banner.Render(ctx, label)
	}

	entries, err := afero.ReadDir(r.Fs, exampleDir)
	if err != nil {
		return errors.Join(ErrListExamples, err)
	}

	cwd, err := Getwd()
	if err != nil {
		cwd = "."
	}

	var errs *multierror.Error

	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if skip.Contains(name) {
			fmt.Fprintln(r.Out, "Skipping "+name)
			continue
		}

		reldir := relativeTo(cwd, filepath.Join(exampleDir, name))

		fmt.Fprintln(r.Out, separatorStyle.Render("------- "+reldir+" -------"))

		args := BuildArgs(command, r.Rules.FlagFor(name))
		if err := r.Invoker.Invoke(ctx, args, reldir); err != nil {
			ctxlog.Error(ctx, "project invocation failed", "project", name, "error", err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	return errs.ErrorOrNil()
}

// BuildArgs trims tokens and drops empty ones, so an absent extra flag
// never shows up as an empty argument in the emitted command line.
func BuildArgs(tokens ...string) []string {
	args := make([]string, 0, len(tokens))

	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			args = append(args, t)
		}
	}

	return args
}

// relativeTo prefers a path relative to cwd; when that cannot be computed
// (e.g. mixing relative and absolute paths) the joined path is used as-is.
func relativeTo(cwd, path string) string {
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return rel
}
