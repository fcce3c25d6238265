// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"github.com/xyproto/snakemake/internal/banner"
	"github.com/xyproto/snakemake/internal/chain"
	"github.com/xyproto/snakemake/internal/ctxlog"
	"github.com/xyproto/snakemake/internal/flagrules"
	"github.com/xyproto/snakemake/internal/runner"
	"github.com/xyproto/snakemake/internal/smtool"
)

const (
	dryRunFlag      = "dry-run"
	examplesDirFlag = "examples-dir"
	rulesFlag       = "rules"
)

// ErrInvocations is returned when one or more project invocations failed.
// The run itself always completes the full chain first.
var ErrInvocations = errors.New("one or more project invocations failed")

// FsFactory returns the filesystem used to list the example directories
// and read the rules file. Variable so tests can stub it.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// RootCmd is the root command for the CLI.
var RootCmd = New()

// New builds the root command. Tests construct a fresh command per run so
// no parsed flag state carries over between runs.
func New() *cli.Command {
	return &cli.Command{
		Name:  "smbatch",
		Usage: "smbatch [command[:command...]] [skipname ...]",
		Description: `Smbatch cleans, builds or runs every example project in one go.
The first argument is the command given to sm; a colon-separated argument
such as "fastclean:build" runs each command in turn across all examples.
Without arguments the "fastclean:build" chain is run. Any further
arguments name example projects to skip.`,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        dryRunFlag,
				Aliases:     []string{"n"},
				Usage:       "Echo the sm command lines without running them",
				Value:       false,
				DefaultText: "false",
			},
			&cli.StringFlag{
				Name:        examplesDirFlag,
				Usage:       "Directory whose subdirectories are the example projects",
				Value:       "examples",
				DefaultText: "examples",
			},
			&cli.StringFlag{
				Name:      rulesFlag,
				Usage:     "YAML file with additional per-project flag rules",
				TakesFile: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	// A missing sm is a fatal precondition, checked once before any
	// directory is listed.
	tool, err := smtool.Find()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	args := cmd.Args().Slice()

	token := ""
	if len(args) > 0 {
		token = strings.TrimSpace(args[0])
	}

	cmds := chain.Default()
	if token != "" {
		cmds = chain.Expand(token)
	}

	var skipNames []string
	if len(args) > 1 {
		skipNames = args[1:]
	}

	skip := runner.NewSkipSet(skipNames)

	fsys := FsFactory()

	rules := flagrules.Defaults()

	if path := cmd.String(rulesFlag); path != "" {
		loaded, err := flagrules.Load(fsys, path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		rules = append(loaded, rules...)
	}

	var inv runner.Invoker = &runner.ExecInvoker{Path: tool.Path, Out: cmd.Writer, Err: cmd.ErrWriter}
	if cmd.Bool(dryRunFlag) {
		inv = &runner.DryRunInvoker{Path: tool.Path, Out: cmd.Writer}
	}

	r := &runner.Runner{
		Banner:  banner.New(cmd.Writer),
		Rules:   rules,
		Fs:      fsys,
		Invoker: inv,
		Out:     cmd.Writer,
	}

	if err := r.Version(ctx); err != nil {
		ctxlog.Warn(ctx, "could not query sm version", "error", err)
	}

	exampleDir := cmd.String(examplesDirFlag)

	var errs *multierror.Error

	for _, c := range cmds {
		err := r.RunAll(ctx, c, exampleDir, skip)
		if err == nil {
			continue
		}

		if ctx.Err() != nil {
			return err
		}

		errs = multierror.Append(errs, err)
	}

	fmt.Fprintln(cmd.Writer, "Done.")

	if err := errs.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvocations, err)
	}

	return nil
}
