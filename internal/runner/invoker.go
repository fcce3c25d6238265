// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrInvocationFailed is returned when the external tool exits non-zero
// or cannot be started.
var ErrInvocationFailed = errors.New("invocation failed")

// Invoker runs one assembled sm command line. args never contains the
// executable name itself; dir may be empty to run from the current
// working directory.
type Invoker interface {
	Invoke(ctx context.Context, args []string, dir string) error
}

var (
	_ Invoker = (*ExecInvoker)(nil)
	_ Invoker = (*DryRunInvoker)(nil)
)

// ExecInvoker launches the tool and waits for it to finish, streaming its
// output to the caller's writers. The command line is echoed before it
// runs.
type ExecInvoker struct {
	Path string // full path to the sm executable
	Out  io.Writer
	Err  io.Writer
}

// Invoke implements the Invoker interface for ExecInvoker.
func (i *ExecInvoker) Invoke(ctx context.Context, args []string, dir string) error {
	fmt.Fprintln(i.Out, Describe(i.Path, args, dir))

	cmd := exec.CommandContext(ctx, i.Path, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = i.Out
	cmd.Stderr = i.Err

	if err := cmd.Run(); err != nil {
		return errors.Join(ErrInvocationFailed, err)
	}

	return nil
}

// DryRunInvoker only echoes the command line that would have run.
type DryRunInvoker struct {
	Path string
	Out  io.Writer
}

// Invoke implements the Invoker interface for DryRunInvoker.
func (i *DryRunInvoker) Invoke(_ context.Context, args []string, dir string) error {
	fmt.Fprintln(i.Out, Describe(i.Path, args, dir))
	return nil
}

// Describe renders the command line the way it would be typed in a shell,
// using the -C form sm itself understands for the working directory.
func Describe(path string, args []string, dir string) string {
	parts := make([]string, 0, len(args)+3)
	parts = append(parts, path)

	if dir != "" {
		parts = append(parts, "-C", dir)
	}

	parts = append(parts, args...)

	return strings.Join(parts, " ")
}
