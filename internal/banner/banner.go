// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package banner prints the one-line banner that announces each sweep of
// the example directories. Rendering is best effort and must never fail
// the run: when figlet is available on the search path it is used for a
// decorative banner, otherwise a plain framed message is printed.
package banner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/charmbracelet/lipgloss"
	"github.com/xyproto/snakemake/internal/ctxlog"
)

// figletExecutable is the name of the optional decorative-banner tool.
const figletExecutable = "figlet"

// labels maps atomic commands to their banner line. Commands missing from
// the map run without a banner.
var labels = map[string]string{
	"build":     "Building all examples",
	"clean":     "Cleaning all examples",
	"fastclean": "Cleaning all examples",
	"rebuild":   "Rebuilding all examples",
	"run":       "Running all examples",
}

// Label returns the banner line for command, if it has one.
func Label(command string) (string, bool) {
	l, ok := labels[command]
	return l, ok
}

// Renderer prints a banner message. Implementations never return an
// error; a banner that cannot be rendered falls back to plain text.
type Renderer interface {
	Render(ctx context.Context, message string)
}

var (
	_ Renderer = (*FigletRenderer)(nil)
	_ Renderer = (*PlainRenderer)(nil)
)

// LookPath resolves an executable name. Variable so tests can stub it.
var LookPath = exec.LookPath

// New selects a renderer once, at construction: figlet when available on
// the search path, plain framed text otherwise.
func New(out io.Writer) Renderer {
	path, err := LookPath(figletExecutable)
	if err != nil {
		return &PlainRenderer{Out: out}
	}

	return &FigletRenderer{Path: path, Out: out}
}

// FigletRenderer runs figlet to produce a large decorative banner.
type FigletRenderer struct {
	Path string
	Out  io.Writer
}

// Render implements the Renderer interface for FigletRenderer. If figlet
// fails for any reason the message is rendered plainly instead.
func (r *FigletRenderer) Render(ctx context.Context, message string) {
	var buf bytes.Buffer

	cmd := exec.CommandContext(ctx, r.Path, "-f", "small", message)
	cmd.Stdout = &buf
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		ctxlog.Debug(ctx, "figlet failed, using plain banner", "error", err)

		plain := PlainRenderer{Out: r.Out}
		plain.Render(ctx, message)

		return
	}

	fmt.Fprintln(r.Out)
	_, _ = buf.WriteTo(r.Out)
	fmt.Fprintln(r.Out)
}

var plainStyle = lipgloss.NewStyle().Bold(true)

// PlainRenderer frames the message with pipe characters.
type PlainRenderer struct {
	Out io.Writer
}

// Render implements the Renderer interface for PlainRenderer.
func (r *PlainRenderer) Render(_ context.Context, message string) {
	fmt.Fprintf(r.Out, "|\n|\n|  %s...\n|\n|\n", plainStyle.Render(message))
}
