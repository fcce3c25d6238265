// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package smtool locates the sm executable. The lookup happens once at
// startup; the resolved Tool is passed to the runner as an explicit
// dependency rather than being held as ambient process state.
package smtool

import (
	"errors"
	"os/exec"
)

// executableName is the name of the build tool on the search path.
const executableName = "sm"

// ErrNotFound is returned when sm cannot be located on the search path.
var ErrNotFound = errors.New("sm must exist in the path")

// LookPath resolves an executable name. Variable so tests can stub it.
var LookPath = exec.LookPath

// Tool is the resolved sm executable.
type Tool struct {
	Path string
}

// Find resolves sm on the search path. A missing tool is a fatal
// precondition for the whole run, so callers should abort before any
// directory iteration begins.
func Find() (*Tool, error) {
	path, err := LookPath(executableName)
	if err != nil {
		return nil, errors.Join(ErrNotFound, err)
	}

	return &Tool{Path: path}, nil
}
