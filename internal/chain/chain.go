// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package chain expands a colon-separated command token into the ordered
// list of atomic commands to hand to sm, one full sweep of the example
// directories per command. For example "fastclean:build" first runs
// "sm fastclean" everywhere, then "sm build" everywhere.
package chain

import "strings"

// Delimiter separates the atomic commands inside one command token.
const Delimiter = ":"

// Default is the chain used when no command is given on the command line.
func Default() []string {
	return []string{"fastclean", "build"}
}

// Expand splits token on Delimiter, preserving left-to-right order.
// Substrings are trimmed and empty ones dropped. No validation happens
// here: unknown commands are kept verbatim and sm decides what to do
// with them.
func Expand(token string) []string {
	parts := strings.Split(token, Delimiter)

	cmds := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cmds = append(cmds, p)
		}
	}

	return cmds
}
