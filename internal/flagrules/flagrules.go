// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package flagrules decides the extra argument injected into an sm
// invocation for particular project and platform combinations. Rules are
// held in an ordered table so new special cases are added as data, not as
// new conditional branches.
package flagrules

import (
	"errors"
	"runtime"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

var (
	// ErrReadRules is returned when the rules file cannot be read.
	ErrReadRules = errors.New("failed to read rules file")
	// ErrParseRules is returned when the rules file is not valid YAML.
	ErrParseRules = errors.New("failed to parse rules file")
)

// HostPlatform is the GOOS value rules are matched against. Variable so
// tests can stub it.
var HostPlatform = runtime.GOOS

// Rule maps a project name and a set of platforms to one extra flag.
// An empty platform list matches every platform.
type Rule struct {
	Project   string   `yaml:"project"`
	Platforms []string `yaml:"platforms,omitempty"`
	Flag      string   `yaml:"flag"`
}

// Matches reports whether the rule applies to project on platform.
func (r Rule) Matches(project, platform string) bool {
	if r.Project != project {
		return false
	}

	return len(r.Platforms) == 0 || slices.Contains(r.Platforms, platform)
}

// Table is an ordered rule list. The first matching rule wins, so at most
// one flag is injected per invocation.
type Table []Rule

// Defaults returns the built-in rules: sfml needs clang=1 on macOS.
func Defaults() Table {
	return Table{
		{Project: "sfml", Platforms: []string{"darwin"}, Flag: "clang=1"},
	}
}

// FlagFor returns the extra flag for project on the current host
// platform, or the empty string when no rule matches.
func (t Table) FlagFor(project string) string {
	for _, r := range t {
		if r.Matches(project, HostPlatform) {
			return r.Flag
		}
	}

	return ""
}

// Load reads additional rules from a YAML file, a list of rule objects.
// Callers typically prepend the loaded rules to Defaults so a file can
// override the built-in behavior.
func Load(fsys afero.Fs, path string) (Table, error) {
	b, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Join(ErrReadRules, err)
	}

	var rules Table
	if err := yaml.Unmarshal(b, &rules); err != nil {
		return nil, errors.Join(ErrParseRules, err)
	}

	return rules, nil
}
