// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner sweeps the example project directories for one atomic
// command. For each immediate subdirectory of the examples root it applies
// the skip set and the extra-flag rules, then hands the assembled command
// line to an Invoker. Execution is strictly sequential and a failing
// project never stops the sweep; failures are collected and reported once
// the sweep is complete.
package runner
