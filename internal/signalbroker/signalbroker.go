// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker listens for OS signals that should terminate the
// process. The first signal of a type is passed through to the in-flight
// invocation; a second signal of the same type cancels the run context.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/xyproto/snakemake/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a channel notified on the termination signals, or on sigs
// when given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "listening", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Watch monitors the signal channel and cancels the context on the second
// signal of any one type. It returns when the channel is closed or after
// cancelling.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Logger(ctx).Info("watchdog", "detail", "second signal of type, terminating", "signal", sig.String())
			close(sigCh)
			cancel()

			return
		}

		seen[sig] = struct{}{}

		ctxlog.Logger(ctx).Info("watchdog", "detail", "first signal of type", "signal", sig.String())
	}
}
