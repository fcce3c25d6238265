// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyproto/snakemake/internal/flagrules"
	"go.uber.org/goleak"
)

type recordedCall struct {
	args []string
	dir  string
}

type fakeInvoker struct {
	calls []recordedCall
	fail  map[string]error // keyed by directory base name
}

func (f *fakeInvoker) Invoke(_ context.Context, args []string, dir string) error {
	f.calls = append(f.calls, recordedCall{args: slices.Clone(args), dir: dir})

	if err, ok := f.fail[filepath.Base(dir)]; ok {
		return err
	}

	return nil
}

type fakeBanner struct {
	messages []string
}

func (f *fakeBanner) Render(_ context.Context, message string) {
	f.messages = append(f.messages, message)
}

// examplesFs returns an in-memory examples root with three projects and a
// stray file that must be ignored.
func examplesFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, dir := range []string{"alpha", "beta", "sfml"} {
		require.NoError(t, fs.MkdirAll(filepath.Join("examples", dir), 0o755))
	}

	require.NoError(t, afero.WriteFile(fs, "examples/README.md", []byte("not a project"), 0o644))

	return fs
}

func newTestRunner(t *testing.T, fs afero.Fs) (*Runner, *fakeInvoker, *fakeBanner, *bytes.Buffer) {
	t.Helper()

	inv := &fakeInvoker{}
	ban := &fakeBanner{}
	out := &bytes.Buffer{}

	return &Runner{
		Banner:  ban,
		Rules:   flagrules.Defaults(),
		Fs:      fs,
		Invoker: inv,
		Out:     out,
	}, inv, ban, out
}

func TestRunAll_SkipsNamedProjects(t *testing.T) {
	defer goleak.VerifyNone(t)

	stubs := gostub.Stub(&flagrules.HostPlatform, "linux")
	defer stubs.Reset()

	r, inv, ban, out := newTestRunner(t, examplesFs(t))

	err := r.RunAll(context.Background(), "build", "examples", NewSkipSet([]string{"beta"}))
	require.NoError(t, err)

	require.Len(t, inv.calls, 2)
	assert.Equal(t, recordedCall{args: []string{"build"}, dir: filepath.Join("examples", "alpha")}, inv.calls[0])
	assert.Equal(t, recordedCall{args: []string{"build"}, dir: filepath.Join("examples", "sfml")}, inv.calls[1])

	assert.Contains(t, out.String(), "Skipping beta")
	assert.Contains(t, out.String(), "------- "+filepath.Join("examples", "alpha")+" -------")
	assert.NotContains(t, out.String(), "------- "+filepath.Join("examples", "beta")+" -------")

	assert.Equal(t, []string{"Building all examples"}, ban.messages)
}

func TestRunAll_FlagInjectionOnDarwin(t *testing.T) {
	defer goleak.VerifyNone(t)

	stubs := gostub.Stub(&flagrules.HostPlatform, "darwin")
	defer stubs.Reset()

	r, inv, _, _ := newTestRunner(t, examplesFs(t))

	// The flag rule matches on project and platform only, so sfml gets
	// clang=1 for clean as well as for build.
	for _, command := range []string{"clean", "build"} {
		require.NoError(t, r.RunAll(context.Background(), command, "examples", nil))
	}

	require.Len(t, inv.calls, 6)
	assert.Equal(t, []string{"clean"}, inv.calls[0].args)
	assert.Equal(t, []string{"clean"}, inv.calls[1].args)
	assert.Equal(t, []string{"clean", "clang=1"}, inv.calls[2].args)
	assert.Equal(t, []string{"build"}, inv.calls[3].args)
	assert.Equal(t, []string{"build"}, inv.calls[4].args)
	assert.Equal(t, []string{"build", "clang=1"}, inv.calls[5].args)
}

func TestRunAll_NoEmptyArgumentTokens(t *testing.T) {
	stubs := gostub.Stub(&flagrules.HostPlatform, "linux")
	defer stubs.Reset()

	r, inv, _, _ := newTestRunner(t, examplesFs(t))

	require.NoError(t, r.RunAll(context.Background(), "build", "examples", nil))

	for _, call := range inv.calls {
		assert.NotContains(t, call.args, "")
	}
}

func TestRunAll_UnknownCommandForwardedWithoutBanner(t *testing.T) {
	stubs := gostub.Stub(&flagrules.HostPlatform, "linux")
	defer stubs.Reset()

	r, inv, ban, _ := newTestRunner(t, examplesFs(t))

	require.NoError(t, r.RunAll(context.Background(), "frobnicate", "examples", nil))

	require.Len(t, inv.calls, 3)
	assert.Equal(t, []string{"frobnicate"}, inv.calls[0].args)
	assert.Empty(t, ban.messages)
}

func TestRunAll_FailureDoesNotStopSweep(t *testing.T) {
	defer goleak.VerifyNone(t)

	stubs := gostub.Stub(&flagrules.HostPlatform, "linux")
	defer stubs.Reset()

	r, inv, _, _ := newTestRunner(t, examplesFs(t))
	inv.fail = map[string]error{"beta": errors.New("exit status 2")}

	err := r.RunAll(context.Background(), "build", "examples", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beta")

	// alpha and sfml still ran.
	require.Len(t, inv.calls, 3)
}

func TestRunAll_ListError(t *testing.T) {
	r, inv, _, _ := newTestRunner(t, afero.NewMemMapFs())

	err := r.RunAll(context.Background(), "build", "examples", nil)
	assert.ErrorIs(t, err, ErrListExamples)
	assert.Empty(t, inv.calls)
}

func TestRunAll_CancelledContext(t *testing.T) {
	r, inv, _, _ := newTestRunner(t, examplesFs(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.RunAll(ctx, "build", "examples", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, inv.calls)
}

func TestRunAll_RelativePaths(t *testing.T) {
	stubs := gostub.Stub(&flagrules.HostPlatform, "linux")
	stubs.Stub(&Getwd, func() (string, error) { return "/work", nil })

	defer stubs.Reset()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/examples/alpha", 0o755))

	r, inv, _, _ := newTestRunner(t, fs)

	require.NoError(t, r.RunAll(context.Background(), "build", "/work/examples", nil))

	require.Len(t, inv.calls, 1)
	assert.Equal(t, filepath.Join("examples", "alpha"), inv.calls[0].dir)
}

func TestVersion(t *testing.T) {
	r, inv, _, _ := newTestRunner(t, examplesFs(t))

	require.NoError(t, r.Version(context.Background()))
	require.Len(t, inv.calls, 1)
	assert.Equal(t, recordedCall{args: []string{"version"}, dir: ""}, inv.calls[0])
}

func TestRunAll_DryRunIsIdempotent(t *testing.T) {
	stubs := gostub.Stub(&flagrules.HostPlatform, "linux")
	defer stubs.Reset()

	runOnce := func() string {
		fs := examplesFs(t)
		out := &bytes.Buffer{}
		r := &Runner{
			Banner:  &fakeBanner{},
			Rules:   flagrules.Defaults(),
			Fs:      fs,
			Invoker: &DryRunInvoker{Path: "/usr/bin/sm", Out: out},
			Out:     out,
		}

		require.NoError(t, r.RunAll(context.Background(), "build", "examples", NewSkipSet([]string{"beta"})))

		return out.String()
	}

	first := runOnce()
	second := runOnce()

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestNewSkipSet(t *testing.T) {
	t.Parallel()

	s := NewSkipSet([]string{"beta", " sfml ", ""})

	assert.True(t, s.Contains("beta"))
	assert.True(t, s.Contains("sfml"))
	assert.False(t, s.Contains("Beta"))
	assert.False(t, s.Contains(""))
	assert.False(t, s.Contains("alpha"))
}

func TestBuildArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{
			name:   "command only",
			tokens: []string{"build", ""},
			want:   []string{"build"},
		},
		{
			name:   "command and flag",
			tokens: []string{"build", "clang=1"},
			want:   []string{"build", "clang=1"},
		},
		{
			name:   "whitespace trimmed",
			tokens: []string{" build ", "  "},
			want:   []string{"build"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, BuildArgs(tc.tokens...))
		})
	}
}
