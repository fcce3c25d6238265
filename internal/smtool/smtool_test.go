// Copyright (c) xyproto 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package smtool

import (
	"errors"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	stubs := gostub.Stub(&LookPath, func(name string) (string, error) {
		assert.Equal(t, "sm", name)
		return "/usr/local/bin/sm", nil
	})
	defer stubs.Reset()

	tool, err := Find()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/sm", tool.Path)
}

func TestFind_NotFound(t *testing.T) {
	stubs := gostub.Stub(&LookPath, func(string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	})
	defer stubs.Reset()

	tool, err := Find()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, tool)
}
