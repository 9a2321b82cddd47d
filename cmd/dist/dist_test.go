// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newCommand()
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

const bimodal = "0\n3\n1\n7\n3\n5\n1\n2\n-1\n2\n7\n6\n8\n6\n"

func TestDescribe(t *testing.T) {
	out, _, err := run(t, bimodal)
	require.NoError(t, err)
	assert.Contains(t, out, "N 14  sum 50")
	assert.Contains(t, out, "     min -1\n")
	assert.Contains(t, out, "     max 8\n")
	assert.Contains(t, out, "median 95% CI [")
	assert.Contains(t, out, "KDE GaussianKernel")
	assert.NotContains(t, out, "|*")
	assert.NotContains(t, out, "mixture")

	out, _, err = run(t, bimodal, "--plot")
	require.NoError(t, err)
	assert.Contains(t, out, "|*")
}

func TestMixture(t *testing.T) {
	out, log, err := run(t, bimodal, "-k", "2", "--verbose", "--parallel", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "mixture of 2 normals")
	assert.Contains(t, log, "EM iteration")

	outLog, _, err := run(t, bimodal, "-k", "2", "--log")
	require.NoError(t, err)
	assert.Contains(t, outLog, "mixture of 2 normals")
}

func TestConstantInput(t *testing.T) {
	out, _, err := run(t, "4\n4\n4\n", "--plot")
	require.NoError(t, err)
	assert.Contains(t, out, "KDE DeltaKernel  median 4  mode 4")
	assert.NotContains(t, out, "|*")
}

func TestBadInput(t *testing.T) {
	_, _, err := run(t, "1\nx\n")
	assert.ErrorContains(t, err, "line 2")
	_, _, err = run(t, "")
	assert.Error(t, err)
	_, _, err = run(t, "1\n", "extra")
	assert.Error(t, err)
}
