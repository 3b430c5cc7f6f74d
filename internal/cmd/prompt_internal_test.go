// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/initrdgen/internal/console"
	"github.com/aibor/initrdgen/internal/sys"
)

func testPrompter(input string) *prompter {
	return newPrompter(console.New(io.Discard), strings.NewReader(input))
}

func TestSelectFeatures(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedNames []string
	}{
		{
			name:          "empty answer defaults to zfs",
			input:         "\n",
			expectedNames: []string{"zfs"},
		},
		{
			name:          "no input at all defaults to zfs",
			input:         "",
			expectedNames: []string{"zfs"},
		},
		{
			name:          "single code",
			input:         "2\n",
			expectedNames: []string{"luks"},
		},
		{
			name:          "multiple codes",
			input:         "1,2\n",
			expectedNames: []string{"zfs", "luks"},
		},
		{
			name:          "codes with spaces",
			input:         "1, 2\n",
			expectedNames: []string{"zfs", "luks"},
		},
		{
			name:          "space separated degrades to exit",
			input:         "1 2\n",
			expectedNames: []string{"exit"},
		},
		{
			name:          "basic",
			input:         "3\n",
			expectedNames: []string{"basic"},
		},
		{
			name:          "invalid answer degrades to exit",
			input:         "nope\n",
			expectedNames: []string{"exit"},
		},
		{
			name:          "out of range code degrades to exit",
			input:         "7\n",
			expectedNames: []string{"exit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := testPrompter(tt.input).selectFeatures()
			assert.Equal(t, tt.expectedNames, actual)
		})
	}
}

func TestConfirmKernel(t *testing.T) {
	release, err := sys.KernelRelease()
	require.NoError(t, err)

	tests := []struct {
		name           string
		input          string
		expectedKernel string
		expectedErr    error
	}{
		{
			name:           "empty answer accepts running kernel",
			input:          "\n",
			expectedKernel: release,
		},
		{
			name:           "yes accepts running kernel",
			input:          "y\n",
			expectedKernel: release,
		},
		{
			name:           "upper case yes accepts running kernel",
			input:          "Y\n",
			expectedKernel: release,
		},
		{
			name:           "no asks for manual entry",
			input:          "n\n6.1.0-custom\n",
			expectedKernel: "6.1.0-custom",
		},
		{
			name:        "no without manual entry fails",
			input:       "n\n\n",
			expectedErr: ErrNoKernelGiven,
		},
		{
			name:        "garbage answer fails",
			input:       "maybe\n",
			expectedErr: ErrInvalidAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kernel, err := testPrompter(tt.input).confirmKernel()
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedKernel, kernel)
		})
	}
}
