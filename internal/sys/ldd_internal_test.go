// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLdInfosParseFrom(t *testing.T) {
	lddOutput := strings.Join([]string{
		"\tlinux-vdso.so.1 (0x00007ffc8c8f1000)",
		"\tlibcrypto.so.3 => /usr/lib64/libcrypto.so.3 (0x00007f2a9a000000)",
		"\tlibc.so.6 => /usr/lib64/libc.so.6 (0x00007f2a99e16000)",
		"\t/lib64/ld-linux-x86-64.so.2 (0x00007f2a9a4f4000)",
	}, "\n")

	var infos ldInfos

	infos.parseFrom(strings.NewReader(lddOutput))

	expected := []string{
		"/usr/lib64/libcrypto.so.3",
		"/usr/lib64/libc.so.6",
		"/lib64/ld-linux-x86-64.so.2",
	}

	assert.Equal(t, expected, infos.realPaths())
}

func TestLdInfosParseFromEmpty(t *testing.T) {
	var infos ldInfos

	infos.parseFrom(strings.NewReader("\tstatically linked\n"))

	assert.Empty(t, infos.realPaths())
}
