// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package keystore

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// debuggerAttached reports whether a debugger (or any ptrace tracer)
// is attached to the current process, per the TracerPid field of
// /proc/self/status. A nonzero TracerPid means something is already
// tracing this process's memory, at which point hiding the global key
// from casual string extraction is no longer meaningful -- the
// tripwire corrupts it instead.
func debuggerAttached() bool {
	file, err := os.Open("/proc/self/status")
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "TracerPid:") {
			continue
		}
		field := strings.TrimSpace(strings.TrimPrefix(line, "TracerPid:"))
		pid, err := strconv.Atoi(field)
		return err == nil && pid != 0
	}
	return false
}
