// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "fmt"

// usageError is returned for bad invocations (missing flags, unknown
// verbs, malformed arguments). main exits with status 2 for these,
// matching the conventional Unix split between "you used this wrong"
// and "something else went wrong".
type usageError string

func (e usageError) Error() string { return string(e) }

// ExitCode identifies e to main's exit-code dispatch.
func (e usageError) ExitCode() int { return 2 }

func usageErrorf(format string, args ...any) usageError {
	return usageError(fmt.Sprintf(format, args...))
}
