// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"errors"
	"fmt"
	"syscall"
)

// Diagnostics is the ordered list of probe failures recorded during a scan.
type Diagnostics struct {
	lines []string
}

func (d *Diagnostics) add(line string) {
	d.lines = append(d.lines, line)
}

// Lines returns a copy of the recorded failures in the order they happened.
func (d *Diagnostics) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Len returns the number of recorded failures.
func (d *Diagnostics) Len() int { return len(d.lines) }

func (d *Diagnostics) reset() { d.lines = d.lines[:0] }

// ErrorCode extracts the numeric system error code carried by err, or -1
// when err does not wrap one.
func ErrorCode(err error) int64 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int64(errno)
	}
	return -1
}

func formatCode(err error) string {
	code := ErrorCode(err)
	if code < 0 {
		return fmt.Sprintf("error code: %d (%v)", code, err)
	}
	return fmt.Sprintf("error code: 0x%X", code)
}
