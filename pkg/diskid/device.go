// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"errors"
	"io"
)

// ErrUnsupportedPlatform is returned by the system device layer on hosts
// without the storage control interface.
var ErrUnsupportedPlatform = errors.New("storage control interface not available on this platform")

// Access selects the rights a drive handle is opened with.
type Access int

const (
	// AccessReadWrite is needed for identify passthrough commands.
	AccessReadWrite Access = iota
	// AccessQuery opens a handle without data rights, enough for
	// property queries by unprivileged users.
	AccessQuery
)

func (a Access) String() string {
	if a == AccessQuery {
		return "query"
	}
	return "read-write"
}

// Handle is an open device that accepts control requests.
type Handle interface {
	io.Closer
	// Control sends a control request and returns the number of bytes
	// written into out.
	Control(code uint32, in, out []byte) (int, error)
}

// DeviceOpener opens the host's storage devices.
type DeviceOpener interface {
	// OpenDrive opens the n-th physical drive.
	OpenDrive(n int, access Access) (Handle, error)
	// OpenController opens the n-th storage controller port.
	OpenController(n int) (Handle, error)
}
