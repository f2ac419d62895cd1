// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package diskid

import "fmt"

type systemOpener struct{}

// SystemOpener returns the opener backed by the host's storage stack. Only
// Windows exposes the identify control codes; elsewhere every open fails.
func SystemOpener() DeviceOpener { return systemOpener{} }

func (systemOpener) OpenDrive(n int, _ Access) (Handle, error) {
	return nil, fmt.Errorf("open physical drive %d: %w", n, ErrUnsupportedPlatform)
}

func (systemOpener) OpenController(n int) (Handle, error) {
	return nil, fmt.Errorf("open controller %d: %w", n, ErrUnsupportedPlatform)
}

type systemWMI struct{}

// SystemWMI returns the WMI source of the local machine.
func SystemWMI() WMISource { return systemWMI{} }

func (systemWMI) DiskDrives() ([]WMIDrive, error) {
	return nil, fmt.Errorf("query Win32_DiskDrive: %w", ErrUnsupportedPlatform)
}
