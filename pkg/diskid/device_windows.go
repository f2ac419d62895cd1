// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package diskid

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
)

type systemOpener struct{}

// SystemOpener returns the opener backed by the host's storage stack.
func SystemOpener() DeviceOpener { return systemOpener{} }

func (systemOpener) OpenDrive(n int, access Access) (Handle, error) {
	var rights uint32
	if access == AccessReadWrite {
		rights = windows.GENERIC_READ | windows.GENERIC_WRITE
	}
	return openDevice(fmt.Sprintf(`\\.\PhysicalDrive%d`, n), rights)
}

func (systemOpener) OpenController(n int) (Handle, error) {
	return openDevice(fmt.Sprintf(`\\.\Scsi%d:`, n), windows.GENERIC_READ|windows.GENERIC_WRITE)
}

func openDevice(path string, rights uint32) (Handle, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateFile(
		p,
		rights,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &deviceHandle{h: h, path: path}, nil
}

type deviceHandle struct {
	h    windows.Handle
	path string
}

func (d *deviceHandle) Control(code uint32, in, out []byte) (int, error) {
	var inPtr, outPtr *byte
	if len(in) > 0 {
		inPtr = &in[0]
	}
	if len(out) > 0 {
		outPtr = &out[0]
	}
	var returned uint32
	err := windows.DeviceIoControl(d.h, code, inPtr, uint32(len(in)), outPtr, uint32(len(out)), &returned, nil)
	if err != nil {
		return int(returned), fmt.Errorf("control 0x%X on %s: %w", code, d.path, err)
	}
	return int(returned), nil
}

func (d *deviceHandle) Close() error {
	return windows.CloseHandle(d.h)
}

type systemWMI struct{}

// SystemWMI returns the WMI source of the local machine.
func SystemWMI() WMISource { return systemWMI{} }

func (systemWMI) DiskDrives() ([]WMIDrive, error) {
	var drives []WMIDrive
	query := "SELECT Index, Model, SerialNumber, FirmwareRevision, Manufacturer, MediaType, Size FROM Win32_DiskDrive"
	if err := wmi.Query(query, &drives); err != nil {
		return nil, fmt.Errorf("query Win32_DiskDrive: %w", err)
	}
	return drives, nil
}
