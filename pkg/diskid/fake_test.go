// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"encoding/binary"
	"syscall"
)

const (
	errAccessDenied = syscall.Errno(5)
	errFileNotFound = syscall.Errno(2)
)

type controlFunc func(code uint32, in, out []byte) (int, error)

type fakeHandle struct {
	control controlFunc
	closed  bool
	codes   []uint32
}

func (h *fakeHandle) Control(code uint32, in, out []byte) (int, error) {
	h.codes = append(h.codes, code)
	return h.control(code, in, out)
}

func (h *fakeHandle) Close() error {
	h.closed = true
	return nil
}

// fakeOpener hands out handles keyed by drive or controller number. Missing
// entries fail to open with errFileNotFound unless openErr overrides it.
type fakeOpener struct {
	drives      map[int]controlFunc
	controllers map[int]controlFunc
	openErr     map[int]error

	opened  []*fakeHandle
	attempt []int
	access  []Access
}

func (o *fakeOpener) OpenDrive(n int, access Access) (Handle, error) {
	o.attempt = append(o.attempt, n)
	o.access = append(o.access, access)
	if err, ok := o.openErr[n]; ok {
		return nil, err
	}
	fn, ok := o.drives[n]
	if !ok {
		return nil, errFileNotFound
	}
	h := &fakeHandle{control: fn}
	o.opened = append(o.opened, h)
	return h, nil
}

func (o *fakeOpener) OpenController(n int) (Handle, error) {
	fn, ok := o.controllers[n]
	if !ok {
		return nil, errFileNotFound
	}
	h := &fakeHandle{control: fn}
	o.opened = append(o.opened, h)
	return h, nil
}

func (o *fakeOpener) allClosed() bool {
	for _, h := range o.opened {
		if !h.closed {
			return false
		}
	}
	return true
}

type identity struct {
	serial, model, revision string
	config                  uint16
	bufferWords             uint16
	sectors                 uint64
}

func (id identity) sector() *IdentitySector {
	var s IdentitySector
	s[wordGeneralConfig] = id.config
	s[wordBufferSize] = id.bufferWords
	s.PutString(wordSerialFirst, wordSerialLast, id.serial)
	s.PutString(wordRevisionFirst, wordRevisionLast, id.revision)
	if id.model != "" {
		s.PutString(wordModelFirst, wordModelLast, id.model)
	}
	s.SetSectors(id.sectors)
	return &s
}

// smartDrive answers the version and identify requests of the direct
// strategy with the given device map and identity.
func smartDrive(deviceMap byte, id identity) controlFunc {
	return func(code uint32, in, out []byte) (int, error) {
		switch code {
		case ioctlGetVersion:
			out[0], out[1], out[3] = 1, 1, deviceMap
			return versionOutSize, nil
		case ioctlReceiveDriveData:
			copy(out[sendCmdOutHeaderSize:], id.sector().Bytes())
			return sendCmdOutSize, nil
		}
		return 0, syscall.Errno(1)
	}
}

// miniportController answers identify requests for the units in ids.
func miniportController(ids map[int]identity) controlFunc {
	return func(code uint32, in, out []byte) (int, error) {
		if code != ioctlScsiMiniport {
			return 0, syscall.Errno(1)
		}
		unit := int(in[srbHeaderSize+12])
		id, ok := ids[unit]
		if !ok {
			// the unit answers with an empty identify block
			return srbHeaderSize + sendCmdOutSize, nil
		}
		copy(out[srbHeaderSize+sendCmdOutHeaderSize:], id.sector().Bytes())
		return srbHeaderSize + sendCmdOutSize, nil
	}
}

type descriptor struct {
	vendor, product, revision, serial string
	removable                         bool
	diskSize                          uint64
	mediaSerial                       string
	mediaErr                          error
}

func (d descriptor) bytes() []byte {
	b := make([]byte, descriptorHeaderSize)
	binary.LittleEndian.PutUint32(b[0:], 1)
	if d.removable {
		b[10] = 1
	}
	put := func(at int, s string) {
		if s == "" {
			return
		}
		binary.LittleEndian.PutUint32(b[at:], uint32(len(b)))
		b = append(b, s...)
		b = append(b, 0)
	}
	put(12, d.vendor)
	put(16, d.product)
	put(20, d.revision)
	put(24, d.serial)
	binary.LittleEndian.PutUint32(b[4:], uint32(len(b)))
	return b
}

// propertyDrive answers the unprivileged queries with d.
func propertyDrive(d descriptor) controlFunc {
	return func(code uint32, in, out []byte) (int, error) {
		switch code {
		case ioctlStorageQueryProperty:
			return copy(out, d.bytes()), nil
		case ioctlDiskGetDriveGeometryEx:
			if d.diskSize == 0 {
				return 0, syscall.Errno(1)
			}
			binary.LittleEndian.PutUint64(out[24:], d.diskSize)
			return geometryExMinSize, nil
		case ioctlStorageGetMediaSerialNumber:
			if d.mediaErr != nil {
				return 0, d.mediaErr
			}
			binary.LittleEndian.PutUint32(out[0:], uint32(len(d.mediaSerial)))
			n := copy(out[mediaSerialHeaderSize:], d.mediaSerial)
			return mediaSerialHeaderSize + n, nil
		}
		return 0, syscall.Errno(1)
	}
}

func errnoError(code int) error { return syscall.Errno(code) }
