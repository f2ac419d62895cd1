// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	methodBuffered = 0
	fileAnyAccess  = 0

	ioctlDiskBase    = 0x00000007
	ioctlScsiBase    = 0x00000004
	ioctlStorageBase = 0x0000002D
)

// Control codes understood by the storage stack.
const (
	ioctlGetVersion                  = 0x00074080
	ioctlReceiveDriveData            = 0x0007C088
	ioctlScsiMiniport                = 0x0004D008
	ioctlScsiMiniportIdentify        = (0x1B << 16) + 0x0501
	ioctlStorageQueryProperty        = (ioctlStorageBase << 16) | (fileAnyAccess << 14) | (0x0500 << 2) | methodBuffered
	ioctlStorageGetMediaSerialNumber = (ioctlStorageBase << 16) | (fileAnyAccess << 14) | (0x0304 << 2) | methodBuffered
	ioctlDiskGetDriveGeometryEx      = (ioctlDiskBase << 16) | (fileAnyAccess << 14) | (0x0028 << 2) | methodBuffered
)

// ATA commands issued through the identify envelopes.
const (
	ataIdentifyDevice       = 0xEC
	ataIdentifyPacketDevice = 0xA1
)

const (
	// atapiDeviceMapMask selects the ATAPI bit of the device map once it
	// is shifted by the slot number.
	atapiDeviceMapMask = 0x10

	// sendCmdInSize is the packed size of the command input block without
	// its trailing one-byte data placeholder.
	sendCmdInSize = 4 + 8 + 1 + 3 + 4*4
	// sendCmdOutHeaderSize precedes the identify data in the output block.
	sendCmdOutHeaderSize = 4 + 12
	sendCmdOutSize       = sendCmdOutHeaderSize + IdentifyBufferSize

	versionOutSize = 4 + 4 + 4*4

	srbHeaderSize = 4 + 8 + 4 + 4 + 4 + 4
	srbSignature  = "SCSIDISK"
	srbTimeout    = 10000
	// srbPayloadLength is the output data length announced in the SRB
	// header, a full output block plus its placeholder byte.
	srbPayloadLength = sendCmdOutSize + 1

	storagePropertyQuerySize = 4 + 4 + 4
	storageDeviceProperty    = 0
	storageStandardQuery     = 0
	// descriptorBufferSize holds the descriptor plus its trailing strings.
	descriptorBufferSize = 16000
	descriptorHeaderSize = 36

	mediaSerialHeaderSize = 16
	mediaSerialBufferSize = 1024

	// geometryExMinSize covers DISK_GEOMETRY (24 bytes) and DiskSize.
	geometryExMinSize = 24 + 8
)

// Media serial number query failures with their own diagnostics.
const (
	errnoInvalidFunction = 1
	errnoNotSupported    = 50
)

// versionInfo is the answer to ioctlGetVersion.
type versionInfo struct {
	Version      uint8
	Revision     uint8
	DeviceMap    uint8
	Capabilities uint32
}

func parseVersionInfo(b []byte) (versionInfo, error) {
	if len(b) < versionOutSize {
		return versionInfo{}, fmt.Errorf("version block too short: %d bytes", len(b))
	}
	return versionInfo{
		Version:      b[0],
		Revision:     b[1],
		DeviceMap:    b[3],
		Capabilities: binary.LittleEndian.Uint32(b[4:]),
	}, nil
}

// identifyCommand picks the identify opcode for slot from the device map.
func identifyCommand(deviceMap uint8, slot int) byte {
	if (deviceMap>>uint(slot))&atapiDeviceMapMask != 0 {
		return ataIdentifyPacketDevice
	}
	return ataIdentifyDevice
}

// driveHead selects master or slave on the channel with LBA addressing.
func driveHead(slot int) byte {
	return 0xA0 | byte(slot&1)<<4
}

// sendCmdIn builds the packed command input block for an identify.
func sendCmdIn(slot int, command byte) []byte {
	b := make([]byte, sendCmdInSize)
	binary.LittleEndian.PutUint32(b[0:], IdentifyBufferSize)
	// task file: features, sector count, sector number, cyl low, cyl high,
	// drive/head, command, reserved
	b[4+1] = 1
	b[4+5] = driveHead(slot)
	b[4+6] = command
	b[12] = byte(slot)
	return b
}

// identifyPayload returns the identify block at the end of an output block.
func identifyPayload(out []byte, n int) ([]byte, error) {
	if n < sendCmdOutSize || len(out) < sendCmdOutSize {
		return nil, fmt.Errorf("identify reply too short: %d bytes", n)
	}
	return out[sendCmdOutHeaderSize:sendCmdOutSize], nil
}

// srbIdentifyRequest wraps an identify command input block in the miniport
// request header. The returned buffer doubles as the output buffer.
func srbIdentifyRequest(unit int) []byte {
	b := make([]byte, srbHeaderSize+srbPayloadLength)
	binary.LittleEndian.PutUint32(b[0:], srbHeaderSize)
	copy(b[4:12], srbSignature)
	binary.LittleEndian.PutUint32(b[12:], srbTimeout)
	binary.LittleEndian.PutUint32(b[16:], ioctlScsiMiniportIdentify)
	binary.LittleEndian.PutUint32(b[24:], srbPayloadLength)

	// the miniport only looks at the command and the drive number
	b[srbHeaderSize+4+6] = ataIdentifyDevice
	b[srbHeaderSize+12] = byte(unit)
	return b
}

// srbRequestSize is the number of bytes sent with a miniport identify.
const srbRequestSize = srbHeaderSize + sendCmdInSize

func srbIdentifyPayload(out []byte, n int) ([]byte, error) {
	if n < srbHeaderSize+sendCmdOutSize || len(out) < srbHeaderSize+sendCmdOutSize {
		return nil, fmt.Errorf("miniport reply too short: %d bytes", n)
	}
	return identifyPayload(out[srbHeaderSize:], n-srbHeaderSize)
}

func storagePropertyQuery() []byte {
	b := make([]byte, storagePropertyQuerySize)
	binary.LittleEndian.PutUint32(b[0:], storageDeviceProperty)
	binary.LittleEndian.PutUint32(b[4:], storageStandardQuery)
	return b
}

// deviceDescriptor is the fixed part of a storage device descriptor with its
// offset strings resolved.
type deviceDescriptor struct {
	DeviceType     byte
	RemovableMedia bool
	BusType        uint32
	Vendor         string
	Product        string
	Revision       string
	Serial         string
}

func parseDeviceDescriptor(b []byte, n int) (deviceDescriptor, error) {
	if n > len(b) {
		n = len(b)
	}
	if n < descriptorHeaderSize {
		return deviceDescriptor{}, fmt.Errorf("device descriptor too short: %d bytes", n)
	}
	b = b[:n]
	le := binary.LittleEndian
	return deviceDescriptor{
		DeviceType:     b[8],
		RemovableMedia: b[10] != 0,
		BusType:        le.Uint32(b[28:]),
		Vendor:         offsetString(b, le.Uint32(b[12:])),
		Product:        offsetString(b, le.Uint32(b[16:])),
		Revision:       offsetString(b, le.Uint32(b[20:])),
		Serial:         offsetString(b, le.Uint32(b[24:])),
	}, nil
}

// offsetString reads the NUL-terminated string at offset. Offset zero means
// the field is not reported.
func offsetString(b []byte, offset uint32) string {
	if offset == 0 || int(offset) >= len(b) {
		return ""
	}
	s := b[offset:]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return displayString(string(s))
}

func parseMediaSerial(b []byte, n int) (string, error) {
	if n > len(b) {
		n = len(b)
	}
	if n < mediaSerialHeaderSize {
		return "", fmt.Errorf("media serial reply too short: %d bytes", n)
	}
	length := int(binary.LittleEndian.Uint32(b[0:]))
	data := b[mediaSerialHeaderSize:n]
	if length < len(data) {
		data = data[:length]
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return displayString(string(data)), nil
}

// parseDiskSize reads DiskSize out of a DISK_GEOMETRY_EX reply.
func parseDiskSize(b []byte, n int) (uint64, error) {
	if n < geometryExMinSize || len(b) < geometryExMinSize {
		return 0, fmt.Errorf("geometry reply too short: %d bytes", n)
	}
	return binary.LittleEndian.Uint64(b[24:]), nil
}
