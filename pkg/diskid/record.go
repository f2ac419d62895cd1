// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// SectorSize is the logical sector size assumed when converting an LBA count
// into bytes.
const SectorSize = 512

// maxFieldLen bounds every display string carried by a DriveRecord.
const maxFieldLen = 255

// MediaClass is the coarse media type reported by the identify block.
type MediaClass int8

const (
	MediaUnknown   MediaClass = -1
	MediaRemovable MediaClass = 0
	MediaFixed     MediaClass = 1
)

func (m MediaClass) String() string {
	switch m {
	case MediaRemovable:
		return "removable"
	case MediaFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// MarshalText lets the media class show up by name in JSON reports.
func (m MediaClass) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MediaClass) UnmarshalText(text []byte) error {
	switch string(text) {
	case "removable":
		*m = MediaRemovable
	case "fixed":
		*m = MediaFixed
	case "unknown":
		*m = MediaUnknown
	default:
		return fmt.Errorf("unknown media class %q", text)
	}
	return nil
}

// DriveRecord describes one physical drive as reported by a single access
// strategy.
type DriveRecord struct {
	Controller int        `json:"controller"`  // Controller index the drive hangs off
	Primary    bool       `json:"primary"`     // Position flag, true for the first unit on the channel
	Vendor     string     `json:"vendor"`      // Vendor id, only reported by the property query
	Model      string     `json:"model"`       // Model number as reported by the drive
	Serial     string     `json:"serial"`      // Normalized serial number
	Revision   string     `json:"revision"`    // Firmware revision
	BufferSize uint32     `json:"buffer_size"` // Drive cache size in bytes
	Media      MediaClass `json:"media"`       // Removable, fixed or unknown
	Sectors    uint64     `json:"sectors"`     // Addressable user sectors
	Source     string     `json:"source"`      // Name of the strategy that produced the record
}

// Size returns the capacity in bytes.
func (r DriveRecord) Size() uint64 {
	return r.Sectors * SectorSize
}

// MarshalBinary encodes the identity fields into a fixed-width byte image.
// Strings occupy maxFieldLen+1 bytes each, NUL padded, integers are little
// endian. Source is not part of the image.
func (r DriveRecord) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 4*(maxFieldLen+1) + 4 + 1 + 8 + 8)

	_ = binary.Write(&buf, binary.LittleEndian, int32(r.Controller))
	if r.Primary {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	for _, field := range []string{r.Vendor, r.Model, r.Serial, r.Revision} {
		var fixed [maxFieldLen + 1]byte
		copy(fixed[:maxFieldLen], field)
		buf.Write(fixed[:])
	}
	_ = binary.Write(&buf, binary.LittleEndian, r.BufferSize)
	buf.WriteByte(byte(r.Media))
	_ = binary.Write(&buf, binary.LittleEndian, r.Sectors)
	_ = binary.Write(&buf, binary.LittleEndian, r.Size())

	return buf.Bytes(), nil
}

// displayString cuts s at the first NUL, bounds its length and drops
// trailing blanks.
func displayString(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if len(s) > maxFieldLen {
		s = s[:maxFieldLen]
	}
	return strings.TrimRight(s, " ")
}
