// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const (
	// IdentifyWords is the number of 16-bit words in an identify block.
	IdentifyWords = 256
	// IdentifyBufferSize is the byte size of an identify block.
	IdentifyBufferSize = IdentifyWords * 2
)

// Word offsets inside the identify block.
const (
	wordGeneralConfig = 0
	wordSerialFirst   = 10
	wordSerialLast    = 19
	wordBufferSize    = 21
	wordRevisionFirst = 23
	wordRevisionLast  = 26
	wordModelFirst    = 27
	wordModelLast     = 46
	wordLBA28Low      = 60
	wordLBA28High     = 61
	wordCommandSet2   = 83
	wordLBA48First    = 100
	wordLBA48Last     = 103
	removableMediaBit = 0x0080
	fixedMediaBit     = 0x0040
	lba48SupportedBit = 0x0400
)

// ErrNoDevice is returned when an identify block does not describe a drive.
// Callers treat it as an empty slot rather than a failure.
var ErrNoDevice = errors.New("identify block describes no device")

// IdentitySector is a decoded 256-word ATA/ATAPI identify block.
type IdentitySector [IdentifyWords]uint16

// ParseIdentitySector reads the little-endian words of a raw identify buffer.
func ParseIdentitySector(b []byte) (*IdentitySector, error) {
	if len(b) < IdentifyBufferSize {
		return nil, fmt.Errorf("identify buffer too short: %d bytes", len(b))
	}
	var s IdentitySector
	for i := range s {
		s[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return &s, nil
}

// Bytes encodes the sector back into its 512-byte wire form.
func (s *IdentitySector) Bytes() []byte {
	b := make([]byte, IdentifyBufferSize)
	for i, w := range s {
		binary.LittleEndian.PutUint16(b[2*i:], w)
	}
	return b
}

// String decodes words first..last inclusive. Every word carries two
// characters, high byte first. The result ends at the first NUL and loses
// its trailing spaces.
func (s *IdentitySector) String(first, last int) string {
	if first < 0 || last >= IdentifyWords || first > last {
		return ""
	}
	out := make([]byte, 0, 2*(last-first+1))
	for _, w := range s[first : last+1] {
		out = append(out, byte(w>>8), byte(w))
	}
	return displayString(string(out))
}

// PutString is the inverse of String. Short values are padded with spaces,
// long values are cut.
func (s *IdentitySector) PutString(first, last int, v string) {
	n := 2 * (last - first + 1)
	padded := []byte(v + strings.Repeat(" ", max(0, n-len(v))))[:n]
	for i := 0; i < n; i += 2 {
		s[first+i/2] = uint16(padded[i])<<8 | uint16(padded[i+1])
	}
}

func (s *IdentitySector) Serial() string   { return s.String(wordSerialFirst, wordSerialLast) }
func (s *IdentitySector) Revision() string { return s.String(wordRevisionFirst, wordRevisionLast) }
func (s *IdentitySector) Model() string    { return s.String(wordModelFirst, wordModelLast) }

// HasModel reports whether the first character of the decoded model is set,
// which is the high byte of word 27. An empty model means the slot answered
// without a drive behind it.
func (s *IdentitySector) HasModel() bool {
	return s[wordModelFirst]>>8 != 0
}

// MediaClass classifies the drive from the general configuration word.
func (s *IdentitySector) MediaClass() MediaClass {
	switch cfg := s[wordGeneralConfig]; {
	case cfg&removableMediaBit != 0:
		return MediaRemovable
	case cfg&fixedMediaBit != 0:
		return MediaFixed
	default:
		return MediaUnknown
	}
}

// BufferSize is the drive cache size in bytes.
func (s *IdentitySector) BufferSize() uint32 {
	return uint32(s[wordBufferSize]) * SectorSize
}

// LBA48 reports whether the drive advertises 48-bit addressing.
func (s *IdentitySector) LBA48() bool {
	return s[wordCommandSet2]&lba48SupportedBit != 0
}

// Sectors returns the number of user addressable sectors, taken from the
// 48-bit field when supported and from the 28-bit field otherwise.
func (s *IdentitySector) Sectors() uint64 {
	if s.LBA48() {
		var n uint64
		for w := wordLBA48Last; w >= wordLBA48First; w-- {
			n = n<<16 | uint64(s[w])
		}
		return n
	}
	return uint64(s[wordLBA28High])<<16 | uint64(s[wordLBA28Low])
}

// SetSectors stores n in the addressing fields, switching on the 48-bit
// capability when n does not fit into 28 bits.
func (s *IdentitySector) SetSectors(n uint64) {
	if n >= 1<<28 || s.LBA48() {
		s[wordCommandSet2] |= lba48SupportedBit
		for w := wordLBA48First; w <= wordLBA48Last; w++ {
			s[w] = uint16(n)
			n >>= 16
		}
		return
	}
	s[wordLBA28Low] = uint16(n)
	s[wordLBA28High] = uint16(n >> 16)
}

// SlotPosition maps a flat device slot onto a controller index and the
// primary/secondary position on that controller.
func SlotPosition(slot int) (controller int, primary bool) {
	return slot / 2, slot%2 == 0
}

// Record builds a DriveRecord for the drive found at slot.
func (s *IdentitySector) Record(slot int) (DriveRecord, error) {
	if !s.HasModel() {
		return DriveRecord{}, ErrNoDevice
	}
	controller, primary := SlotPosition(slot)
	return DriveRecord{
		Controller: controller,
		Primary:    primary,
		Model:      s.Model(),
		Serial:     NormalizeIdentifySerial(s.Serial()),
		Revision:   s.Revision(),
		BufferSize: s.BufferSize(),
		Media:      s.MediaClass(),
		Sectors:    s.Sectors(),
	}, nil
}
