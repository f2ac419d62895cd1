// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import "strings"

// representativeSerialIndex is the last character of a full 20-byte serial,
// which some firmwares fill while leaving the first one blank.
const representativeSerialIndex = 19

// NormalizeIdentifySerial strips the leading blanks identify blocks use to
// right-justify serial numbers.
func NormalizeIdentifySerial(s string) string {
	return strings.TrimLeft(s, " ")
}

// DecodeSwappedHex decodes a serial reported as hex text with the bytes of
// every 16-bit word swapped. Each group of four characters holds two byte
// pairs; the second pair is emitted first. Zero bytes are dropped and
// characters that are not hex digits count as zero.
func DecodeSwappedHex(s string) string {
	digit := func(i int) byte {
		if i >= len(s) {
			return 0
		}
		return hexValue(s[i])
	}

	var out []byte
	for i := 0; i < len(s); i += 4 {
		for j := 1; j >= 0; j-- {
			b := digit(i+2*j)<<4 | digit(i+2*j+1)
			if b != 0 {
				out = append(out, b)
			}
		}
	}
	return string(out)
}

// NormalizePropertySerial cleans up the serial returned by the storage
// property query. Hex text is decoded with DecodeSwappedHex whatever its
// length. Serials holding any non-hex character are plain ASCII and kept.
func NormalizePropertySerial(s string) string {
	s = strings.TrimSpace(displayString(s))
	if looksSwappedHex(s) {
		s = DecodeSwappedHex(s)
	}
	return strings.TrimSpace(s)
}

func looksSwappedHex(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

// SerialAcceptable reports whether a serial is plausible enough to stand for
// the host: its first or its twentieth character must be alphanumeric.
func SerialAcceptable(s string) bool {
	if len(s) > 0 && isAlnum(s[0]) {
		return true
	}
	return len(s) > representativeSerialIndex && isAlnum(s[representativeSerialIndex])
}

// Representative holds the first acceptable serial/model pair seen during a
// scan. Later offers never replace it.
type Representative struct {
	Serial string
	Model  string
}

// Offer stores serial and model when nothing has been accepted yet and the
// serial passes SerialAcceptable. It reports whether the pair was taken.
func (r *Representative) Offer(serial, model string) bool {
	if r.Serial != "" || !SerialAcceptable(serial) {
		return false
	}
	r.Serial = serial
	r.Model = model
	return true
}

// Empty reports whether no pair has been accepted.
func (r *Representative) Empty() bool { return r.Serial == "" }

func (r *Representative) reset() { *r = Representative{} }

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func isAlnum(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
