// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import "strings"

const (
	driveIDModulus = 100_000_000

	bucketIBM     = 300_000_000
	bucketMaxtor  = 400_000_000
	bucketWD      = 500_000_000
	bucketDefault = 600_000_000
)

// wdSerialPrefix marks Western Digital serials whose first five characters
// are a fixed plant code.
const wdSerialPrefix = "WD-W"

// DriveID folds a serial number into a numeric id below 7e8. The last eight
// decimal digits come from the serial, the leading digit names the vendor
// family recognized in it.
func DriveID(serial string) uint64 {
	return serialDigits(serial)%driveIDModulus + vendorBucket(serial)
}

// RecordID is DriveID for a whole record. When the serial carries no vendor
// marker the model is checked instead, since most drives only name their
// maker there.
func RecordID(r DriveRecord) uint64 {
	bucket := vendorBucket(r.Serial)
	if bucket == bucketDefault {
		bucket = vendorBucket(r.Model)
	}
	return serialDigits(r.Serial)%driveIDModulus + bucket
}

func serialDigits(serial string) uint64 {
	p := serial
	if strings.HasPrefix(p, wdSerialPrefix) {
		p = p[min(len(p), 5):]
	}

	var id uint64
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '-' {
			continue
		}
		id *= 10
		switch {
		case '0' <= c && c <= '9':
			id += uint64(c - '0')
		case 'a' <= c && c <= 'z':
			id += uint64(c-'a') + 10
		case 'A' <= c && c <= 'Z':
			id += uint64(c-'A') + 10
		}
	}
	return id
}

func vendorBucket(s string) uint64 {
	switch {
	case strings.Contains(s, "IBM-"):
		return bucketIBM
	case strings.Contains(s, "MAXTOR"), strings.Contains(s, "Maxtor"):
		return bucketMaxtor
	case strings.Contains(s, "WDC "):
		return bucketWD
	default:
		return bucketDefault
	}
}
