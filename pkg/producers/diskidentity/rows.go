// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskidentity

import (
	"hash/crc64"

	"github.com/rs/zerolog/log"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
)

// Checksum condenses the binary image of a drive record into a row id.
type Checksum func([]byte) uint64

var ecmaTable = crc64.MakeTable(crc64.ECMA)

// CRC64 is the default Checksum, CRC-64 with the ECMA-182 polynomial.
func CRC64(b []byte) uint64 {
	return crc64.Checksum(b, ecmaTable)
}

// ProjectRows turns records into table rows, using sum over each record's
// binary image as the row id.
func ProjectRows(records []diskid.DriveRecord, sum Checksum) []DriveRow {
	if sum == nil {
		sum = CRC64
	}
	rows := make([]DriveRow, 0, len(records))
	for _, rec := range records {
		image, err := rec.MarshalBinary()
		if err != nil {
			log.Error().Err(err).Str("serial", rec.Serial).Msg("error encoding drive record")
			continue
		}
		rows = append(rows, DriveRow{
			Controller: int32(rec.Controller),
			Model:      rec.Model,
			Serial:     rec.Serial,
			DUUID:      int64(sum(image)),
			Size:       int64(rec.Size()),
		})
	}
	return rows
}
