// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskidentity

import (
	"hash/crc64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
)

func TestProjectRows(t *testing.T) {
	rows := ProjectRows(testRecords, nil)
	require.Len(t, rows, 2)

	image, err := testRecords[0].MarshalBinary()
	require.NoError(t, err)

	assert.Equal(t, DriveRow{
		Controller: 0,
		Model:      "WDC WD800JB-22JJA0",
		Serial:     "WD-WCC12345678901",
		DUUID:      int64(crc64.Checksum(image, crc64.MakeTable(crc64.ECMA))),
		Size:       156301488 * 512,
	}, rows[0])
	assert.Equal(t, int32(1), rows[1].Controller)
}

func TestProjectRowsStableChecksum(t *testing.T) {
	a := ProjectRows(testRecords, CRC64)
	b := ProjectRows(testRecords, CRC64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a[0].DUUID, a[1].DUUID)

	moved := testRecords[0]
	moved.Controller = 3
	c := ProjectRows([]diskid.DriveRecord{moved}, CRC64)
	assert.NotEqual(t, a[0].DUUID, c[0].DUUID)
}

func TestProjectRowsCustomChecksum(t *testing.T) {
	var seen int
	rows := ProjectRows(testRecords[:1], func(b []byte) uint64 {
		seen = len(b)
		return 42
	})
	require.Len(t, rows, 1)
	assert.Equal(t, int64(42), rows[0].DUUID)
	assert.NotZero(t, seen)
}
