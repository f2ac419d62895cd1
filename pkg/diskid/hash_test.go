// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriveID(t *testing.T) {
	tests := []struct {
		serial string
		want   uint64
	}{
		{"", 600_000_000},
		// plant code skipped, "CC" counts 12 each
		{"WD-WCC12345678901", 645_678_901},
		{"IBM-123", 301_932_123},
		{"Maxtor 1", 433_616_701},
		{"XWDC 1", 500_000_000 + 3_634_201},
		{"12-34", 600_001_234},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DriveID(tt.serial), "serial %q", tt.serial)
	}
}

func TestDriveIDShortWDPrefix(t *testing.T) {
	assert.Equal(t, uint64(600_000_000), DriveID("WD-W"))
}

func TestDriveIDDeterministicAndBounded(t *testing.T) {
	serials := []string{"", "WD-WMAM9AB12345", "5QF0ABCD", "Z1Z2Z3Z4Z5Z6Z7Z8Z9ZZ", "IBM-ABCDEFGHIJKLMNOPQRSTUVWXYZ", "!!@@##"}
	for i := 0; i < 200; i++ {
		serials = append(serials, fmt.Sprintf("SN%08dX%d", i*7919, i))
	}

	for _, s := range serials {
		id := DriveID(s)
		assert.Equal(t, id, DriveID(s))
		assert.GreaterOrEqual(t, id, uint64(300_000_000), "serial %q", s)
		assert.Less(t, id, uint64(700_000_000), "serial %q", s)
	}
}

func TestRecordIDFallsBackToModel(t *testing.T) {
	rec := DriveRecord{Serial: "WD-WCC12345678901", Model: "WDC WD800JB-22JJA0"}
	assert.Equal(t, uint64(545_678_901), RecordID(rec))

	rec = DriveRecord{Serial: "IBM-123", Model: "WDC WD800JB-22JJA0"}
	assert.Equal(t, DriveID(rec.Serial), RecordID(rec))

	rec = DriveRecord{Serial: "S1", Model: "Samsung SSD"}
	assert.Equal(t, DriveID(rec.Serial), RecordID(rec))
}
