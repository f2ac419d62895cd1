// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityStringHighByteFirst(t *testing.T) {
	var s IdentitySector
	s[wordModelFirst] = uint16('A')<<8 | uint16('B')
	assert.Equal(t, "AB", s.String(wordModelFirst, wordModelFirst))
}

func TestIdentityStringTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"all spaces", strings.Repeat(" ", 40), ""},
		{"trailing spaces", "WDC WD800JB-22JJA0", "WDC WD800JB-22JJA0"},
		{"leading spaces kept", "  WD-WCC12345678901", "  WD-WCC12345678901"},
		{"nul terminated", "ST3500\x00\x00junk", "ST3500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s IdentitySector
			s.PutString(wordModelFirst, wordModelLast, tt.input)
			assert.Equal(t, tt.want, s.Model())
		})
	}
}

func TestIdentityStringBadRange(t *testing.T) {
	var s IdentitySector
	assert.Empty(t, s.String(10, 5))
	assert.Empty(t, s.String(0, IdentifyWords))
}

func TestParseIdentitySectorRoundTrip(t *testing.T) {
	sector := identity{serial: "  S123", model: "Maxtor 6Y080L0", revision: "YAR41BW0", config: 0x0040, bufferWords: 4096, sectors: 160086528}.sector()

	parsed, err := ParseIdentitySector(sector.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sector, parsed)
	assert.Equal(t, "Maxtor 6Y080L0", parsed.Model())
	assert.Equal(t, "YAR41BW0", parsed.Revision())

	_, err = ParseIdentitySector(make([]byte, IdentifyBufferSize-1))
	assert.Error(t, err)
}

func TestMediaClass(t *testing.T) {
	tests := []struct {
		config uint16
		want   MediaClass
	}{
		{0x0080, MediaRemovable},
		{0x00C0, MediaRemovable},
		{0x0040, MediaFixed},
		{0x0000, MediaUnknown},
		{0x8000, MediaUnknown},
	}

	for _, tt := range tests {
		var s IdentitySector
		s[wordGeneralConfig] = tt.config
		assert.Equal(t, tt.want, s.MediaClass(), "config 0x%04X", tt.config)
	}
}

func TestSectors28Bit(t *testing.T) {
	var s IdentitySector
	s[wordLBA28Low] = 0x5678
	s[wordLBA28High] = 0x0123
	s[wordLBA48First] = 0xFFFF

	assert.False(t, s.LBA48())
	assert.Equal(t, uint64(0x01235678), s.Sectors())
}

func TestSectors48Bit(t *testing.T) {
	var s IdentitySector
	s[wordCommandSet2] = 0x0400
	s[wordLBA48First+3] = 1
	s[wordLBA28Low] = 0xFFFF

	assert.True(t, s.LBA48())
	assert.Equal(t, uint64(281474976710656), s.Sectors())

	rec, err := identity{model: "X"}.sector().Record(0)
	require.NoError(t, err)
	assert.Zero(t, rec.Size())
}

func TestSizeIsSectorsTimes512(t *testing.T) {
	for _, n := range []uint64{0, 1, 0x0FFFFFFF, 1 << 28, 976773168, 1 << 47} {
		rec, err := identity{model: "M", sectors: n}.sector().Record(0)
		require.NoError(t, err)
		assert.Equal(t, n, rec.Sectors)
		assert.Equal(t, n*512, rec.Size())
	}
}

func TestBufferSize(t *testing.T) {
	var s IdentitySector
	s[wordBufferSize] = 16384
	assert.Equal(t, uint32(16384*512), s.BufferSize())
}

func TestSlotPosition(t *testing.T) {
	tests := []struct {
		slot       int
		controller int
		primary    bool
	}{
		{0, 0, true},
		{1, 0, false},
		{2, 1, true},
		{5, 2, false},
		{31, 15, false},
	}

	for _, tt := range tests {
		controller, primary := SlotPosition(tt.slot)
		assert.Equal(t, tt.controller, controller, "slot %d", tt.slot)
		assert.Equal(t, tt.primary, primary, "slot %d", tt.slot)
	}
}

func TestRecordFromIdentify(t *testing.T) {
	sector := identity{
		serial:      "  WD-WCC12345678901",
		model:       "WDC WD800JB-22JJA0",
		revision:    "05.01C05",
		config:      0x0040,
		bufferWords: 16384,
		sectors:     156301488,
	}.sector()

	rec, err := sector.Record(3)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Controller)
	assert.False(t, rec.Primary)
	assert.Equal(t, "WD-WCC12345678901", rec.Serial)
	assert.Equal(t, "WDC WD800JB-22JJA0", rec.Model)
	assert.Equal(t, "05.01C05", rec.Revision)
	assert.Equal(t, MediaFixed, rec.Media)
	assert.Equal(t, uint32(16384*512), rec.BufferSize)
	assert.Equal(t, uint64(156301488*512), rec.Size())
}

func TestRecordWithoutModel(t *testing.T) {
	_, err := identity{serial: "S1"}.sector().Record(0)
	assert.ErrorIs(t, err, ErrNoDevice)
}

func TestHasModelChecksFirstCharacter(t *testing.T) {
	var s IdentitySector
	s[wordModelFirst] = 0x0041
	assert.False(t, s.HasModel())
	_, err := s.Record(0)
	assert.ErrorIs(t, err, ErrNoDevice)

	s[wordModelFirst] = 0x4100
	assert.True(t, s.HasModel())
	rec, err := s.Record(0)
	require.NoError(t, err)
	assert.Equal(t, "A", rec.Model)
}

func TestMarshalBinaryDeterministic(t *testing.T) {
	rec := DriveRecord{Controller: 1, Primary: true, Model: "M", Serial: "S", Sectors: 10, Source: "smart"}

	a, err := rec.MarshalBinary()
	require.NoError(t, err)
	b, err := rec.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	rec.Source = "property"
	c, err := rec.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, a, c, "source is not part of the image")

	rec.Serial = "T"
	d, err := rec.MarshalBinary()
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
	assert.Len(t, d, len(a))
}

func TestMediaClassText(t *testing.T) {
	for _, m := range []MediaClass{MediaRemovable, MediaFixed, MediaUnknown} {
		text, err := m.MarshalText()
		require.NoError(t, err)

		var back MediaClass
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, m, back)
	}

	var m MediaClass
	assert.Error(t, m.UnmarshalText([]byte("tape")))
}
