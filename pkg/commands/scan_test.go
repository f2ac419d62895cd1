// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
	"github.com/cobaltcore-dev/diskid/pkg/producers/diskidentity"
)

func testReport() diskidentity.DriveReport {
	rec := diskid.DriveRecord{
		Controller: 0,
		Primary:    true,
		Model:      "WDC WD800JB-00JJC0",
		Serial:     "WD-WMAM9AB12345",
		Revision:   "05.01C05",
		Media:      diskid.MediaFixed,
		Sectors:    156301488,
		Source:     "smart",
	}
	return diskidentity.DriveReport{
		ScanID:               "scan-1",
		Success:              true,
		Drives:               []diskidentity.DriveInfo{{DriveRecord: rec, SizeBytes: rec.Size(), DriveID: diskid.RecordID(rec)}},
		RepresentativeSerial: rec.Serial,
		RepresentativeModel:  rec.Model,
		Errors:               []string{"miniport: controller 1: error code: 0x2"},
	}
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, testReport(), "table"))

	out := buf.String()
	assert.Contains(t, out, "CONTROLLER")
	assert.Contains(t, out, "primary")
	assert.Contains(t, out, "WD-WMAM9AB12345")
	assert.Contains(t, out, "Hard Drive Serial Number: WD-WMAM9AB12345")
	assert.Contains(t, out, "Hard Drive Model Number: WDC WD800JB-00JJC0")
	assert.True(t, strings.HasSuffix(out, "error code: 0x2\n"))
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, testReport(), "json"))

	var decoded diskidentity.DriveReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Drives, 1)
	assert.Equal(t, "WD-WMAM9AB12345", decoded.Drives[0].Serial)
	assert.Equal(t, diskid.MediaFixed, decoded.Drives[0].Media)
}

func TestWriteReportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeReport(&buf, testReport(), "yaml"))
}

func TestProbeSpinnerHook(t *testing.T) {
	var buf bytes.Buffer
	bar := newProbeSpinner(&buf)
	hook := probeSpinnerHook(bar)

	hook(diskid.ProbeEvent{Strategy: "smart", Slot: 3})
	hook(diskid.ProbeEvent{Strategy: "smart", Slot: 4, Found: true})

	assert.Equal(t, 2.0, bar.State().CurrentBytes)
}

func TestDriveIDCommand(t *testing.T) {
	var buf bytes.Buffer
	driveIDCmd.SetOut(&buf)
	driveIDCmd.Run(driveIDCmd, []string{"IBM-123"})

	assert.Equal(t, "IBM-123\t301932123\n", buf.String())
}
