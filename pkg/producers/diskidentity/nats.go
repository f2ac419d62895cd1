// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskidentity

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

// convertToNatsEvents turns a report into one event per drive, or a single
// scan_failed event when no drive was identified.
func convertToNatsEvents(report DriveReport) []NatsEvent {
	if !report.Success {
		return []NatsEvent{{
			ScanID:     report.ScanID,
			NodeName:   report.NodeName,
			InstanceID: report.InstanceID,
			EventType:  "scan_failed",
			Severity:   "warning",
			Message:    fmt.Sprintf("No drive could be identified (%d failed probes).", len(report.Errors)),
			Details: map[string]string{
				"errors": strings.Join(report.Errors, "\n"),
			},
		}}
	}

	events := make([]NatsEvent, 0, len(report.Drives))
	for i, drive := range report.Drives {
		var row *DriveRow
		if i < len(report.Rows) {
			row = &report.Rows[i]
		}
		events = append(events, NatsEvent{
			ScanID:     report.ScanID,
			NodeName:   report.NodeName,
			InstanceID: report.InstanceID,
			EventType:  "drive_identity",
			Severity:   "info",
			Message:    fmt.Sprintf("Drive %s identified via %s.", drive.Model, drive.Source),
			Row:        row,
			Details: map[string]string{
				"vendor":   drive.VendorName,
				"revision": drive.Revision,
				"media":    drive.Media.String(),
				"drive_id": strconv.FormatUint(drive.DriveID, 10),
				"primary":  strconv.FormatBool(drive.Primary),
				"oem":      drive.OEM,
			},
		})
	}
	return events
}

func PublishToNATS(report DriveReport, nc *nats.Conn, subject string) error {
	for _, event := range convertToNatsEvents(report) {
		eventJSON, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if err := nc.Publish(subject, eventJSON); err != nil {
			return err
		}
	}

	return nc.Flush()
}
