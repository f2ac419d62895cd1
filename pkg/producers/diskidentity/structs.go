// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskidentity

import (
	"time"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
)

// DriveRow is the flat per-drive projection handed to downstream tables
type DriveRow struct {
	Controller int32  `json:"controller"` // Controller index
	Model      string `json:"model"`      // Model number
	Serial     string `json:"serial"`     // Normalized serial number
	DUUID      int64  `json:"duuid"`      // Checksum of the drive record
	Size       int64  `json:"size"`       // Capacity in bytes
}

// DriveInfo is a drive record enriched with derived identity fields
type DriveInfo struct {
	diskid.DriveRecord
	SizeBytes  uint64 `json:"size_bytes"`  // Capacity in bytes
	DriveID    uint64 `json:"drive_id"`    // Numeric id derived from serial and vendor
	VendorName string `json:"vendor_name"` // Normalized manufacturer, e.g. "WesternDigital"
	OEM        string `json:"oem"`         // OEM relationship if the drive is rebranded
}

// DriveReport is the result of one scan of the host
type DriveReport struct {
	ScanID               string      `json:"scan_id"`               // Unique id of the scan
	NodeName             string      `json:"node_name"`             // Name of the node that was scanned
	InstanceID           string      `json:"instance_id"`           // ID of the instance (useful in cloud environments)
	Timestamp            time.Time   `json:"timestamp"`             // When the scan finished
	Success              bool        `json:"success"`               // Whether any strategy identified a drive
	Drives               []DriveInfo `json:"drives"`                // Identified drives
	Rows                 []DriveRow  `json:"rows"`                  // Row projection of Drives
	Errors               []string    `json:"errors"`                // Failed probes in the order they happened
	RepresentativeSerial string      `json:"representative_serial"` // Serial chosen to stand for the host
	RepresentativeModel  string      `json:"representative_model"`  // Model of the representative drive
}

// NatsEvent represents an event to be published to NATS
type NatsEvent struct {
	ScanID     string            `json:"scan_id"`     // Scan the event belongs to
	NodeName   string            `json:"node_name"`   // Name of the node where the drive is located
	InstanceID string            `json:"instance_id"` // ID of the instance (useful in cloud environments)
	EventType  string            `json:"event_type"`  // 'drive_identity' or 'scan_failed'
	Severity   string            `json:"severity"`    // 'info' or 'warning'
	Message    string            `json:"message"`     // Description of the event
	Row        *DriveRow         `json:"row,omitempty"`
	Details    map[string]string `json:"details"` // Additional details, such as vendor and revision
}
