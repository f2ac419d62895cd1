// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import "strings"

// WMIDrive holds the Win32_DiskDrive properties the WMI strategy reads.
type WMIDrive struct {
	Index            uint32
	Model            string
	SerialNumber     string
	FirmwareRevision string
	Manufacturer     string
	MediaType        string
	Size             uint64
}

// WMISource lists the host's disk drives through the management interface.
type WMISource interface {
	DiskDrives() ([]WMIDrive, error)
}

// WMIStrategy asks the management service for the drive inventory. It is
// slower than the device strategies and not part of the default chain.
type WMIStrategy struct {
	Source WMISource
}

func NewWMIStrategy(source WMISource) *WMIStrategy {
	return &WMIStrategy{Source: source}
}

func (s *WMIStrategy) Name() string { return StrategyWMI }

func (s *WMIStrategy) Probe(p *Pass) []DriveRecord {
	drives, err := s.Source.DiskDrives()
	if err != nil {
		p.Fail(-1, err, "WMI Win32_DiskDrive query failed")
		return nil
	}

	var records []DriveRecord
	for _, d := range drives {
		slot := int(d.Index)
		model := strings.TrimSpace(displayString(d.Model))
		serial := NormalizePropertySerial(d.SerialNumber)
		if model == "" && serial == "" {
			p.Empty(slot)
			continue
		}
		p.Offer(serial, model)
		records = append(records, DriveRecord{
			Controller: slot,
			Vendor:     strings.TrimSpace(displayString(d.Manufacturer)),
			Model:      model,
			Serial:     serial,
			Revision:   strings.TrimSpace(displayString(d.FirmwareRevision)),
			Media:      wmiMediaClass(d.MediaType),
			Sectors:    d.Size / SectorSize,
			Source:     s.Name(),
		})
		p.Found(slot)
	}
	return records
}

func wmiMediaClass(mediaType string) MediaClass {
	switch t := strings.ToLower(mediaType); {
	case strings.Contains(t, "removable"), strings.Contains(t, "external"):
		return MediaRemovable
	case strings.Contains(t, "fixed"):
		return MediaFixed
	default:
		return MediaUnknown
	}
}
