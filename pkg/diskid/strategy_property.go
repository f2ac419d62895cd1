// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import "strings"

// PropertyStrategy reads the storage device descriptor, which any user may
// query. It has no identify block, so buffer size is never known and
// capacity comes from the drive geometry when available.
type PropertyStrategy struct {
	Opener DeviceOpener
	Slots  int
}

func NewPropertyStrategy(opener DeviceOpener) *PropertyStrategy {
	return &PropertyStrategy{Opener: opener, Slots: MaxDriveSlots}
}

func (s *PropertyStrategy) Name() string { return StrategyProperty }

func (s *PropertyStrategy) Probe(p *Pass) []DriveRecord {
	var records []DriveRecord
	for slot := 0; slot < s.Slots; slot++ {
		h, err := s.Opener.OpenDrive(slot, AccessQuery)
		if err != nil {
			p.Fail(slot, err, "Unable to open physical drive %d", slot)
			continue
		}
		withHandle(h, func(h Handle) {
			if rec, ok := s.describe(p, h, slot); ok {
				records = append(records, rec)
			}
		})
	}
	return records
}

func (s *PropertyStrategy) describe(p *Pass, h Handle, slot int) (DriveRecord, bool) {
	out := make([]byte, descriptorBufferSize)
	n, err := h.Control(ioctlStorageQueryProperty, storagePropertyQuery(), out)
	if err != nil {
		p.Fail(slot, err, "IOCTL_STORAGE_QUERY_PROPERTY failed for drive %d", slot)
		return DriveRecord{}, false
	}
	desc, err := parseDeviceDescriptor(out, n)
	if err != nil {
		p.Fail(slot, err, "IOCTL_STORAGE_QUERY_PROPERTY returned a short reply for drive %d", slot)
		return DriveRecord{}, false
	}

	serial := NormalizePropertySerial(desc.Serial)
	model := strings.TrimSpace(desc.Product)
	if serial == "" && model == "" {
		p.Empty(slot)
		return DriveRecord{}, false
	}
	p.Offer(serial, model)

	media := MediaFixed
	if desc.RemovableMedia {
		media = MediaRemovable
	}
	rec := DriveRecord{
		// the descriptor carries no channel information, the drive
		// number stands in for the controller
		Controller: slot,
		Vendor:     strings.TrimSpace(desc.Vendor),
		Model:      model,
		Serial:     serial,
		Revision:   strings.TrimSpace(desc.Revision),
		Media:      media,
		Sectors:    s.sectors(p, h, slot),
		Source:     s.Name(),
	}
	p.Found(slot)

	s.mediaSerial(p, h, slot)
	return rec, true
}

// sectors asks for the drive geometry. Failures only cost the capacity.
func (s *PropertyStrategy) sectors(p *Pass, h Handle, slot int) uint64 {
	out := make([]byte, 256)
	n, err := h.Control(ioctlDiskGetDriveGeometryEx, nil, out)
	if err == nil {
		var size uint64
		if size, err = parseDiskSize(out, n); err == nil {
			return size / SectorSize
		}
	}
	p.Logger().Debug().Err(err).Int("slot", slot).Msg("drive geometry not available")
	return 0
}

// mediaSerial tries the media serial number as a second source for the
// representative serial.
func (s *PropertyStrategy) mediaSerial(p *Pass, h Handle, slot int) {
	out := make([]byte, mediaSerialBufferSize)
	n, err := h.Control(ioctlStorageGetMediaSerialNumber, nil, out)
	if err != nil {
		switch ErrorCode(err) {
		case errnoInvalidFunction:
			p.Note(slot, err, "IOCTL_STORAGE_GET_MEDIA_SERIAL_NUMBER is not valid for drive %d", slot)
		case errnoNotSupported:
			p.Note(slot, err, "IOCTL_STORAGE_GET_MEDIA_SERIAL_NUMBER is not supported for drive %d", slot)
		default:
			p.Note(slot, err, "IOCTL_STORAGE_GET_MEDIA_SERIAL_NUMBER failed for drive %d", slot)
		}
		return
	}
	serial, err := parseMediaSerial(out, n)
	if err != nil {
		p.Note(slot, err, "IOCTL_STORAGE_GET_MEDIA_SERIAL_NUMBER returned a short reply for drive %d", slot)
		return
	}
	p.OfferSerial(strings.TrimSpace(serial))
}
