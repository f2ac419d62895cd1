// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import "errors"

// SmartStrategy sends identify commands straight to the physical drives.
// It needs administrative rights.
type SmartStrategy struct {
	Opener DeviceOpener
	Slots  int
}

func NewSmartStrategy(opener DeviceOpener) *SmartStrategy {
	return &SmartStrategy{Opener: opener, Slots: MaxDriveSlots}
}

func (s *SmartStrategy) Name() string { return StrategySmart }

// Probe gives up as soon as the first drive cannot be opened; without it the
// caller lacks the rights this strategy depends on.
func (s *SmartStrategy) Probe(p *Pass) []DriveRecord {
	var records []DriveRecord
	for slot := 0; slot < s.Slots; slot++ {
		h, err := s.Opener.OpenDrive(slot, AccessReadWrite)
		if err != nil {
			p.Fail(slot, err, "Unable to open physical drive %d", slot)
			if slot == 0 {
				return nil
			}
			continue
		}
		withHandle(h, func(h Handle) {
			if rec, ok := s.identify(p, h, slot); ok {
				records = append(records, rec)
			}
		})
	}
	return records
}

func (s *SmartStrategy) identify(p *Pass, h Handle, slot int) (DriveRecord, bool) {
	out := make([]byte, versionOutSize)
	n, err := h.Control(ioctlGetVersion, nil, out)
	if err != nil {
		p.Fail(slot, err, "DFP_GET_VERSION failed for drive %d", slot)
		return DriveRecord{}, false
	}
	version, err := parseVersionInfo(out[:n])
	if err != nil {
		p.Fail(slot, err, "DFP_GET_VERSION returned a short reply for drive %d", slot)
		return DriveRecord{}, false
	}
	if version.DeviceMap == 0 {
		p.Empty(slot)
		return DriveRecord{}, false
	}

	in := sendCmdIn(slot, identifyCommand(version.DeviceMap, slot))
	out = make([]byte, sendCmdOutSize)
	n, err = h.Control(ioctlReceiveDriveData, in, out)
	if err != nil {
		p.Fail(slot, err, "DFP_RECEIVE_DRIVE_DATA failed for drive %d", slot)
		return DriveRecord{}, false
	}
	payload, err := identifyPayload(out, n)
	if err != nil {
		p.Fail(slot, err, "DFP_RECEIVE_DRIVE_DATA returned a short reply for drive %d", slot)
		return DriveRecord{}, false
	}

	return decodeSlot(p, payload, slot, s.Name())
}

// decodeSlot turns an identify payload into a record and offers its serial
// as the representative one.
func decodeSlot(p *Pass, payload []byte, slot int, source string) (DriveRecord, bool) {
	sector, err := ParseIdentitySector(payload)
	if err != nil {
		p.Fail(slot, err, "Invalid identify data for drive %d", slot)
		return DriveRecord{}, false
	}
	rec, err := sector.Record(slot)
	if errors.Is(err, ErrNoDevice) {
		p.Empty(slot)
		return DriveRecord{}, false
	}
	rec.Source = source
	p.Offer(rec.Serial, rec.Model)
	p.Found(slot)
	return rec, true
}
