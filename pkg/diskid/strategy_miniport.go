// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

// MiniportStrategy identifies drives through the controller driver, which
// works for drives hidden behind SCSI or RAID miniports.
type MiniportStrategy struct {
	Opener      DeviceOpener
	Controllers int
}

func NewMiniportStrategy(opener DeviceOpener) *MiniportStrategy {
	return &MiniportStrategy{Opener: opener, Controllers: MaxControllers}
}

func (s *MiniportStrategy) Name() string { return StrategyMiniport }

func (s *MiniportStrategy) Probe(p *Pass) []DriveRecord {
	var records []DriveRecord
	for controller := 0; controller < s.Controllers; controller++ {
		h, err := s.Opener.OpenController(controller)
		if err != nil {
			p.Fail(controller*UnitsPerController, err, "Unable to open SCSI controller %d", controller)
			continue
		}
		withHandle(h, func(h Handle) {
			for unit := 0; unit < UnitsPerController; unit++ {
				if rec, ok := s.identify(p, h, controller, unit); ok {
					records = append(records, rec)
				}
			}
		})
	}
	return records
}

func (s *MiniportStrategy) identify(p *Pass, h Handle, controller, unit int) (DriveRecord, bool) {
	slot := controller*UnitsPerController + unit

	buf := srbIdentifyRequest(unit)
	n, err := h.Control(ioctlScsiMiniport, buf[:srbRequestSize], buf)
	if err != nil {
		p.Fail(slot, err, "IOCTL_SCSI_MINIPORT identify failed for controller %d unit %d", controller, unit)
		return DriveRecord{}, false
	}
	payload, err := srbIdentifyPayload(buf, n)
	if err != nil {
		p.Fail(slot, err, "IOCTL_SCSI_MINIPORT returned a short reply for controller %d unit %d", controller, unit)
		return DriveRecord{}, false
	}

	return decodeSlot(p, payload, slot, s.Name())
}
