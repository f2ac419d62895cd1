// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// MaxDriveSlots is the number of physical drive numbers probed.
	MaxDriveSlots = 16
	// MaxControllers is the number of controller ports probed by the
	// miniport strategy.
	MaxControllers = 16
	// UnitsPerController is the number of drive positions per channel.
	UnitsPerController = 2
)

// Strategy is one way of reaching the drives' identity data.
type Strategy interface {
	// Name identifies the strategy in logs and records.
	Name() string
	// Probe scans the host and returns every drive it could identify.
	Probe(p *Pass) []DriveRecord
}

// ProbeEvent describes one attempt to reach a device slot.
type ProbeEvent struct {
	Strategy string
	Slot     int
	Found    bool
	Err      error
}

// ProbeHook is notified after every probe attempt.
type ProbeHook func(ProbeEvent)

// Pass carries the state shared by the strategies of a single scan.
type Pass struct {
	strategy string
	diag     *Diagnostics
	rep      *Representative
	hook     ProbeHook
	logger   zerolog.Logger
}

// Logger returns the logger of the running strategy.
func (p *Pass) Logger() *zerolog.Logger { return &p.logger }

// Fail records a failed probe of slot. The diagnostic line is built from
// format and args, followed by the error code carried by err.
func (p *Pass) Fail(slot int, err error, format string, args ...any) {
	p.Note(slot, err, format, args...)
	p.notify(ProbeEvent{Strategy: p.strategy, Slot: slot, Err: err})
}

// Note records a diagnostic line like Fail without reporting the slot as
// failed. It is meant for secondary queries on a drive already found.
func (p *Pass) Note(slot int, err error, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if err != nil {
		line = strings.TrimSuffix(line, ".") + ", " + formatCode(err)
	}
	p.diag.add(line)
	p.logger.Debug().Err(err).Int("slot", slot).Int64("code", ErrorCode(err)).Msg(line)
}

// Found notes a successfully identified slot.
func (p *Pass) Found(slot int) {
	p.notify(ProbeEvent{Strategy: p.strategy, Slot: slot, Found: true})
}

// Empty notes a slot that answered without a drive.
func (p *Pass) Empty(slot int) {
	p.logger.Debug().Int("slot", slot).Msg("no device behind slot")
	p.notify(ProbeEvent{Strategy: p.strategy, Slot: slot})
}

// Offer proposes a serial/model pair as the host's representative drive.
func (p *Pass) Offer(serial, model string) {
	if p.rep.Offer(serial, model) {
		p.logger.Debug().Str("serial", serial).Str("model", model).Msg("representative drive selected")
	}
}

// OfferSerial proposes a serial while keeping the model already chosen.
func (p *Pass) OfferSerial(serial string) {
	if p.rep.Empty() && SerialAcceptable(serial) {
		p.rep.Serial = serial
		p.logger.Debug().Str("serial", serial).Msg("representative serial selected")
	}
}

func (p *Pass) notify(ev ProbeEvent) {
	if p.hook != nil {
		p.hook(ev)
	}
}

// withHandle runs fn with h and closes h afterwards, whatever fn does.
func withHandle(h Handle, fn func(Handle)) {
	defer h.Close()
	fn(h)
}
