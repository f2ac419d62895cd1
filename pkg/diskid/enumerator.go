// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskid

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Strategy names accepted by StrategiesByName.
const (
	StrategySmart    = "smart"
	StrategyMiniport = "miniport"
	StrategyProperty = "property"
	StrategyWMI      = "wmi"
)

// DefaultStrategyNames is the fallback order used when nothing else is
// configured: most detailed first, least privileged last.
var DefaultStrategyNames = []string{StrategySmart, StrategyMiniport, StrategyProperty}

// Enumerator runs access strategies in order until one of them finds at
// least one drive. An Enumerator keeps the diagnostics and representative
// drive of its last scan and must not be shared between goroutines.
type Enumerator struct {
	strategies []Strategy
	logger     zerolog.Logger
	hook       ProbeHook

	diag Diagnostics
	rep  Representative
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithStrategies replaces the default strategy chain.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Enumerator) { e.strategies = strategies }
}

// WithLogger sets the logger used for probe details.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Enumerator) { e.logger = logger }
}

// WithProbeHook registers a callback invoked after every probe attempt.
func WithProbeHook(hook ProbeHook) Option {
	return func(e *Enumerator) { e.hook = hook }
}

// NewEnumerator returns an Enumerator using the system devices and the
// default strategy chain unless options say otherwise.
func NewEnumerator(opts ...Option) *Enumerator {
	e := &Enumerator{logger: log.Logger}
	for _, opt := range opts {
		opt(e)
	}
	if e.strategies == nil {
		e.strategies, _ = StrategiesByName(DefaultStrategyNames, SystemOpener(), SystemWMI())
	}
	return e
}

// StrategiesByName builds a strategy chain from names such as "smart" or
// "property", in the given order.
func StrategiesByName(names []string, opener DeviceOpener, source WMISource) ([]Strategy, error) {
	strategies := make([]Strategy, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case StrategySmart:
			strategies = append(strategies, NewSmartStrategy(opener))
		case StrategyMiniport:
			strategies = append(strategies, NewMiniportStrategy(opener))
		case StrategyProperty:
			strategies = append(strategies, NewPropertyStrategy(opener))
		case StrategyWMI:
			strategies = append(strategies, NewWMIStrategy(source))
		case "":
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}
	if len(strategies) == 0 {
		return nil, fmt.Errorf("no strategies selected")
	}
	return strategies, nil
}

// Scan clears the state of the previous scan and runs the strategies. It
// returns the records of the first strategy that found anything and whether
// any strategy succeeded.
func (e *Enumerator) Scan() ([]DriveRecord, bool) {
	e.diag.reset()
	e.rep.reset()

	for _, s := range e.strategies {
		logger := e.logger.With().Str("strategy", s.Name()).Logger()
		pass := &Pass{
			strategy: s.Name(),
			diag:     &e.diag,
			rep:      &e.rep,
			hook:     e.hook,
			logger:   logger,
		}

		records := s.Probe(pass)
		if len(records) > 0 {
			logger.Info().Int("drives", len(records)).Msg("drives identified")
			return records, true
		}
		logger.Debug().Msg("strategy found no drives")
	}

	e.logger.Warn().Int("failures", e.diag.Len()).Msg("no strategy could identify any drive")
	return nil, false
}

// Errors returns the diagnostics of the last scan.
func (e *Enumerator) Errors() []string {
	return e.diag.Lines()
}

// Representative returns the serial and model chosen to stand for the host
// during the last scan. Both are empty when no serial was acceptable.
func (e *Enumerator) Representative() (serial, model string) {
	return e.rep.Serial, e.rep.Model
}
