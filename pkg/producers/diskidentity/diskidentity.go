// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskidentity

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
)

const uploadTimeout = 30 * time.Second

// scanner is the part of diskid.Enumerator a report is built from.
type scanner interface {
	Scan() ([]diskid.DriveRecord, bool)
	Errors() []string
	Representative() (serial, model string)
}

// NewEnumerator builds an enumerator running the configured strategies on
// the system devices. Every hook is called for every probe.
func NewEnumerator(cfg DiskIdentityConfig, hooks ...diskid.ProbeHook) (*diskid.Enumerator, error) {
	names := cfg.Strategies
	if len(names) == 0 {
		names = diskid.DefaultStrategyNames
	}
	strategies, err := diskid.StrategiesByName(names, diskid.SystemOpener(), diskid.SystemWMI())
	if err != nil {
		return nil, err
	}

	return diskid.NewEnumerator(
		diskid.WithStrategies(strategies...),
		diskid.WithLogger(log.Logger),
		diskid.WithProbeHook(func(ev diskid.ProbeEvent) {
			for _, hook := range hooks {
				if hook != nil {
					hook(ev)
				}
			}
		}),
	), nil
}

// CollectDriveReport runs one scan and assembles its report.
func CollectDriveReport(s scanner, cfg DiskIdentityConfig) DriveReport {
	records, ok := s.Scan()
	serial, model := s.Representative()

	report := DriveReport{
		ScanID:               uuid.NewString(),
		NodeName:             cfg.NodeName,
		InstanceID:           cfg.InstanceID,
		Timestamp:            time.Now(),
		Success:              ok,
		Drives:               make([]DriveInfo, 0, len(records)),
		Rows:                 ProjectRows(records, CRC64),
		Errors:               s.Errors(),
		RepresentativeSerial: serial,
		RepresentativeModel:  model,
	}
	for _, rec := range records {
		report.Drives = append(report.Drives, newDriveInfo(rec))
	}

	if !ok {
		log.Warn().Strs("errors", report.Errors).Msg("no drive could be identified")
	} else {
		log.Info().Str("scan_id", report.ScanID).Int("drives", len(report.Drives)).Str("serial", serial).Msg("scan finished")
	}
	return report
}

func StartMonitoring(cfg DiskIdentityConfig, rescan <-chan struct{}) {
	cfg = fillHostDefaults(cfg)

	enumerator, err := NewEnumerator(cfg, probeFailureHook(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("error configuring strategies")
	}

	var nc *nats.Conn
	if cfg.UseNats {
		nc, err = nats.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to nats")
		}
		defer nc.Close()
	}

	var uploader reportUploader
	if cfg.UseS3 {
		uploader, err = newS3Uploader(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating s3 uploader")
		}
	}

	store := &ReportStore{}
	if cfg.Prometheus {
		StartPrometheusServer(cfg.PrometheusPort, store)
	}

	publish := func() {
		report := CollectDriveReport(enumerator, cfg)
		store.Set(report)

		if cfg.Prometheus {
			PublishToPrometheus(report)
		}

		if cfg.UseNats {
			if err := PublishToNATS(report, nc, cfg.NatsSubject); err != nil {
				log.Error().Err(err).Msg("error publishing drive report to nats")
			}
		} else if !cfg.Prometheus {
			reportJSON, err := json.Marshal(report)
			if err != nil {
				log.Error().Err(err).Msg("error marshalling drive report to json")
			} else {
				fmt.Println(string(reportJSON))
			}
		}

		if uploader != nil {
			ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
			key, err := UploadReport(ctx, uploader, cfg, report)
			cancel()
			if err != nil {
				log.Error().Err(err).Msg("error archiving drive report")
			} else {
				log.Info().Str("key", key).Msg("drive report archived")
			}
		}
	}

	publish()
	if cfg.Once {
		return
	}

	if cfg.Interval <= 0 {
		log.Warn().Int("interval", cfg.Interval).Int("default", DefaultInterval).Msg("interval must be positive, using default")
	}
	ticker := time.NewTicker(cfg.ScanInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-rescan:
			log.Info().Msg("rescan requested")
		}
		publish()
	}
}
