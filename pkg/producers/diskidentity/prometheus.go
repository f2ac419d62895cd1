// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskidentity

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
)

var (
	driveCapacityGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_identity_capacity_bytes",
			Help: "Capacity of the drive in bytes",
		},
		[]string{"controller", "model", "serial", "node", "instance"},
	)

	driveInfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_identity_info",
			Help: "Identity of the drive, always 1",
		},
		[]string{"controller", "model", "serial", "revision", "vendor", "media", "drive_id", "source", "node", "instance"},
	)

	drivesFoundGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_identity_drives",
			Help: "Number of drives identified by the last scan",
		},
		[]string{"node", "instance"},
	)

	scanSuccessGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_identity_scan_success",
			Help: "Whether the last scan identified any drive",
		},
		[]string{"node", "instance"},
	)

	probeFailuresCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "disk_identity_probe_failures_total",
			Help: "Number of failed device probes per strategy",
		},
		[]string{"strategy", "node", "instance"},
	)
)

func init() {
	prometheus.MustRegister(driveCapacityGauge)
	prometheus.MustRegister(driveInfoGauge)
	prometheus.MustRegister(drivesFoundGauge)
	prometheus.MustRegister(scanSuccessGauge)
	prometheus.MustRegister(probeFailuresCounter)
}

// PublishToPrometheus replaces the per-drive series with the drives of report
func PublishToPrometheus(report DriveReport) {
	driveCapacityGauge.Reset()
	driveInfoGauge.Reset()

	for _, drive := range report.Drives {
		controller := strconv.Itoa(drive.Controller)
		driveCapacityGauge.With(prometheus.Labels{
			"controller": controller,
			"model":      drive.Model,
			"serial":     drive.Serial,
			"node":       report.NodeName,
			"instance":   report.InstanceID,
		}).Set(float64(drive.SizeBytes))

		driveInfoGauge.With(prometheus.Labels{
			"controller": controller,
			"model":      drive.Model,
			"serial":     drive.Serial,
			"revision":   drive.Revision,
			"vendor":     drive.VendorName,
			"media":      drive.Media.String(),
			"drive_id":   strconv.FormatUint(drive.DriveID, 10),
			"source":     drive.Source,
			"node":       report.NodeName,
			"instance":   report.InstanceID,
		}).Set(1)
	}

	labels := prometheus.Labels{"node": report.NodeName, "instance": report.InstanceID}
	drivesFoundGauge.With(labels).Set(float64(len(report.Drives)))
	if report.Success {
		scanSuccessGauge.With(labels).Set(1)
	} else {
		scanSuccessGauge.With(labels).Set(0)
	}
}

// probeFailureHook counts failed probes per strategy
func probeFailureHook(cfg DiskIdentityConfig) diskid.ProbeHook {
	return func(ev diskid.ProbeEvent) {
		if ev.Err == nil {
			return
		}
		probeFailuresCounter.With(prometheus.Labels{
			"strategy": ev.Strategy,
			"node":     cfg.NodeName,
			"instance": cfg.InstanceID,
		}).Inc()
	}
}

// ReportStore keeps the latest report for the HTTP endpoints
type ReportStore struct {
	mu     sync.RWMutex
	latest *DriveReport
}

func (s *ReportStore) Set(report DriveReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &report
}

func (s *ReportStore) Latest() (DriveReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return DriveReport{}, false
	}
	return *s.latest, true
}

func newRouter(store *ReportStore) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/drives", func(w http.ResponseWriter, req *http.Request) {
		report, ok := store.Latest()
		if !ok {
			http.Error(w, "no scan finished yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			log.Error().Err(err).Msg("error encoding drive report")
		}
	}).Methods(http.MethodGet)
	r.HandleFunc("/drives/{serial}", func(w http.ResponseWriter, req *http.Request) {
		report, ok := store.Latest()
		if !ok {
			http.Error(w, "no scan finished yet", http.StatusServiceUnavailable)
			return
		}
		serial := mux.Vars(req)["serial"]
		for _, drive := range report.Drives {
			if drive.Serial == serial {
				w.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(w).Encode(drive); err != nil {
					log.Error().Err(err).Msg("error encoding drive")
				}
				return
			}
		}
		http.NotFound(w, req)
	}).Methods(http.MethodGet)
	return r
}

func StartPrometheusServer(port int, store *ReportStore) {
	go func() {
		log.Info().Msgf("starting prometheus metrics server on :%d", port)
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), newRouter(store))
		if err != nil {
			log.Fatal().Err(err).Msg("error starting prometheus metrics server")
		}
	}()
}
