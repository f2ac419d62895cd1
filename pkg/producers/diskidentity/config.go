// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskidentity

import "time"

// DefaultInterval is the number of seconds between scans when none is set.
const DefaultInterval = 300

type DiskIdentityConfig struct {
	NatsURL        string
	NatsSubject    string
	UseNats        bool
	Prometheus     bool
	PrometheusPort int
	Interval       int
	NodeName       string
	InstanceID     string
	Strategies     []string
	Once           bool

	UseS3       bool
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
}

// ScanInterval returns the time between scans, using DefaultInterval when
// Interval is not positive.
func (c DiskIdentityConfig) ScanInterval() time.Duration {
	if c.Interval <= 0 {
		return DefaultInterval * time.Second
	}
	return time.Duration(c.Interval) * time.Second
}
