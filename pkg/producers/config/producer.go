// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/cobaltcore-dev/diskid/pkg/producers/diskidentity"
)

func diskIdentitySettings(producer ProducerConfig, globalConfig GlobalConfig) diskidentity.DiskIdentityConfig {
	natsURL := GetStringSetting(producer.Settings, "nats_url", globalConfig.NatsURL)
	nodeName := GetStringSetting(producer.Settings, "node_name", globalConfig.NodeName)
	instanceID := GetStringSetting(producer.Settings, "instance_id", globalConfig.InstanceID)
	s3Bucket := GetStringSetting(producer.Settings, "s3_bucket", "")
	interval := GetIntSetting(producer.Settings, "interval", diskidentity.DefaultInterval)
	if interval <= 0 {
		log.Warn().Int("interval", interval).Msg("disk_identity interval must be positive, using default")
		interval = diskidentity.DefaultInterval
	}

	return diskidentity.DiskIdentityConfig{
		NatsURL:        natsURL,
		NatsSubject:    GetStringSetting(producer.Settings, "nats_subject", "host.disk.identity"),
		UseNats:        natsURL != "",
		Prometheus:     GetBoolSetting(producer.Settings, "prometheus", false),
		PrometheusPort: GetIntSetting(producer.Settings, "prometheus_port", 8080),
		Interval:       interval,
		NodeName:       nodeName,
		InstanceID:     instanceID,
		Strategies:     GetStringSliceSetting(producer.Settings, "strategies", nil),
		UseS3:          s3Bucket != "",
		S3Bucket:       s3Bucket,
		S3Prefix:       GetStringSetting(producer.Settings, "s3_prefix", "disk-identity"),
		S3Endpoint:     GetStringSetting(producer.Settings, "s3_endpoint", globalConfig.S3Endpoint),
		S3Region:       GetStringSetting(producer.Settings, "s3_region", globalConfig.S3Region),
		S3AccessKey:    GetStringSetting(producer.Settings, "access_key", globalConfig.AccessKey),
		S3SecretKey:    GetStringSetting(producer.Settings, "secret_key", globalConfig.SecretKey),
	}
}

func StartProducers(producer ProducerConfig, globalConfig GlobalConfig, rescan <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	switch producer.Type {
	case "disk_identity":
		settings := diskIdentitySettings(producer, globalConfig)
		log.Info().Str("name", producer.Name).Msg("--- disk identity ---")
		diskidentity.StartMonitoring(settings, rescan)
	default:
		log.Warn().Msgf("unknown producer type: %s", producer.Type)
	}
}
