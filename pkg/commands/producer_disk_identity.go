// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
	"github.com/cobaltcore-dev/diskid/pkg/producers/diskidentity"
)

var (
	dimNatsURL        string
	dimNatsSubject    string
	dimPromEnabled    bool
	dimPromPort       int
	dimNodeName       string
	dimInstanceID     string
	dimInterval       int
	dimStrategiesFlag string
	dimOnce           bool
	dimS3Endpoint     string
	dimS3Region       string
	dimS3Bucket       string
	dimS3Prefix       string
	dimS3AccessKey    string
	dimS3SecretKey    string
)

var diskIdentityCmd = &cobra.Command{
	Use:   "disk-identity",
	Short: "Physical drive identity collector",
	Run: func(cmd *cobra.Command, args []string) {
		config := diskidentity.DiskIdentityConfig{
			NatsURL:        dimNatsURL,
			NatsSubject:    dimNatsSubject,
			Prometheus:     dimPromEnabled,
			PrometheusPort: dimPromPort,
			NodeName:       dimNodeName,
			InstanceID:     dimInstanceID,
			Interval:       dimInterval,
			Strategies:     splitList(dimStrategiesFlag),
			Once:           dimOnce,
			S3Endpoint:     dimS3Endpoint,
			S3Region:       dimS3Region,
			S3Bucket:       dimS3Bucket,
			S3Prefix:       dimS3Prefix,
			S3AccessKey:    dimS3AccessKey,
			S3SecretKey:    dimS3SecretKey,
		}

		config = mergeDiskIdentityConfigWithEnv(config)

		config.UseNats = config.NatsURL != ""
		config.UseS3 = config.S3Bucket != ""

		event := log.Info()
		event.Bool("use_nats", config.UseNats)
		if config.UseNats {
			event.Str("nats_url", config.NatsURL)
			event.Str("nats_subject", config.NatsSubject)
		}

		event.Bool("prometheus_enabled", config.Prometheus)
		if config.Prometheus {
			event.Int("prometheus_port", config.PrometheusPort)
		}

		event.Bool("use_s3", config.UseS3)
		if config.UseS3 {
			event.Str("s3_bucket", config.S3Bucket).Str("s3_prefix", config.S3Prefix)
		}

		event.Strs("strategies", config.Strategies).
			Str("node_name", config.NodeName).
			Str("instance_id", config.InstanceID).
			Int("interval_seconds", config.Interval).
			Bool("once", config.Once)

		event.Msg("configuration_loaded")

		validateDiskIdentityConfig(config)

		diskidentity.StartMonitoring(config, nil)
	},
}

func mergeDiskIdentityConfigWithEnv(cfg diskidentity.DiskIdentityConfig) diskidentity.DiskIdentityConfig {
	cfg.NatsURL = getEnv("NATS_URL", cfg.NatsURL)
	cfg.NatsSubject = getEnv("NATS_SUBJECT", cfg.NatsSubject)
	cfg.Prometheus = getEnvBool("PROMETHEUS", cfg.Prometheus)
	cfg.PrometheusPort = getEnvInt("PROMETHEUS_PORT", cfg.PrometheusPort)
	cfg.NodeName = getEnv("NODE_NAME", cfg.NodeName)
	cfg.InstanceID = getEnv("INSTANCE_ID", cfg.InstanceID)
	cfg.Interval = getEnvInt("INTERVAL", cfg.Interval)
	cfg.Strategies = getEnvStringSlice("STRATEGIES", cfg.Strategies)
	cfg.Once = getEnvBool("ONCE", cfg.Once)
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3Region = getEnv("S3_REGION", cfg.S3Region)
	cfg.S3Bucket = getEnv("S3_BUCKET", cfg.S3Bucket)
	cfg.S3Prefix = getEnv("S3_PREFIX", cfg.S3Prefix)
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", cfg.S3SecretKey)

	return cfg
}

func init() {
	diskIdentityCmd.Flags().StringVar(&dimNatsURL, "nats-url", "", "NATS server URL")
	diskIdentityCmd.Flags().StringVar(&dimNatsSubject, "nats-subject", "host.disk.identity", "NATS subject to publish drive identities")
	diskIdentityCmd.Flags().BoolVar(&dimPromEnabled, "prometheus", false, "Enable Prometheus metrics")
	diskIdentityCmd.Flags().IntVar(&dimPromPort, "prometheus-port", 8080, "Prometheus metrics port")
	diskIdentityCmd.Flags().StringVar(&dimNodeName, "node-name", "", "Node name (defaults to the host name)")
	diskIdentityCmd.Flags().StringVar(&dimInstanceID, "instance-id", "", "Instance ID (defaults to the host id)")
	diskIdentityCmd.Flags().IntVar(&dimInterval, "interval", 300, "Interval in seconds between scans")
	diskIdentityCmd.Flags().StringVar(&dimStrategiesFlag, "strategies", "smart,miniport,property", "Comma separated list of access strategies in fallback order (smart, miniport, property, wmi)")
	diskIdentityCmd.Flags().BoolVar(&dimOnce, "once", false, "Scan once and exit")
	diskIdentityCmd.Flags().StringVar(&dimS3Endpoint, "s3-endpoint", "", "S3 endpoint for report archiving (empty for AWS)")
	diskIdentityCmd.Flags().StringVar(&dimS3Region, "s3-region", "us-east-1", "S3 region")
	diskIdentityCmd.Flags().StringVar(&dimS3Bucket, "s3-bucket", "", "S3 bucket to archive reports in")
	diskIdentityCmd.Flags().StringVar(&dimS3Prefix, "s3-prefix", "disk-identity", "Key prefix for archived reports")
	diskIdentityCmd.Flags().StringVar(&dimS3AccessKey, "s3-access-key", "", "S3 access key")
	diskIdentityCmd.Flags().StringVar(&dimS3SecretKey, "s3-secret-key", "", "S3 secret key")
}

func validateDiskIdentityConfig(config diskidentity.DiskIdentityConfig) {
	missingParams := false

	if _, err := diskid.StrategiesByName(config.Strategies, diskid.SystemOpener(), diskid.SystemWMI()); err != nil {
		fmt.Printf("Warning: --strategies or STRATEGIES is invalid: %v\n", err)
		missingParams = true
	}

	if !config.Once && config.Interval <= 0 {
		fmt.Println("Warning: --interval or INTERVAL must be positive")
		missingParams = true
	}

	if config.UseS3 && config.S3Region == "" && config.S3Endpoint == "" {
		fmt.Println("Warning: --s3-region or S3_REGION must be set when archiving to S3")
		missingParams = true
	}

	if missingParams {
		fmt.Println("One or more required parameters are missing. Please provide them through flags or environment variables.")
		os.Exit(1)
	}
}
