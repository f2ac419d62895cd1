// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
global:
  nats_url: nats://127.0.0.1:4222
  node_name: node-a
  s3_region: eu-de-1
producers:
  - name: drives
    type: disk_identity
    settings:
      interval: 60
      prometheus: true
      strategies: [property, wmi]
      s3_bucket: inventory
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(viper.New(), writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Global.NatsURL)
	assert.Equal(t, "node-a", cfg.Global.NodeName)
	require.Len(t, cfg.Producers, 1)
	assert.Equal(t, "disk_identity", cfg.Producers[0].Type)

	_, err = loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDiskIdentitySettings(t *testing.T) {
	cfg, err := loadConfig(viper.New(), writeConfig(t, testConfig))
	require.NoError(t, err)

	settings := diskIdentitySettings(cfg.Producers[0], cfg.Global)
	assert.True(t, settings.UseNats)
	assert.Equal(t, "nats://127.0.0.1:4222", settings.NatsURL)
	assert.Equal(t, "host.disk.identity", settings.NatsSubject)
	assert.True(t, settings.Prometheus)
	assert.Equal(t, 8080, settings.PrometheusPort)
	assert.Equal(t, 60, settings.Interval)
	assert.Equal(t, "node-a", settings.NodeName)
	assert.Equal(t, []string{"property", "wmi"}, settings.Strategies)
	assert.True(t, settings.UseS3)
	assert.Equal(t, "inventory", settings.S3Bucket)
	assert.Equal(t, "disk-identity", settings.S3Prefix)
	assert.Equal(t, "eu-de-1", settings.S3Region)
}

func TestDiskIdentitySettingsNonPositiveInterval(t *testing.T) {
	for _, interval := range []int{0, -30} {
		producer := ProducerConfig{
			Type:     "disk_identity",
			Settings: map[string]interface{}{"interval": interval},
		}
		settings := diskIdentitySettings(producer, GlobalConfig{})
		assert.Equal(t, 300, settings.Interval)
	}

	cfg, err := loadConfig(viper.New(), writeConfig(t, `
producers:
  - name: drives
    type: disk_identity
    settings:
      interval: 0
`))
	require.NoError(t, err)
	settings := diskIdentitySettings(cfg.Producers[0], cfg.Global)
	assert.Equal(t, 300, settings.Interval)
	assert.Equal(t, 5*time.Minute, settings.ScanInterval())
}

func TestRescannerDoesNotBlock(t *testing.T) {
	var r Rescanner
	a := r.Subscribe()
	b := r.Subscribe()

	r.Trigger()
	r.Trigger()

	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
	<-a
	assert.Len(t, a, 0)
}

func TestWatchConfig(t *testing.T) {
	path := writeConfig(t, testConfig)
	v := viper.New()
	_, err := loadConfig(v, path)
	require.NoError(t, err)

	changed := make(chan *Config, 16)
	watchConfig(v, func(cfg *Config) { changed <- cfg })

	updated := []byte(testConfig + "  - name: second\n    type: disk_identity\n")
	require.NoError(t, os.WriteFile(path, updated, 0o600))

	// a rewrite may surface as several events, the last one carries the
	// complete file
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changed:
			if len(cfg.Producers) == 2 {
				assert.Equal(t, "second", cfg.Producers[1].Name)
				return
			}
		case <-timeout:
			t.Fatal("config change was not noticed")
		}
	}
}
