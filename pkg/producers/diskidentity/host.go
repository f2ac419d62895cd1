// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskidentity

import (
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/host"
)

// fillHostDefaults uses the host name and host id for whatever node name or
// instance id the configuration left empty.
func fillHostDefaults(cfg DiskIdentityConfig) DiskIdentityConfig {
	if cfg.NodeName != "" && cfg.InstanceID != "" {
		return cfg
	}

	info, err := host.Info()
	if err != nil {
		log.Warn().Err(err).Msg("error reading host info")
		return cfg
	}
	if cfg.NodeName == "" {
		cfg.NodeName = info.Hostname
	}
	if cfg.InstanceID == "" {
		cfg.InstanceID = info.HostID
	}
	return cfg
}
