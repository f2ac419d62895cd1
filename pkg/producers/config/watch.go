// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Rescanner fans a rescan request out to every running producer.
type Rescanner struct {
	mu    sync.Mutex
	chans []chan struct{}
}

// Subscribe returns a channel receiving at most one pending request.
func (r *Rescanner) Subscribe() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan struct{}, 1)
	r.chans = append(r.chans, ch)
	return ch
}

// Trigger requests a rescan without waiting for producers busy scanning.
func (r *Rescanner) Trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.chans {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// WatchConfig calls onChange with the reloaded configuration whenever the
// loaded config file changes on disk.
func WatchConfig(onChange func(*Config)) {
	watchConfig(viper.GetViper(), onChange)
}

func watchConfig(v *viper.Viper, onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("config_changed")
		cfg, err := decodeConfig(v)
		if err != nil {
			log.Error().Err(err).Msg("error reloading config")
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
