// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/diskid/pkg/producers/config"
)

var (
	configFilePath string
	watchConfig    bool
)

var localProducerCmd = &cobra.Command{
	Use:   "local-producer",
	Short: "Local producer commands",
}

var useConfigCmd = &cobra.Command{
	Use:   "use-config",
	Short: "Start local producers using configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configFilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}

		var rescanner config.Rescanner
		var wg sync.WaitGroup

		for _, producer := range cfg.Producers {
			wg.Add(1)
			go config.StartProducers(producer, cfg.Global, rescanner.Subscribe(), &wg)
		}

		if watchConfig {
			// drives get rescanned right away, interval and sinks only
			// change on restart
			config.WatchConfig(func(*config.Config) {
				rescanner.Trigger()
			})
		}

		wg.Wait()
	},
}

func init() {
	useConfigCmd.Flags().StringVar(&configFilePath, "config", "", "Path to configuration file")
	useConfigCmd.Flags().BoolVar(&watchConfig, "watch", true, "Rescan when the configuration file changes")
	useConfigCmd.MarkFlagRequired("config")
	localProducerCmd.AddCommand(useConfigCmd)

	localProducerCmd.AddCommand(diskIdentityCmd)
}
