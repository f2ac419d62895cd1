// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
	"github.com/cobaltcore-dev/diskid/pkg/producers/diskidentity"
)

var (
	scanFormat     string
	scanProgress   bool
	scanStrategies string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Identify the physical drives of this host once and print them",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := diskidentity.DiskIdentityConfig{
			Strategies: splitList(scanStrategies),
		}
		cfg.Strategies = getEnvStringSlice("STRATEGIES", cfg.Strategies)

		var hooks []diskid.ProbeHook
		var bar *progressbar.ProgressBar
		if scanProgress {
			bar = newProbeSpinner(os.Stderr)
			hooks = append(hooks, probeSpinnerHook(bar))
		}

		enumerator, err := diskidentity.NewEnumerator(cfg, hooks...)
		if err != nil {
			log.Fatal().Err(err).Msg("error configuring strategies")
		}

		report := diskidentity.CollectDriveReport(enumerator, cfg)
		if bar != nil {
			_ = bar.Finish()
		}

		if err := writeReport(os.Stdout, report, scanFormat); err != nil {
			log.Fatal().Err(err).Msg("error writing report")
		}
		if !report.Success {
			os.Exit(1)
		}
	},
}

func newProbeSpinner(w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("probing"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func probeSpinnerHook(bar *progressbar.ProgressBar) diskid.ProbeHook {
	return func(ev diskid.ProbeEvent) {
		bar.Describe(fmt.Sprintf("probing %s slot %d", ev.Strategy, ev.Slot))
		_ = bar.Add(1)
	}
}

func writeReport(w io.Writer, report diskidentity.DriveReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "table", "":
		return writeReportTable(w, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeReportTable(w io.Writer, report diskidentity.DriveReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTROLLER\tPOSITION\tSOURCE\tMODEL\tSERIAL\tREVISION\tMEDIA\tSIZE MB\tDRIVE ID")
	for _, d := range report.Drives {
		position := "secondary"
		if d.Primary {
			position = "primary"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			d.Controller, position, d.Source, d.Model, d.Serial, d.Revision,
			d.Media, d.SizeBytes/(1024*1024), d.DriveID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.RepresentativeSerial != "" {
		fmt.Fprintf(w, "\nHard Drive Serial Number: %s\n", report.RepresentativeSerial)
		fmt.Fprintf(w, "Hard Drive Model Number: %s\n", report.RepresentativeModel)
	}
	for _, line := range report.Errors {
		fmt.Fprintln(w, line)
	}
	return nil
}

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "o", "table", "Output format (table, json)")
	scanCmd.Flags().BoolVar(&scanProgress, "progress", false, "Show a spinner while probing devices")
	scanCmd.Flags().StringVar(&scanStrategies, "strategies", "", "Comma separated list of access strategies in fallback order (smart, miniport, property, wmi)")
}
