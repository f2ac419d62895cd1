// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
)

var driveIDCmd = &cobra.Command{
	Use:   "drive-id SERIAL...",
	Short: "Compute the numeric drive id of serial numbers",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, serial := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", serial, diskid.DriveID(serial))
		}
	},
}
