// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskidentity

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cobaltcore-dev/diskid/pkg/diskid"
)

var vendorPatterns = []struct {
	pattern *regexp.Regexp
	vendor  string
}{
	{regexp.MustCompile(`(?i)^DL2400`), "Seagate"},
	{regexp.MustCompile(`(?i)TOSHIBA`), "Toshiba"},
	{regexp.MustCompile(`(?i)^MG0[345678]`), "Toshiba"},
	{regexp.MustCompile(`(?i)INTEL`), "Intel"},
	{regexp.MustCompile(`(?i)KIOXIA`), "Kioxia"},
	{regexp.MustCompile(`(?i)WESTERN`), "WesternDigital"},
	{regexp.MustCompile(`(?i)WDC`), "WesternDigital"},
	{regexp.MustCompile(`(?i)^WD-W`), "WesternDigital"},
	{regexp.MustCompile(`(?i)^WD100`), "WesternDigital"},
	{regexp.MustCompile(`(?i)SEAGATE`), "Seagate"},
	{regexp.MustCompile(`(?i)^ST[12345789][0123456789]`), "Seagate"},
	{regexp.MustCompile(`(?i)MAXTOR`), "Maxtor"},
	{regexp.MustCompile(`(?i)^IBM-`), "IBM"},
	{regexp.MustCompile(`(?i)HGST`), "HGST"},
	{regexp.MustCompile(`(?i)^HU[HS]`), "HGST"},
	{regexp.MustCompile(`(?i)HITACHI`), "Hitachi"},
	{regexp.MustCompile(`(?i)MICRON`), "Micron"},
	{regexp.MustCompile(`(?i)MTFDD`), "Micron"},
	{regexp.MustCompile(`(?i)SANDISK`), "SanDisk"},
	{regexp.MustCompile(`(?i)SAMSUNG`), "Samsung"},
	{regexp.MustCompile(`(?i)^MZ7`), "Samsung"},
}

// genericVendorIDs are vendor ids reported by bridges and controllers rather
// than by the drive maker.
var genericVendorIDs = map[string]bool{
	"":                       true,
	"ata":                    true,
	"scsi":                   true,
	"nvme":                   true,
	"(standard disk drives)": true,
}

// FindVendor guesses the manufacturer from the model and serial numbers.
func FindVendor(model, serial string) string {
	for _, entry := range vendorPatterns {
		if entry.pattern.MatchString(model) || entry.pattern.MatchString(serial) {
			return entry.vendor
		}
	}
	return ""
}

// VendorName picks the best manufacturer name for rec: the model and serial
// patterns first, then the vendor id the drive reported.
func VendorName(rec diskid.DriveRecord) string {
	if vendor := FindVendor(rec.Model, rec.Serial); vendor != "" {
		return vendor
	}
	if genericVendorIDs[strings.ToLower(rec.Vendor)] {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(rec.Vendor))
}

// detectOEMRelationship detects drives sold under a system vendor's name
func detectOEMRelationship(vendor, model string) string {
	vendor = strings.ToLower(vendor)
	model = strings.ToLower(model)
	if genericVendorIDs[vendor] {
		return ""
	}

	caser := cases.Title(language.English)

	makers := []struct{ needle, name string }{
		{"seagate", "Seagate"},
		{"western digital", "WD"},
		{"wdc", "WD"},
		{"toshiba", "Toshiba"},
		{"hgst", "HGST"},
		{"samsung", "Samsung"},
		{"intel", "Intel"},
	}
	for _, m := range makers {
		if strings.Contains(model, m.needle) && !strings.Contains(vendor, m.needle) {
			return fmt.Sprintf("%s (%s OEM)", caser.String(vendor), m.name)
		}
	}
	return ""
}

func newDriveInfo(rec diskid.DriveRecord) DriveInfo {
	return DriveInfo{
		DriveRecord: rec,
		SizeBytes:   rec.Size(),
		DriveID:     diskid.RecordID(rec),
		VendorName:  VendorName(rec),
		OEM:         detectOEMRelationship(rec.Vendor, rec.Model),
	}
}
