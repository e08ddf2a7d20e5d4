/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package audit

import (
	"fmt"

	"github.com/comcast/maasaudit/maas"
)

// DiskCategory is the remediation bucket a machine lands in after the
// storage audit.
type DiskCategory int

const (
	NoChangeNeeded DiskCategory = iota
	ReplaceBootDisk
	ReplaceSecondDisk
	AddSecondDisk
	ReplaceBootAndSecondDisk
)

// DiskCategories lists every category in summary output order.
var DiskCategories = []DiskCategory{
	NoChangeNeeded,
	ReplaceBootDisk,
	ReplaceSecondDisk,
	AddSecondDisk,
	ReplaceBootAndSecondDisk,
}

// Key is the stable machine-readable identifier used for JSON output and
// metric labels.
func (c DiskCategory) Key() string {
	switch c {
	case NoChangeNeeded:
		return "no_change_needed"
	case ReplaceBootDisk:
		return "need_boot_disk_replacement"
	case ReplaceSecondDisk:
		return "need_second_disk_replacement"
	case AddSecondDisk:
		return "need_second_disk_addition"
	case ReplaceBootAndSecondDisk:
		return "need_both_boot_and_second_disk"
	}
	return "unknown"
}

// Heading is the section title used in the plain text summary.
func (c DiskCategory) Heading() string {
	switch c {
	case NoChangeNeeded:
		return "NO CHANGES NEEDED"
	case ReplaceBootDisk:
		return "REPLACE BOOT DISK with 1TB+ SSD"
	case ReplaceSecondDisk:
		return "REPLACE SECOND DISK with 1TB+ SSD"
	case AddSecondDisk:
		return "ADD SECOND 1TB+ SSD"
	case ReplaceBootAndSecondDisk:
		return "REPLACE BOOT DISK + ADD/REPLACE SECOND DISK"
	}
	return "UNKNOWN"
}

// BootDiskInfo is the result of auditing a machine's boot disk.
type BootDiskInfo struct {
	// nil when the machine record carries no boot disk
	ID               *int64
	Size             int64
	IsSSD            bool
	MeetsRequirement bool
	Info             string
}

// AnalyzeBootDisk inspects the configured boot disk. A machine without
// boot disk information fails the boot disk requirement.
func AnalyzeBootDisk(m *maas.Machine, req Requirements) BootDiskInfo {
	boot := m.BootDisk
	if boot == nil {
		return BootDiskInfo{
			Info: "No boot disk information available",
		}
	}

	id := boot.ID
	size := boot.Size.Value
	isSSD := boot.IsSSD()

	diskType := "not ssd"
	if isSSD {
		diskType = "ssd"
	}

	name := boot.Name
	if name == "" {
		name = "unknown"
	}

	return BootDiskInfo{
		ID:               &id,
		Size:             size,
		IsSSD:            isSSD,
		MeetsRequirement: isSSD && size >= req.MinBootSSDBytes,
		Info:             fmt.Sprintf("%s - %s (%s)", name, FormatSize(size), diskType),
	}
}

// BlockDeviceSummary is the result of auditing a machine's non-boot
// block devices.
type BlockDeviceSummary struct {
	AdditionalBigSSDs int
	HasSmallExtraSSD  bool
	DeviceInfo        []string
}

// AnalyzeBlockDevices counts the additional SSDs that satisfy the data disk
// requirement. When the boot disk id is unknown every device counts as a
// candidate, matching how the audit treats machines with incomplete records.
func AnalyzeBlockDevices(m *maas.Machine, bootID *int64, req Requirements) BlockDeviceSummary {
	var summary BlockDeviceSummary

	for i := range m.BlockDevices {
		device := &m.BlockDevices[i]
		size := device.Size.Value

		name := device.Name
		if name == "" {
			name = "unnamed"
		}
		summary.DeviceInfo = append(summary.DeviceInfo,
			fmt.Sprintf("%s: %s (%s)", name, FormatSize(size), device.TypeLabel()))

		if bootID != nil && device.ID == *bootID {
			continue
		}
		if !device.IsSSD() {
			continue
		}

		if size >= req.MinDataSSDBytes {
			summary.AdditionalBigSSDs++
		} else {
			summary.HasSmallExtraSSD = true
		}
	}

	return summary
}

// CategorizeDisk maps the boot disk and block device audit results to a
// remediation category.
func CategorizeDisk(boot BootDiskInfo, devices BlockDeviceSummary) DiskCategory {
	bootOK := boot.MeetsRequirement
	hasData := devices.AdditionalBigSSDs >= 1

	switch {
	case bootOK && hasData:
		return NoChangeNeeded
	case !bootOK && hasData:
		return ReplaceBootDisk
	case bootOK && devices.HasSmallExtraSSD:
		return ReplaceSecondDisk
	case bootOK:
		return AddSecondDisk
	}
	return ReplaceBootAndSecondDisk
}
