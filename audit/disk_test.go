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
	"testing"

	"github.com/comcast/maasaudit/maas"
	"github.com/stretchr/testify/assert"
)

func ssd(id int64, name string, size int64) maas.BlockDevice {
	return maas.BlockDevice{
		ID:   id,
		Name: name,
		Size: maas.SizeBytes{Value: size},
		Tags: []string{"ssd"},
	}
}

func rotary(id int64, name string, size int64) maas.BlockDevice {
	return maas.BlockDevice{
		ID:   id,
		Name: name,
		Size: maas.SizeBytes{Value: size},
		Tags: []string{"rotary"},
	}
}

func Test_Categorize_Disk(t *testing.T) {
	assert := assert.New(t)
	req := DefaultRequirements()

	bigSSDBoot := ssd(1, "sda", 2_000_000_000_000)
	smallSSDBoot := ssd(1, "sda", 500_000_000_000)
	rotaryBoot := rotary(1, "sda", 2_000_000_000_000)

	tests := []struct {
		name     string
		machine  maas.Machine
		expected DiskCategory
	}{
		{
			name: "1TB+ SSD boot disk and additional 1TB+ SSD needs no change",
			machine: maas.Machine{
				Hostname:     "node01",
				BootDisk:     &bigSSDBoot,
				BlockDevices: []maas.BlockDevice{bigSSDBoot, ssd(2, "sdb", 1_000_000_000_000)},
			},
			expected: NoChangeNeeded,
		},
		{
			name: "2TB SSD boot disk with no other disk needs a second disk",
			machine: maas.Machine{
				Hostname:     "node02",
				BootDisk:     &bigSSDBoot,
				BlockDevices: []maas.BlockDevice{bigSSDBoot},
			},
			expected: AddSecondDisk,
		},
		{
			name: "500GB boot disk with a 2TB SSD second disk needs a boot disk replacement",
			machine: maas.Machine{
				Hostname:     "node03",
				BootDisk:     &smallSSDBoot,
				BlockDevices: []maas.BlockDevice{smallSSDBoot, ssd(2, "sdb", 2_000_000_000_000)},
			},
			expected: ReplaceBootDisk,
		},
		{
			name: "1TB+ SSD boot disk with an undersized extra SSD needs a second disk replacement",
			machine: maas.Machine{
				Hostname:     "node04",
				BootDisk:     &bigSSDBoot,
				BlockDevices: []maas.BlockDevice{bigSSDBoot, ssd(2, "sdb", 480_000_000_000)},
			},
			expected: ReplaceSecondDisk,
		},
		{
			name: "rotary boot disk with only rotary extras needs everything",
			machine: maas.Machine{
				Hostname:     "node05",
				BootDisk:     &rotaryBoot,
				BlockDevices: []maas.BlockDevice{rotaryBoot, rotary(2, "sdb", 4_000_000_000_000)},
			},
			expected: ReplaceBootAndSecondDisk,
		},
		{
			name: "big rotary boot disk with a 1TB+ SSD extra needs a boot disk replacement",
			machine: maas.Machine{
				Hostname:     "node06",
				BootDisk:     &rotaryBoot,
				BlockDevices: []maas.BlockDevice{rotaryBoot, ssd(2, "sdb", 2_000_000_000_000)},
			},
			expected: ReplaceBootDisk,
		},
		{
			name: "missing boot disk information fails the boot requirement",
			machine: maas.Machine{
				Hostname:     "node07",
				BlockDevices: []maas.BlockDevice{ssd(2, "sdb", 2_000_000_000_000)},
			},
			expected: ReplaceBootDisk,
		},
		{
			name:     "no disks at all",
			machine:  maas.Machine{Hostname: "node08"},
			expected: ReplaceBootAndSecondDisk,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			boot := AnalyzeBootDisk(&test.machine, req)
			devices := AnalyzeBlockDevices(&test.machine, boot.ID, req)
			assert.Equal(test.expected, CategorizeDisk(boot, devices))
		})
	}
}

func Test_Analyze_Boot_Disk(t *testing.T) {
	assert := assert.New(t)
	req := DefaultRequirements()

	boot := ssd(7, "nvme0n1", 2_000_000_000_000)
	m := maas.Machine{Hostname: "node01", BootDisk: &boot}

	info := AnalyzeBootDisk(&m, req)
	assert.True(info.IsSSD)
	assert.True(info.MeetsRequirement)
	assert.NotNil(info.ID)
	assert.Equal(int64(7), *info.ID)
	assert.Equal("nvme0n1 - 1.82 TiB (2.00 TB) (ssd)", info.Info)

	empty := AnalyzeBootDisk(&maas.Machine{Hostname: "node02"}, req)
	assert.False(empty.MeetsRequirement)
	assert.Nil(empty.ID)
	assert.Equal("No boot disk information available", empty.Info)

	spinner := rotary(3, "sda", 2_000_000_000_000)
	notSSD := AnalyzeBootDisk(&maas.Machine{BootDisk: &spinner}, req)
	assert.False(notSSD.IsSSD)
	assert.False(notSSD.MeetsRequirement)
	assert.Equal("sda - 1.82 TiB (2.00 TB) (not ssd)", notSSD.Info)
}

func Test_Analyze_Block_Devices(t *testing.T) {
	assert := assert.New(t)
	req := DefaultRequirements()

	bootID := int64(1)
	m := maas.Machine{
		BlockDevices: []maas.BlockDevice{
			ssd(1, "sda", 2_000_000_000_000),
			ssd(2, "sdb", 1_000_000_000_000),
			ssd(3, "sdc", 256_000_000_000),
			rotary(4, "sdd", 8_000_000_000_000),
		},
	}

	summary := AnalyzeBlockDevices(&m, &bootID, req)
	assert.Equal(1, summary.AdditionalBigSSDs)
	assert.True(summary.HasSmallExtraSSD)
	assert.Len(summary.DeviceInfo, 4)
	assert.Equal("sdd: 7.28 TiB (8.00 TB) (rotary)", summary.DeviceInfo[3])

	// unknown boot disk id means every big SSD counts as additional
	summary = AnalyzeBlockDevices(&m, nil, req)
	assert.Equal(2, summary.AdditionalBigSSDs)
}
