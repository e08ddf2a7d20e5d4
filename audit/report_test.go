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
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/comcast/maasaudit/maas"
	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	machines []maas.Machine
	err      error
}

func (s *stubClient) ListMachines(ctx context.Context, f maas.Filter) ([]maas.Machine, error) {
	return s.machines, s.err
}

func Test_Run_Disk_Report(t *testing.T) {
	assert := assert.New(t)

	compliantBoot := ssd(1, "sda", 1_000_000_000_000)
	lonelyBoot := ssd(1, "sda", 2_000_000_000_000)

	client := &stubClient{
		machines: []maas.Machine{
			{
				Hostname:     "node01",
				BootDisk:     &compliantBoot,
				BlockDevices: []maas.BlockDevice{compliantBoot, ssd(2, "sdb", 2_000_000_000_000)},
			},
			{
				Hostname:     "node02",
				BootDisk:     &lonelyBoot,
				BlockDevices: []maas.BlockDevice{lonelyBoot},
			},
		},
	}

	var buf bytes.Buffer
	report, err := RunDiskReport(context.Background(), client, maas.Filter{}, DefaultRequirements(), &buf)
	assert.NoError(err)

	assert.Equal(2, report.Total)
	assert.Equal([]string{"node01"}, report.Categories[NoChangeNeeded.Key()])
	assert.Equal([]string{"node02"}, report.Categories[AddSecondDisk.Key()])
	assert.Equal(1, report.Count(NoChangeNeeded))
	assert.Equal(0, report.Count(ReplaceBootDisk))

	out := buf.String()
	assert.Contains(out, "Number of machines returned: 2")
	assert.Contains(out, "Machine: node01")
	assert.Contains(out, "Boot disk: sda - 0.91 TiB (1.00 TB) (ssd)")
	assert.Contains(out, "SUMMARY - Changes needed to meet requirements:")
	assert.Contains(out, "NO CHANGES NEEDED (1 machines):")
	assert.Contains(out, "ADD SECOND 1TB+ SSD (1 machines):")
	assert.Contains(out, "Total machines: 2")
	assert.Contains(out, "Machines meeting requirements: 1")
	assert.NotContains(out, "REPLACE BOOT DISK with 1TB+ SSD")
}

func Test_Run_NIC_Report(t *testing.T) {
	assert := assert.New(t)

	client := &stubClient{
		machines: []maas.Machine{
			{
				Hostname: "node01",
				Interfaces: []maas.Interface{
					{Name: "eno1", Enabled: true, LinkSpeed: speed(10000), InterfaceSpeed: speed(10000)},
					{Name: "eno2", Enabled: true, LinkSpeed: speed(10000), InterfaceSpeed: speed(10000)},
					{Name: "eno3", Enabled: true, LinkSpeed: speed(10000), InterfaceSpeed: speed(10000)},
				},
			},
			{
				Hostname: "node02",
				Interfaces: []maas.Interface{
					{Name: "eno1", Enabled: true, LinkSpeed: speed(1000), InterfaceSpeed: speed(10000)},
					{Name: "eno2", Enabled: true},
					{Name: "eno1.100", Enabled: true, LinkSpeed: speed(1000)},
				},
			},
		},
	}

	var buf bytes.Buffer
	report, err := RunNICReport(context.Background(), client, maas.Filter{}, DefaultRequirements(), &buf)
	assert.NoError(err)

	assert.Equal(2, report.Total)
	assert.Equal([]string{"node01"}, report.Meeting)
	assert.Equal([]string{"node02"}, report.NotMeeting)

	out := buf.String()
	assert.Contains(out, "Number of machines returned: 2")
	assert.Contains(out, "Machine: node01 ✅")
	assert.Contains(out, "Machine: node02 ❌")
	assert.Contains(out, "    Interface speed: 10 Gbps")
	assert.Contains(out, "    Link speed: unknown")
	assert.Contains(out, "Connected NICs: 1 (need ≥3)")
	assert.Contains(out, "Machines meeting requirements (≥3 connected NICs): 1")
	assert.Contains(out, "✅ MACHINES MEETING REQUIREMENTS (1):")
	assert.Contains(out, "❌ MACHINES NOT MEETING REQUIREMENTS (1):")
	// the VLAN interface never shows up in the detail listing
	assert.NotContains(out, "eno1.100")
}

func Test_Run_Report_Propagates_Errors(t *testing.T) {
	assert := assert.New(t)

	client := &stubClient{err: errors.New("maas command failed: exit status 2")}

	var buf bytes.Buffer
	_, err := RunDiskReport(context.Background(), client, maas.Filter{}, DefaultRequirements(), &buf)
	assert.ErrorContains(err, "maas command failed")
	assert.Empty(buf.String())

	_, err = RunNICReport(context.Background(), client, maas.Filter{}, DefaultRequirements(), &buf)
	assert.Error(err)
}
