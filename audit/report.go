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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/comcast/maasaudit/maas"
)

const sectionRule = 60

// DiskReport groups machine names by remediation category.
type DiskReport struct {
	Total      int                 `json:"total"`
	Categories map[string][]string `json:"categories"`
}

func NewDiskReport() *DiskReport {
	return &DiskReport{
		Categories: make(map[string][]string),
	}
}

func (r *DiskReport) Add(name string, c DiskCategory) {
	r.Total++
	r.Categories[c.Key()] = append(r.Categories[c.Key()], name)
}

// Count returns the number of machines in a category.
func (r *DiskReport) Count(c DiskCategory) int {
	return len(r.Categories[c.Key()])
}

// WriteSummary prints the categorized remediation summary.
func (r *DiskReport) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", sectionRule))
	fmt.Fprintln(w, "SUMMARY - Changes needed to meet requirements:")
	fmt.Fprintln(w, strings.Repeat("=", sectionRule))

	for _, c := range DiskCategories {
		machines := r.Categories[c.Key()]
		if len(machines) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d machines):\n", c.Heading(), len(machines))
		for _, m := range machines {
			fmt.Fprintf(w, "  - %s\n", m)
		}
	}

	fmt.Fprintf(w, "\nTotal machines: %d\n", r.Total)
	fmt.Fprintf(w, "Machines meeting requirements: %d\n", r.Count(NoChangeNeeded))
}

// RunDiskReport fetches machine inventory, prints the per machine storage
// details and the remediation summary, and returns the grouped result.
func RunDiskReport(ctx context.Context, client maas.Client, f maas.Filter, req Requirements, w io.Writer) (*DiskReport, error) {
	machines, err := client.ListMachines(ctx, f)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "Number of machines returned: %d\n", len(machines))

	report := NewDiskReport()
	for i := range machines {
		m := &machines[i]
		boot := AnalyzeBootDisk(m, req)
		devices := AnalyzeBlockDevices(m, boot.ID, req)
		writeDiskMachineDetails(w, m.Name(), boot, devices, req)
		report.Add(m.Name(), CategorizeDisk(boot, devices))
	}

	report.WriteSummary(w)
	return report, nil
}

func writeDiskMachineDetails(w io.Writer, name string, boot BootDiskInfo, devices BlockDeviceSummary, req Requirements) {
	fmt.Fprintf(w, "\nMachine: %s\n", name)
	fmt.Fprintf(w, "Boot disk: %s\n", boot.Info)

	fmt.Fprintf(w, "Block devices (%d):\n", len(devices.DeviceInfo))
	for _, info := range devices.DeviceInfo {
		fmt.Fprintf(w, "  - %s\n", info)
	}

	meets := boot.MeetsRequirement && devices.AdditionalBigSSDs >= 1

	fmt.Fprintln(w, "\nRequirements check:")
	fmt.Fprintf(w, "  Boot disk is %s SSD: %s\n", sizeRequirementLabel(req.MinBootSSDBytes), checkmark(boot.MeetsRequirement))
	fmt.Fprintf(w, "  Additional %s SSDs: %d (need ≥1)\n", sizeRequirementLabel(req.MinDataSSDBytes), devices.AdditionalBigSSDs)
	fmt.Fprintf(w, "  Machine meets requirements: %s\n", yesNo(meets))
	fmt.Fprintln(w, strings.Repeat("-", sectionRule))
}

// NICReport splits machine names by network compliance.
type NICReport struct {
	Total      int      `json:"total"`
	Meeting    []string `json:"meeting"`
	NotMeeting []string `json:"not_meeting"`
}

// WriteSummary prints the network compliance summary.
func (r *NICReport) WriteSummary(w io.Writer, req Requirements) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", sectionRule))
	fmt.Fprintln(w, "SUMMARY - Network Interface Requirements:")
	fmt.Fprintln(w, strings.Repeat("=", sectionRule))

	fmt.Fprintf(w, "\nTotal machines processed: %d\n", r.Total)
	fmt.Fprintf(w, "Machines meeting requirements (≥%d connected NICs): %d\n", req.MinConnectedNICs, len(r.Meeting))
	fmt.Fprintf(w, "Machines not meeting requirements: %d\n", len(r.NotMeeting))

	if len(r.Meeting) > 0 {
		fmt.Fprintf(w, "\n✅ MACHINES MEETING REQUIREMENTS (%d):\n", len(r.Meeting))
		for _, m := range r.Meeting {
			fmt.Fprintf(w, "  - %s\n", m)
		}
	}

	if len(r.NotMeeting) > 0 {
		fmt.Fprintf(w, "\n❌ MACHINES NOT MEETING REQUIREMENTS (%d):\n", len(r.NotMeeting))
		for _, m := range r.NotMeeting {
			fmt.Fprintf(w, "  - %s\n", m)
		}
	}
}

// RunNICReport fetches machine inventory, prints the per machine interface
// details and the compliance summary, and returns the grouped result.
func RunNICReport(ctx context.Context, client maas.Client, f maas.Filter, req Requirements, w io.Writer) (*NICReport, error) {
	machines, err := client.ListMachines(ctx, f)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "Number of machines returned: %d\n", len(machines))

	report := &NICReport{}
	for i := range machines {
		m := &machines[i]
		summary := AnalyzeInterfaces(m, req)
		writeNICMachineDetails(w, m.Name(), summary, req)

		report.Total++
		if summary.MeetsRequirement {
			report.Meeting = append(report.Meeting, m.Name())
		} else {
			report.NotMeeting = append(report.NotMeeting, m.Name())
		}
	}

	report.WriteSummary(w, req)
	return report, nil
}

func writeNICMachineDetails(w io.Writer, name string, summary NICSummary, req Requirements) {
	fmt.Fprintf(w, "\nMachine: %s %s\n", name, checkmark(summary.MeetsRequirement))
	fmt.Fprintf(w, "Network interfaces (%d):\n", len(summary.Interfaces))

	if len(summary.Interfaces) == 0 {
		fmt.Fprintln(w, "  No interface information available")
	}
	for _, iface := range summary.Interfaces {
		status := "disabled"
		if iface.Enabled {
			status = "enabled"
		}
		connection := "disconnected"
		if iface.Connected {
			connection = "connected"
		}
		fmt.Fprintf(w, "  - %s: %s, %s\n", iface.Name, status, connection)
		fmt.Fprintf(w, "    Interface speed: %s\n", FormatSpeed(iface.InterfaceSpeed))
		fmt.Fprintf(w, "    Link speed: %s\n", FormatSpeed(iface.LinkSpeed))
	}

	fmt.Fprintf(w, "\nConnected NICs: %d (need ≥%d)\n", summary.ConnectedCount, req.MinConnectedNICs)
	fmt.Fprintf(w, "Meets requirement: %s\n", yesNo(summary.MeetsRequirement))
	fmt.Fprintln(w, strings.Repeat("-", sectionRule))
}

func checkmark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func yesNo(ok bool) string {
	if ok {
		return "✅ YES"
	}
	return "❌ NO"
}

func sizeRequirementLabel(minBytes int64) string {
	if minBytes%1_000_000_000_000 == 0 {
		return fmt.Sprintf("%dTB+", minBytes/1_000_000_000_000)
	}
	return fmt.Sprintf("%dGB+", minBytes/1_000_000_000)
}
