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
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DiskCategoryMachines tracks how many machines sit in each remediation
	// category, updated on every successful disk report.
	DiskCategoryMachines = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "maasaudit_disk_category_machines",
		Help: "Number of machines in each storage remediation category from the last disk report",
	}, []string{"profile", "category"})

	// NICComplianceMachines tracks NIC compliance counts per profile.
	NICComplianceMachines = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "maasaudit_nic_compliance_machines",
		Help: "Number of machines meeting or failing the connected NIC requirement from the last NIC report",
	}, []string{"profile", "compliant"})

	// LastReportTimestamp records when a report kind last completed per profile.
	LastReportTimestamp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "maasaudit_last_report_timestamp_seconds",
		Help: "Unix timestamp of the last completed report",
	}, []string{"profile", "kind"})
)

// RegisterMetrics registers the audit gauges with the given registerer.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		DiskCategoryMachines,
		NICComplianceMachines,
		LastReportTimestamp,
	)
}

// Record publishes the disk report counts for a profile.
func (r *DiskReport) Record(profile string) {
	for _, c := range DiskCategories {
		DiskCategoryMachines.WithLabelValues(profile, c.Key()).Set(float64(r.Count(c)))
	}
	LastReportTimestamp.WithLabelValues(profile, "disks").Set(float64(time.Now().Unix()))
}

// Record publishes the NIC report counts for a profile.
func (r *NICReport) Record(profile string) {
	NICComplianceMachines.WithLabelValues(profile, "true").Set(float64(len(r.Meeting)))
	NICComplianceMachines.WithLabelValues(profile, "false").Set(float64(len(r.NotMeeting)))
	LastReportTimestamp.WithLabelValues(profile, "nics").Set(float64(time.Now().Unix()))
}
