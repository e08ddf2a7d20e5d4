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
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

const diskGaugeHeader = `
	# HELP maasaudit_disk_category_machines Number of machines in each storage remediation category from the last disk report
	# TYPE maasaudit_disk_category_machines gauge
`

const nicGaugeHeader = `
	# HELP maasaudit_nic_compliance_machines Number of machines meeting or failing the connected NIC requirement from the last NIC report
	# TYPE maasaudit_nic_compliance_machines gauge
`

func Test_Disk_Report_Record(t *testing.T) {
	assert := assert.New(t)

	report := NewDiskReport()
	report.Add("node01", NoChangeNeeded)
	report.Add("node02", ReplaceBootDisk)
	report.Add("node03", ReplaceBootDisk)

	report.Record("lab")
	defer DiskCategoryMachines.Reset()

	expected := `
		maasaudit_disk_category_machines{category="need_boot_disk_replacement",profile="lab"} 2
		maasaudit_disk_category_machines{category="need_both_boot_and_second_disk",profile="lab"} 0
		maasaudit_disk_category_machines{category="need_second_disk_addition",profile="lab"} 0
		maasaudit_disk_category_machines{category="need_second_disk_replacement",profile="lab"} 0
		maasaudit_disk_category_machines{category="no_change_needed",profile="lab"} 1
	`

	assert.Empty(testutil.CollectAndCompare(DiskCategoryMachines,
		strings.NewReader(diskGaugeHeader+expected), "maasaudit_disk_category_machines"))
}

func Test_NIC_Report_Record(t *testing.T) {
	assert := assert.New(t)

	report := &NICReport{
		Total:      3,
		Meeting:    []string{"node01", "node02"},
		NotMeeting: []string{"node03"},
	}

	report.Record("lab")
	defer NICComplianceMachines.Reset()

	expected := `
		maasaudit_nic_compliance_machines{compliant="false",profile="lab"} 1
		maasaudit_nic_compliance_machines{compliant="true",profile="lab"} 2
	`

	assert.Empty(testutil.CollectAndCompare(NICComplianceMachines,
		strings.NewReader(nicGaugeHeader+expected), "maasaudit_nic_compliance_machines"))
}
