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

func speed(mbps int) *int {
	return &mbps
}

func Test_Analyze_Interfaces(t *testing.T) {
	assert := assert.New(t)
	req := DefaultRequirements()

	tests := []struct {
		name              string
		interfaces        []maas.Interface
		expectedSeen      int
		expectedConnected int
		expectedMeets     bool
	}{
		{
			name: "three connected physical interfaces meet the requirement",
			interfaces: []maas.Interface{
				{Name: "eno1", Enabled: true, LinkSpeed: speed(10000), InterfaceSpeed: speed(10000)},
				{Name: "eno2", Enabled: true, LinkSpeed: speed(10000), InterfaceSpeed: speed(10000)},
				{Name: "eno3", Enabled: true, LinkSpeed: speed(1000), InterfaceSpeed: speed(10000)},
			},
			expectedSeen:      3,
			expectedConnected: 3,
			expectedMeets:     true,
		},
		{
			name: "VLAN interfaces are excluded from the count",
			interfaces: []maas.Interface{
				{Name: "eno1", Enabled: true, LinkSpeed: speed(10000)},
				{Name: "eno2", Enabled: true, LinkSpeed: speed(10000)},
				{Name: "eno1.100", Enabled: true, LinkSpeed: speed(10000)},
			},
			expectedSeen:      2,
			expectedConnected: 2,
			expectedMeets:     false,
		},
		{
			name: "null link speed counts as disconnected",
			interfaces: []maas.Interface{
				{Name: "eno1", Enabled: true, LinkSpeed: speed(25000)},
				{Name: "eno2", Enabled: true, LinkSpeed: speed(25000)},
				{Name: "eno3", Enabled: true},
				{Name: "eno4", Enabled: false, LinkSpeed: speed(0)},
			},
			expectedSeen:      4,
			expectedConnected: 2,
			expectedMeets:     false,
		},
		{
			name:          "no interface information",
			interfaces:    nil,
			expectedSeen:  0,
			expectedMeets: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := maas.Machine{Hostname: "node01", Interfaces: test.interfaces}
			summary := AnalyzeInterfaces(&m, req)

			assert.Len(summary.Interfaces, test.expectedSeen)
			assert.Equal(test.expectedConnected, summary.ConnectedCount)
			assert.Equal(test.expectedMeets, summary.MeetsRequirement)
		})
	}
}

func Test_Analyze_Interfaces_Custom_Requirement(t *testing.T) {
	assert := assert.New(t)

	m := maas.Machine{
		Interfaces: []maas.Interface{
			{Name: "eno1", Enabled: true, LinkSpeed: speed(10000)},
			{Name: "eno2", Enabled: true, LinkSpeed: speed(10000)},
		},
	}

	req := DefaultRequirements()
	req.MinConnectedNICs = 2

	summary := AnalyzeInterfaces(&m, req)
	assert.True(summary.MeetsRequirement)
}
