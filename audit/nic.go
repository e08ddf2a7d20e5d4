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

	"github.com/comcast/maasaudit/maas"
)

// InterfaceInfo is the audited view of a single physical interface.
type InterfaceInfo struct {
	Name           string
	Enabled        bool
	InterfaceSpeed *int
	LinkSpeed      *int
	Connected      bool
}

// NICSummary is the result of auditing a machine's network interfaces.
type NICSummary struct {
	Interfaces       []InterfaceInfo
	ConnectedCount   int
	MeetsRequirement bool
}

// AnalyzeInterfaces counts connected physical interfaces. VLAN interfaces
// carry a dot in their name and are excluded, they ride on a physical port
// that is already counted.
func AnalyzeInterfaces(m *maas.Machine, req Requirements) NICSummary {
	var summary NICSummary

	for i := range m.Interfaces {
		iface := &m.Interfaces[i]

		name := iface.Name
		if name == "" {
			name = "unknown"
		}
		if strings.Contains(name, ".") {
			continue
		}

		connected := iface.Connected()
		if connected {
			summary.ConnectedCount++
		}

		summary.Interfaces = append(summary.Interfaces, InterfaceInfo{
			Name:           name,
			Enabled:        iface.Enabled,
			InterfaceSpeed: iface.InterfaceSpeed,
			LinkSpeed:      iface.LinkSpeed,
			Connected:      connected,
		})
	}

	summary.MeetsRequirement = summary.ConnectedCount >= req.MinConnectedNICs

	return summary
}
