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

package maas

import (
	"encoding/json"
	"strconv"
)

// Machine is the subset of the MAAS machine record the audits care about.
// Fields we never read are left out on purpose, the upstream payload is huge.
type Machine struct {
	SystemID     string        `json:"system_id"`
	Hostname     string        `json:"hostname"`
	FQDN         string        `json:"fqdn"`
	StatusName   string        `json:"status_name"`
	BootDisk     *BlockDevice  `json:"boot_disk"`
	BlockDevices []BlockDevice `json:"blockdevice_set"`
	Interfaces   []Interface   `json:"interface_set"`
	TagNames     []string      `json:"tag_names"`
}

// Name returns the best available identifier for report output.
func (m *Machine) Name() string {
	switch {
	case m.Hostname != "":
		return m.Hostname
	case m.FQDN != "":
		return m.FQDN
	case m.SystemID != "":
		return m.SystemID
	}
	return "unknown"
}

type BlockDevice struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	Model  string    `json:"model"`
	Serial string    `json:"serial"`
	Size   SizeBytes `json:"size"`
	Tags   []string  `json:"tags"`
}

// IsSSD reports whether MAAS tagged the device as an SSD.
func (d *BlockDevice) IsSSD() bool {
	return d.hasTag("ssd")
}

func (d *BlockDevice) IsRotary() bool {
	return d.hasTag("rotary")
}

// TypeLabel returns the media type string used in report output.
func (d *BlockDevice) TypeLabel() string {
	if d.IsSSD() {
		return "ssd"
	}
	if d.IsRotary() {
		return "rotary"
	}
	return "unknown"
}

func (d *BlockDevice) hasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type Interface struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Enabled        bool   `json:"enabled"`
	MACAddress     string `json:"mac_address"`
	LinkSpeed      *int   `json:"link_speed"`
	InterfaceSpeed *int   `json:"interface_speed"`
}

// Connected reports whether the interface has an established link.
// MAAS reports link_speed as null for interfaces it has never seen up.
func (i *Interface) Connected() bool {
	return i.LinkSpeed != nil && *i.LinkSpeed > 0
}

// SizeBytes handles both number and string values for device sizes,
// older MAAS releases serialized sizes as strings
type SizeBytes struct {
	Value int64
}

func (s *SizeBytes) UnmarshalJSON(data []byte) error {
	var intVal int64
	err := json.Unmarshal(data, &intVal)
	if err == nil {
		s.Value = intVal
		return nil
	}

	var stringVal string
	err = json.Unmarshal(data, &stringVal)
	if err == nil {
		if stringVal == "" {
			s.Value = 0
			return nil
		}

		intVal, err := strconv.ParseInt(stringVal, 10, 64)
		if err != nil {
			s.Value = 0
		} else {
			s.Value = intVal
		}
		return nil
	}

	return err
}

func (s SizeBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}
