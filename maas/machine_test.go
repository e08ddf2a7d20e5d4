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
	"testing"

	"github.com/stretchr/testify/assert"
)

const machineListing = `[
  {
    "system_id": "abc123",
    "hostname": "node01",
    "fqdn": "node01.maas",
    "status_name": "Deployed",
    "boot_disk": {
      "id": 11,
      "name": "sda",
      "model": "SAMSUNG MZ7LH1T9",
      "size": 1920383410176,
      "tags": ["ssd", "sata"]
    },
    "blockdevice_set": [
      {
        "id": 11,
        "name": "sda",
        "size": 1920383410176,
        "tags": ["ssd", "sata"]
      },
      {
        "id": 12,
        "name": "sdb",
        "size": "2000398934016",
        "tags": ["rotary", "sata"]
      }
    ],
    "interface_set": [
      {
        "name": "eno1",
        "type": "physical",
        "enabled": true,
        "mac_address": "52:54:00:aa:bb:cc",
        "link_speed": 10000,
        "interface_speed": 10000
      },
      {
        "name": "eno2",
        "type": "physical",
        "enabled": true,
        "mac_address": "52:54:00:aa:bb:cd",
        "link_speed": null,
        "interface_speed": 10000
      },
      {
        "name": "eno1.100",
        "type": "vlan",
        "enabled": true,
        "mac_address": "52:54:00:aa:bb:cc",
        "link_speed": 10000,
        "interface_speed": null
      }
    ],
    "tag_names": ["compute"]
  },
  {
    "system_id": "def456",
    "hostname": "",
    "fqdn": "",
    "boot_disk": null,
    "blockdevice_set": [],
    "interface_set": []
  }
]`

func Test_Decode_Machine_Listing(t *testing.T) {
	assert := assert.New(t)

	machines, err := decodeMachines([]byte(machineListing))
	assert.NoError(err)
	assert.Len(machines, 2)

	m := machines[0]
	assert.Equal("node01", m.Name())
	assert.Equal("Deployed", m.StatusName)

	assert.NotNil(m.BootDisk)
	assert.Equal(int64(11), m.BootDisk.ID)
	assert.True(m.BootDisk.IsSSD())
	assert.Equal("ssd", m.BootDisk.TypeLabel())

	assert.Len(m.BlockDevices, 2)
	// size serialized as a string still decodes
	assert.Equal(int64(2000398934016), m.BlockDevices[1].Size.Value)
	assert.Equal("rotary", m.BlockDevices[1].TypeLabel())

	assert.Len(m.Interfaces, 3)
	assert.True(m.Interfaces[0].Connected())
	assert.False(m.Interfaces[1].Connected())
	assert.Nil(m.Interfaces[1].LinkSpeed)
	assert.Nil(m.Interfaces[2].InterfaceSpeed)

	// machine with nothing filled in
	assert.Nil(machines[1].BootDisk)
	assert.Equal("def456", machines[1].Name())
}

func Test_Decode_Machine_Listing_Invalid(t *testing.T) {
	assert := assert.New(t)

	_, err := decodeMachines([]byte(`{"not": "a list"}`))
	assert.ErrorContains(err, "error parsing machine listing")
}

func Test_Machine_Name_Fallbacks(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name     string
		machine  Machine
		expected string
	}{
		{"hostname wins", Machine{Hostname: "node01", FQDN: "node01.maas", SystemID: "abc"}, "node01"},
		{"fqdn next", Machine{FQDN: "node01.maas", SystemID: "abc"}, "node01.maas"},
		{"system id next", Machine{SystemID: "abc"}, "abc"},
		{"nothing known", Machine{}, "unknown"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(test.expected, test.machine.Name())
		})
	}
}

func Test_SizeBytes_Unmarshal(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name     string
		payload  string
		expected int64
	}{
		{"number", `1000000000000`, 1_000_000_000_000},
		{"string", `"1000000000000"`, 1_000_000_000_000},
		{"empty string", `""`, 0},
		{"garbage string", `"a lot"`, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var s SizeBytes
			err := json.Unmarshal([]byte(test.payload), &s)
			assert.NoError(err)
			assert.Equal(test.expected, s.Value)
		})
	}
}
