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

package common

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/comcast/maasaudit/audit"
	cm_vault "github.com/comcast/maasaudit/vault"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

// AuditProfile overrides audit requirements and inventory access per MAAS
// profile. Zero valued fields fall back to the global defaults.
type AuditProfile struct {
	Name             string `yaml:"name" json:"name"`
	Source           string `yaml:"source,omitempty" json:"source,omitempty"`
	MinBootSSDBytes  int64  `yaml:"minBootSSDBytes,omitempty" json:"minBootSSDBytes,omitempty"`
	MinDataSSDBytes  int64  `yaml:"minDataSSDBytes,omitempty" json:"minDataSSDBytes,omitempty"`
	MinConnectedNICs int    `yaml:"minConnectedNICs,omitempty" json:"minConnectedNICs,omitempty"`
	APIEndpoint      string `yaml:"apiEndpoint,omitempty" json:"apiEndpoint,omitempty"`
	APIKey           string `yaml:"apiKey,omitempty" json:"apiKey,omitempty"`
	VaultMountPath   string `yaml:"vaultMountPath,omitempty" json:"vaultMountPath,omitempty"`
	VaultPath        string `yaml:"vaultPath,omitempty" json:"vaultPath,omitempty"`
	KeyField         string `yaml:"keyField,omitempty" json:"keyField,omitempty"`
}

// Requirements returns the audit requirements for this profile with
// defaults filled in.
func (p *AuditProfile) Requirements() audit.Requirements {
	req := audit.DefaultRequirements()
	if p == nil {
		return req
	}
	if p.MinBootSSDBytes > 0 {
		req.MinBootSSDBytes = p.MinBootSSDBytes
	}
	if p.MinDataSSDBytes > 0 {
		req.MinDataSSDBytes = p.MinDataSSDBytes
	}
	if p.MinConnectedNICs > 0 {
		req.MinConnectedNICs = p.MinConnectedNICs
	}
	return req
}

// AuditProfiles is the flag payload, a YAML or JSON document with a
// profiles list.
type AuditProfiles struct {
	Profiles []AuditProfile `yaml:"profiles" json:"profiles"`
}

// AuditProf registers a kingpin flag value that parses profile overrides
// from YAML, falling back to JSON.
func AuditProf(s kingpin.Settings) *AuditProfiles {
	p := &AuditProfiles{}
	s.SetValue(p)
	return p
}

// Set implements kingpin.Value
func (p *AuditProfiles) Set(value string) error {
	if value == "" {
		return nil
	}

	if err := yaml.Unmarshal([]byte(value), p); err != nil {
		if jsonErr := json.Unmarshal([]byte(value), p); jsonErr != nil {
			return fmt.Errorf("error parsing audit profiles: %w", jsonErr)
		}
	}

	for i := range p.Profiles {
		if p.Profiles[i].Name == "" {
			return fmt.Errorf("audit profile at index %d is missing a name", i)
		}
		ProfileStore.Add(&p.Profiles[i])
	}

	return nil
}

// String implements kingpin.Value
func (p *AuditProfiles) String() string {
	out, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(out)
}

var ProfileStore = ProfileRegistry{
	profiles: make(map[string]*AuditProfile),
	keys:     make(map[string]string),
}

// ProfileRegistry holds the parsed profile overrides and caches MAAS API
// keys resolved from vault.
type ProfileRegistry struct {
	mu       sync.Mutex
	profiles map[string]*AuditProfile
	keys     map[string]string
	Vault    *cm_vault.Vault
}

func (r *ProfileRegistry) Add(p *AuditProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Name] = p
}

func (r *ProfileRegistry) Get(name string) (*AuditProfile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[name]
	return p, ok
}

// RequirementsFor returns the requirements for a profile, or the defaults
// when no override is registered.
func (r *ProfileRegistry) RequirementsFor(name string) audit.Requirements {
	p, _ := r.Get(name)
	return p.Requirements()
}

// InvalidateKey drops a cached API key so the next lookup goes back to
// vault. Used when MAAS rejects a key that may have been rotated.
func (r *ProfileRegistry) InvalidateKey(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, name)
}
