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
	"context"
	"errors"
	"fmt"

	"github.com/comcast/maasaudit/config"
	"github.com/comcast/maasaudit/maas"
	cm_vault "github.com/comcast/maasaudit/vault"
	"go.uber.org/zap"
)

var ErrNoAPIKey = errors.New("no MAAS API key available")

// NewMAASClient builds the inventory client for a profile. The source is
// the CLI unless the global config or a profile override selects the API.
func NewMAASClient(ctx context.Context, profile string) (maas.Client, error) {
	c := config.GetConfig()
	p, _ := ProfileStore.Get(profile)

	source := c.Source
	if p != nil && p.Source != "" {
		source = p.Source
	}

	if source != "api" {
		return maas.NewCLIClient(profile), nil
	}

	endpoint := c.APIEndpoint
	if p != nil && p.APIEndpoint != "" {
		endpoint = p.APIEndpoint
	}
	if endpoint == "" {
		return nil, fmt.Errorf("no MAAS API endpoint configured for profile %q", profile)
	}

	key, err := ProfileStore.APIKeyFor(ctx, profile)
	if err != nil {
		return nil, err
	}

	return maas.NewAPIClient(endpoint, key)
}

// APIKeyFor resolves the MAAS API key for a profile: an inline profile key
// wins, then a vault lookup, then the globally configured key.
func (r *ProfileRegistry) APIKeyFor(ctx context.Context, name string) (string, error) {
	log := zap.L()

	p, _ := r.Get(name)
	if p != nil && p.APIKey != "" {
		return p.APIKey, nil
	}

	if p != nil && p.VaultPath != "" {
		r.mu.Lock()
		cached, ok := r.keys[name]
		r.mu.Unlock()
		if ok {
			return cached, nil
		}

		if r.Vault == nil {
			return "", fmt.Errorf("profile %q references vault but no vault client is configured", name)
		}

		keyField := p.KeyField
		if keyField == "" {
			keyField = "api_key"
		}

		props := &cm_vault.SecretProperties{
			MountPath: p.VaultMountPath,
			Path:      p.VaultPath,
			KeyField:  keyField,
		}

		secret, err := r.Vault.GetKVSecret(ctx, props, name)
		if err != nil {
			log.Error("issue retrieving MAAS API key from vault", zap.String("profile", name), zap.Error(err))
			return "", fmt.Errorf("issue retrieving MAAS API key from vault for profile %q: %w", name, err)
		}

		key, ok := secret.Data[keyField].(string)
		if !ok {
			return "", fmt.Errorf("the secret retrieved from vault for profile %q is missing the %q field", name, keyField)
		}

		r.mu.Lock()
		r.keys[name] = key
		r.mu.Unlock()
		return key, nil
	}

	if key := config.GetConfig().APIKey; key != "" {
		return key, nil
	}

	return "", fmt.Errorf("%w for profile %q", ErrNoAPIKey, name)
}
