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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/comcast/maasaudit/config"
	"go.uber.org/zap"
)

// Client lists machine inventory from a MAAS region controller.
type Client interface {
	ListMachines(ctx context.Context, f Filter) ([]Machine, error)
}

// Filter narrows a machine listing. Zero values mean no filtering.
type Filter struct {
	Tag      string
	Hostname string
}

func (f Filter) args() []string {
	var args []string
	if f.Tag != "" {
		args = append(args, "tags="+f.Tag)
	}
	if f.Hostname != "" {
		args = append(args, "hostname="+f.Hostname)
	}
	return args
}

// CLIClient shells out to the maas CLI using a preconfigured profile,
// i.e. `maas <profile> machines read [tags=X] [hostname=Y]`.
type CLIClient struct {
	Profile string
	Binary  string
	Timeout time.Duration
}

func NewCLIClient(profile string) *CLIClient {
	c := config.GetConfig()
	return &CLIClient{
		Profile: profile,
		Binary:  c.MAASBinary,
		Timeout: c.MAASTimeout,
	}
}

func (c *CLIClient) ListMachines(ctx context.Context, f Filter) ([]Machine, error) {
	log := zap.L()

	binary := c.Binary
	if binary == "" {
		binary = "maas"
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append([]string{c.Profile, "machines", "read"}, f.args()...)
	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("invoking maas CLI", zap.String("binary", binary), zap.Strings("args", args))

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("maas command failed: %w - %s", err, msg)
		}
		return nil, fmt.Errorf("maas command failed: %w", err)
	}

	machines, err := decodeMachines(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	return machines, nil
}

func decodeMachines(body []byte) ([]Machine, error) {
	var machines []Machine
	if err := json.Unmarshal(body, &machines); err != nil {
		return nil, fmt.Errorf("error parsing machine listing: %w", err)
	}
	return machines, nil
}
