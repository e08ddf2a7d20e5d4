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

	"github.com/stretchr/testify/assert"
)

func Test_Format_Size(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1.82 TiB (2.00 TB)", FormatSize(2_000_000_000_000))
	assert.Equal("0.91 TiB (1.00 TB)", FormatSize(1_000_000_000_000))
	assert.Equal("0.00 TiB (0.00 TB)", FormatSize(0))
}

func Test_Format_Speed(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("unknown", FormatSpeed(nil))
	assert.Equal("100 Mbps", FormatSpeed(speed(100)))
	assert.Equal("1 Gbps", FormatSpeed(speed(1000)))
	assert.Equal("2 Gbps", FormatSpeed(speed(2500)))
	assert.Equal("10 Gbps", FormatSpeed(speed(10000)))
}

func Test_Size_Requirement_Label(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1TB+", sizeRequirementLabel(1_000_000_000_000))
	assert.Equal("2TB+", sizeRequirementLabel(2_000_000_000_000))
	assert.Equal("500GB+", sizeRequirementLabel(500_000_000_000))
}
