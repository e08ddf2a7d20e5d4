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

// Requirements are the hardware targets machines are audited against.
type Requirements struct {
	// minimum boot disk size, the boot disk must also be an SSD
	MinBootSSDBytes int64
	// minimum size of the additional data SSD
	MinDataSSDBytes int64
	// minimum number of connected non-VLAN interfaces
	MinConnectedNICs int
}

// DefaultRequirements returns the platform baseline, a 1TB+ SSD boot disk,
// at least one additional 1TB+ SSD and three connected NICs.
func DefaultRequirements() Requirements {
	return Requirements{
		MinBootSSDBytes:  1_000_000_000_000,
		MinDataSSDBytes:  1_000_000_000_000,
		MinConnectedNICs: 3,
	}
}
