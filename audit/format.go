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

import "fmt"

// FormatSize renders a byte count in both binary and decimal terabytes,
// disks are sold in TB but partitioned in TiB so operators want both.
func FormatSize(sizeBytes int64) string {
	tib := float64(sizeBytes) / (1 << 40)
	tb := float64(sizeBytes) / 1e12
	return fmt.Sprintf("%.2f TiB (%.2f TB)", tib, tb)
}

// FormatSpeed renders a speed reported in Mbps. A nil speed means MAAS
// has no link information for the interface.
func FormatSpeed(speed *int) string {
	if speed == nil {
		return "unknown"
	}
	if *speed >= 1000 {
		return fmt.Sprintf("%d Gbps", *speed/1000)
	}
	return fmt.Sprintf("%d Mbps", *speed)
}
