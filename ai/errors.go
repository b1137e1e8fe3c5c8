// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"strings"
)

var (
	// ErrNoResponse is returned when the model produces no choices.
	ErrNoResponse = errors.New("model returned no response")
)

// IsCredentialError reports whether err looks like an API key or
// authentication failure. Providers do not expose a typed error for
// this, so the check works on the message text.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(msg, "401") {
		return true
	}
	if strings.Contains(lower, "authentication") {
		return true
	}
	return strings.Contains(lower, "invalid") && strings.Contains(lower, "key")
}
