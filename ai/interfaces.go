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

import "context"

// Generator produces an answer from a system prompt and a user prompt.
// Implementations wrap a specific model provider.
type Generator interface {
	// Generate returns the model's answer text. Errors carry the raw
	// provider message so callers can classify credential failures.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Provider returns the provider identifier (e.g. "openai").
	Provider() string
}
