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

// Package ai defines the answer-generation abstraction and prompt
// construction for filing Q&A.
//
// The Generator interface decouples the orchestration layer from the
// model provider. Package openai provides the production implementation
// via OpenAI-compatible chat APIs; package mock provides a test double.
package ai
