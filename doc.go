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

// Package filit answers natural-language questions about SEC filings.
//
// The Service ties together a deterministic question classifier, a
// retrieval orchestrator over a vector search engine, and an LLM
// answer generator. Requests asking the same question concurrently
// share one pipeline execution, finished answers are cached with a
// TTL, and multi-company comparisons fan out with bounded concurrency.
//
// Typical usage:
//
//	client, err := weaviate.Connect("localhost:8080", "http")
//	if err != nil { ... }
//	generator, err := openai.NewGenerator(ai.NewConfig(
//	    ai.WithToken(os.Getenv("OPENAI_API_KEY")),
//	))
//	if err != nil { ... }
//	svc, err := filit.NewService(client, generator)
//	if err != nil { ... }
//	defer svc.Close()
//
//	result, err := svc.Chat(ctx, &core.ChatRequest{
//	    Ticker:   "AAPL",
//	    Question: "What are the main risk factors?",
//	})
package filit
