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


package core

import (
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint is a deterministic key derived from normalized request
// parameters. It is used both as a cache key and as a coalescing key,
// so the derivation must stay byte-for-byte stable: two logically
// identical requests always produce the same fingerprint regardless of
// case or surrounding whitespace.
type Fingerprint string

// maxQuestionKeyLen bounds the question's contribution to the key.
// Long questions rarely differ past this point and a bounded key keeps
// hashing cheap.
const maxQuestionKeyLen = 100

// NewFingerprint derives a fingerprint from a ticker, a question, and
// any extra mode-affecting parameters. The ticker is uppercased, the
// question lowercased, trimmed, and truncated to maxQuestionKeyLen
// characters. Extra parameters must be passed in a fixed order by the
// caller; they are joined verbatim.
func NewFingerprint(ticker, question string, params ...string) Fingerprint {
	q := strings.ToLower(strings.TrimSpace(question))
	if runes := []rune(q); len(runes) > maxQuestionKeyLen {
		q = string(runes[:maxQuestionKeyLen])
	}

	parts := make([]string, 0, 2+len(params))
	parts = append(parts, strings.ToUpper(strings.TrimSpace(ticker)), q)
	parts = append(parts, params...)

	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(strings.Join(parts, "|")))
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}
