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

package filings

import "context"

// Filing identifies one SEC filing available for ingestion.
type Filing struct {
	Ticker     string
	FormType   string
	FilingDate string
	URL        string
}

// ID returns a stable identifier for the filing.
func (f Filing) ID() string {
	return f.Ticker + "_" + f.FormType + "_" + f.FilingDate
}

// Fetcher is the boundary to the filing source. Implementations talk
// to EDGAR or an internal mirror; the orchestration layer only needs
// listing and ingestion.
type Fetcher interface {
	// FetchRecent lists the most recent filings for a ticker, at most
	// count per form type.
	FetchRecent(ctx context.Context, ticker string, formTypes []string, count int) ([]Filing, error)

	// Ingest downloads a filing and makes its chunks searchable.
	Ingest(ctx context.Context, filing Filing) error
}
