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

// Package weaviate adapts a Weaviate instance to the retrieval search
// interface. Vector queries use nearText, hybrid queries combine
// vector similarity with BM25 keyword matching.
package weaviate

import (
	"context"
	"fmt"
	"strconv"

	wv "github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/poiesic/filit/core"
	"github.com/poiesic/filit/retrieval"
)

// DefaultClassName is the collection holding filing chunks.
const DefaultClassName = "FilingChunk"

// defaultHybridAlpha weights the vector component of a hybrid query.
const defaultHybridAlpha = 0.5

// Client implements retrieval.SearchClient against a Weaviate instance.
type Client struct {
	conn      *wv.Client
	className string
	alpha     float32
}

// Option configures a Client.
type Option func(*Client) error

// WithClassName overrides the collection name.
// Default is DefaultClassName.
func WithClassName(name string) Option {
	return func(c *Client) error {
		if name == "" {
			return ErrClassNameRequired
		}
		c.className = name
		return nil
	}
}

// WithHybridAlpha sets the vector weight for hybrid queries. 0 is pure
// keyword, 1 is pure vector.
func WithHybridAlpha(alpha float32) Option {
	return func(c *Client) error {
		if alpha < 0 || alpha > 1 {
			return ErrInvalidAlpha
		}
		c.alpha = alpha
		return nil
	}
}

// NewClient wraps an established Weaviate connection.
func NewClient(conn *wv.Client, opts ...Option) (*Client, error) {
	if conn == nil {
		return nil, ErrConnectionRequired
	}

	c := &Client{
		conn:      conn,
		className: DefaultClassName,
		alpha:     defaultHybridAlpha,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Connect dials a Weaviate instance at host (e.g. "localhost:8080")
// and wraps it in a Client.
func Connect(host, scheme string, opts ...Option) (*Client, error) {
	if host == "" {
		return nil, ErrConnectionRequired
	}
	if scheme == "" {
		scheme = "http"
	}
	conn, err := wv.NewClient(wv.Config{Host: host, Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("connecting to weaviate: %w", err)
	}
	return NewClient(conn, opts...)
}

// Search runs a nearText vector query filtered to the given ticker and
// source.
func (c *Client) Search(ctx context.Context, query string, topK int, filter retrieval.Filter) ([]core.Passage, error) {
	nearText := c.conn.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	builder := c.conn.GraphQL().Get().
		WithClassName(c.className).
		WithFields(passageFields()...).
		WithNearText(nearText).
		WithLimit(topK)

	if where := buildWhere(filter); where != nil {
		builder = builder.WithWhere(where)
	}

	result, err := builder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return c.parseResponse(result)
}

// HybridSearch runs a hybrid (vector + BM25) query filtered to the
// given ticker and source.
func (c *Client) HybridSearch(ctx context.Context, query string, topK int, filter retrieval.Filter) ([]core.Passage, error) {
	hybrid := c.conn.GraphQL().HybridArgumentBuilder().
		WithQuery(query).
		WithAlpha(c.alpha)

	builder := c.conn.GraphQL().Get().
		WithClassName(c.className).
		WithFields(passageFields()...).
		WithHybrid(hybrid).
		WithLimit(topK)

	if where := buildWhere(filter); where != nil {
		builder = builder.WithWhere(where)
	}

	result, err := builder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("hybrid search: %w", err)
	}
	return c.parseResponse(result)
}

func passageFields() []graphql.Field {
	return []graphql.Field{
		{Name: "text"},
		{Name: "ticker"},
		{Name: "formType"},
		{Name: "year"},
		{Name: "section"},
		{Name: "source"},
		{Name: "chunkIndex"},
		{Name: "_additional { id certainty score }"},
	}
}

// buildWhere combines the ticker and source constraints. Returns nil
// when the filter is empty.
func buildWhere(filter retrieval.Filter) *filters.WhereBuilder {
	var operands []*filters.WhereBuilder

	if filter.Ticker != "" {
		operands = append(operands, filters.Where().
			WithPath([]string{"ticker"}).
			WithOperator(filters.Equal).
			WithValueString(filter.Ticker))
	}
	if filter.Source != "" {
		operands = append(operands, filters.Where().
			WithPath([]string{"source"}).
			WithOperator(filters.Equal).
			WithValueString(filter.Source))
	}

	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	default:
		return filters.Where().
			WithOperator(filters.And).
			WithOperands(operands)
	}
}

// parseResponse flattens a GraphQL response into passages.
func (c *Client) parseResponse(result *models.GraphQLResponse) ([]core.Passage, error) {
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, result.Errors[0].Message)
	}

	data, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	objects, ok := data[c.className].([]interface{})
	if !ok {
		return nil, nil
	}

	passages := make([]core.Passage, 0, len(objects))
	for _, obj := range objects {
		m, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}

		p := core.Passage{
			Text: getString(m, "text"),
			Metadata: map[string]string{
				"ticker":      getString(m, "ticker"),
				"form_type":   getString(m, "formType"),
				"year":        getNumberString(m, "year"),
				"section":     getString(m, "section"),
				"source":      getString(m, "source"),
				"chunk_index": getNumberString(m, "chunkIndex"),
			},
		}

		if additional, ok := m["_additional"].(map[string]interface{}); ok {
			if id, ok := additional["id"].(string); ok {
				p.ID = id
			}
			if certainty, ok := additional["certainty"].(float64); ok {
				p.Score = certainty
			} else if score, ok := additional["score"].(string); ok {
				if f, err := strconv.ParseFloat(score, 64); err == nil {
					p.Score = f
				}
			}
		}

		passages = append(passages, p)
	}
	return passages, nil
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getNumberString renders a numeric field as its decimal string; the
// GraphQL layer hands ints back as float64.
func getNumberString(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case float64:
		return strconv.Itoa(int(v))
	case string:
		return v
	default:
		return ""
	}
}
