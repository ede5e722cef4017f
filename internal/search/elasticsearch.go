package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/rs/zerolog/log"

	"example.com/relieftrack/services/tracker/config"
	"example.com/relieftrack/services/tracker/internal/model"
)

// ActivityIndex is the logical index name for audit entries; the configured
// prefix is prepended on every call.
const ActivityIndex = "activity-logs"

// Client indexes and searches activity log entries
type Client struct {
	es  *elasticsearch.Client
	cfg config.Config
}

// NewClient creates a new Elasticsearch client and verifies the connection
func NewClient(cfg config.Config) (*Client, error) {
	elasticCfg := elasticsearch.Config{
		Addresses: []string{cfg.ElasticSearchURL},
		Username:  cfg.ElasticSearchUsername,
		Password:  cfg.ElasticSearchPassword,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	}

	es, err := elasticsearch.NewClient(elasticCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("error connecting to Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch returned error: %s", res.String())
	}

	log.Info().Msg("Successfully connected to Elasticsearch")
	return &Client{es: es, cfg: cfg}, nil
}

// FormatIndex adds the configured prefix to an index name
func FormatIndex(cfg config.Config, index string) string {
	return cfg.ElasticSearchPrefix + "-" + index
}

// EnsureIndex creates the activity index if it does not exist
func (c *Client) EnsureIndex() error {
	index := FormatIndex(c.cfg, ActivityIndex)

	res, err := c.es.Indices.Exists([]string{index})
	if err != nil {
		return fmt.Errorf("error checking if index %s exists: %w", index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	log.Info().Msgf("Creating index %s", index)
	createRes, err := c.es.Indices.Create(index)
	if err != nil {
		return fmt.Errorf("error creating index %s: %w", index, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("error creating index %s: %s", index, createRes.String())
	}
	return nil
}

// IndexActivity indexes one activity entry, keyed by its ID
func (c *Client) IndexActivity(ctx context.Context, entry *model.ActivityLog) error {
	doc, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal activity entry: %w", err)
	}

	index := FormatIndex(c.cfg, ActivityIndex)
	res, err := c.es.Index(
		index,
		bytes.NewReader(doc),
		c.es.Index.WithDocumentID(entry.ID.String()),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index activity entry: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing activity entry: %s", res.String())
	}
	return nil
}

// SearchActivity runs a full-text query over entity_name and performed_by,
// newest entries first
func (c *Client) SearchActivity(ctx context.Context, query string, limit int) ([]*model.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}

	body := map[string]interface{}{
		"size": limit,
		"sort": []map[string]interface{}{
			{"created_at": map[string]string{"order": "desc"}},
		},
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"entity_name", "performed_by"},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	index := FormatIndex(c.cfg, ActivityIndex)
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search activity entries: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching activity entries: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source model.ActivityLog `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	entries := make([]*model.ActivityLog, 0, len(result.Hits.Hits))
	for i := range result.Hits.Hits {
		entries = append(entries, &result.Hits.Hits[i].Source)
	}
	return entries, nil
}
