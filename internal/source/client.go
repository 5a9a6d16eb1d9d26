package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"leasedash/server/config"
	"leasedash/server/internal/models"
)

// Client fetches raw leasing rows from the remote query service. The service
// is opaque: rows come back already denormalized and this client does not
// interpret them beyond JSON decoding.
type Client struct {
	baseURL    string
	sessionKey string
	queryID    string
	logger     *logrus.Logger
	client     *http.Client
}

func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	timeout := time.Duration(cfg.Upstream.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.Upstream.BaseURL,
		sessionKey: cfg.Upstream.SessionKey,
		queryID:    cfg.Upstream.QueryID,
		logger:     logger,
		client:     &http.Client{Timeout: timeout},
	}
}

type queryResponse struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Data    []models.RawRecord `json:"data"`
}

// FetchRecords runs the configured query against the upstream service and
// returns the raw rows.
func (c *Client) FetchRecords(ctx context.Context) ([]models.RawRecord, error) {
	params := url.Values{
		"query_id":    []string{c.queryID},
		"session_key": []string{c.sessionKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/run_query", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("query_id", c.queryID).Error("Query request failed")
		return nil, fmt.Errorf("query request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.WithError(err).WithField("query_id", c.queryID).Error("Failed to read response")
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"query_id":    c.queryID,
			"status_code": resp.StatusCode,
		}).Error("Upstream returned non-200 status")
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var result queryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.WithError(err).WithField("query_id", c.queryID).Error("Failed to parse response")
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("query %s failed: %s", c.queryID, result.Message)
	}

	c.logger.WithFields(logrus.Fields{
		"query_id": c.queryID,
		"rows":     len(result.Data),
	}).Info("Fetched leasing rows from upstream")

	return result.Data, nil
}
