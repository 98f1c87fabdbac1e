package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/Yalishenda/Invoice-Handler/consts"
	"github.com/Yalishenda/Invoice-Handler/entity"
)

// Client talks to the reservation record store. Reads are cursor-paged over
// one database; writes patch a single record's status property.
type Client struct {
	apiURL     string
	apiToken   string
	databaseID string
	pageSize   int
	httpClient *http.Client
}

func NewClient(apiURL, apiToken, databaseID string) *Client {
	return &Client{
		apiURL:     apiURL,
		apiToken:   apiToken,
		databaseID: databaseID,
		pageSize:   consts.DefaultPageSize,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []map[string]interface{} `json:"results"`
	HasMore    bool                     `json:"has_more"`
	NextCursor string                   `json:"next_cursor"`
}

// LoadReservations reads the full snapshot, page by page. Records that fail
// to decode are excluded from the matchable set and logged; they never abort
// the snapshot read.
func (c *Client) LoadReservations(ctx context.Context) ([]entity.Reservation, error) {
	var all []entity.Reservation
	cursor := ""

	for {
		page, err := c.queryPage(ctx, cursor)
		if err != nil {
			return nil, err
		}

		for _, raw := range page.Results {
			res, err := entity.DecodeReservation(raw)
			if err != nil {
				id, _ := raw["id"].(string)
				url, _ := raw["url"].(string)
				log.Warnf("[Records] Excluding record id=%s url=%s: %v", id, url, err)
				continue
			}
			all = append(all, res)
		}

		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	return all, nil
}

func (c *Client) queryPage(ctx context.Context, cursor string) (*queryResponse, error) {
	reqBody := queryRequest{PageSize: c.pageSize, StartCursor: cursor}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	url := fmt.Sprintf("%s/v1/databases/%s/query", c.apiURL, c.databaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("record store returned %d: %s", resp.StatusCode, string(body))
	}

	var page queryResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}
	return &page, nil
}

// UpdateReservationStatus patches one record's status property. A non-success
// response is an error; the caller decides whether the run continues.
func (c *Client) UpdateReservationStatus(ctx context.Context, r entity.Reservation, status string) error {
	payload := map[string]interface{}{
		"properties": map[string]interface{}{
			"status": map[string]interface{}{
				"status": map[string]interface{}{"name": status},
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal status update: %w", err)
	}

	url := fmt.Sprintf("%s/v1/pages/%s", c.apiURL, r.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send status update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("record store returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
}
