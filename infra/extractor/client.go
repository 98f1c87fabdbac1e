package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Yalishenda/Invoice-Handler/entity"
)

// Client talks to the lattice table-extraction service. One call extracts
// every table of one document: the primary table first, then any
// continuation tables from later pages.
type Client struct {
	apiURL     string
	apiToken   string
	httpClient *http.Client
}

func NewClient(apiURL, apiToken string) *Client {
	return &Client{
		apiURL:   apiURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type extractRequest struct {
	FileName  string `json:"file_name"`
	Content   []byte `json:"content"`
	Pages     string `json:"pages"`
	Flavor    string `json:"flavor"`
	StripText string `json:"strip_text"`
}

type extractResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"msg"`
	Tables  [][][]string `json:"tables"`
}

func (c *Client) ExtractTables(ctx context.Context, doc entity.Document) ([]entity.RawTable, error) {
	reqBody := extractRequest{
		FileName:  doc.Name,
		Content:   doc.Content,
		Pages:     "all",
		Flavor:    "lattice",
		StripText: "\n",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/extract/tables", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, string(body))
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("extraction service error: %s", result.Message)
	}

	tables := make([]entity.RawTable, 0, len(result.Tables))
	for _, t := range result.Tables {
		tables = append(tables, entity.RawTable(t))
	}
	return tables, nil
}
