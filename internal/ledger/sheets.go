package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/znicholasbrown/student-loan-flow-bot/internal/auth"
)

const (
	sheetsBaseURL  = "https://sheets.googleapis.com/v4/spreadsheets"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnauthorized indicates the access token was rejected.
	ErrUnauthorized = errors.New("ledger: unauthorized")
	// ErrRateLimited indicates the Sheets API rate limit was hit.
	ErrRateLimited = errors.New("ledger: rate limited")
)

// SheetsClient implements Store against the Google Sheets values API.
type SheetsClient struct {
	spreadsheetID string
	loanRange     string
	tokens        auth.TokenSource
	baseURL       string
	http          *http.Client
}

// NewSheetsClient creates a ledger client for one spreadsheet. loanRange
// covers the loan table including its header row, which ReadLoans skips.
func NewSheetsClient(spreadsheetID, loanRange string, tokens auth.TokenSource) *SheetsClient {
	return &SheetsClient{
		spreadsheetID: spreadsheetID,
		loanRange:     loanRange,
		tokens:        tokens,
		baseURL:       sheetsBaseURL,
		http:          &http.Client{},
	}
}

// valueRange mirrors the Sheets API values payload.
type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

// ReadLoans fetches the loan table and returns its data rows, header
// excluded, in sheet order.
func (c *SheetsClient) ReadLoans(ctx context.Context) ([][]string, error) {
	vr, err := c.getValues(ctx, c.loanRange)
	if err != nil {
		return nil, err
	}
	if len(vr.Values) <= 1 {
		return nil, nil
	}
	return vr.Values[1:], nil
}

// ReadCell fetches the text value of a single cell.
func (c *SheetsClient) ReadCell(ctx context.Context, ref string) (string, error) {
	vr, err := c.getValues(ctx, ref)
	if err != nil {
		return "", err
	}
	if len(vr.Values) == 0 || len(vr.Values[0]) == 0 {
		return "", fmt.Errorf("ledger: cell %s is empty", ref)
	}
	return vr.Values[0][0], nil
}

// WriteCell overwrites a single cell with the given value.
func (c *SheetsClient) WriteCell(ctx context.Context, ref, value string) error {
	body, err := json.Marshal(valueRange{Values: [][]string{{value}}})
	if err != nil {
		return fmt.Errorf("ledger: encoding cell update: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=USER_ENTERED",
		c.baseURL, c.spreadsheetID, url.PathEscape(ref))

	_, err = c.do(ctx, http.MethodPut, endpoint, body)
	return err
}

func (c *SheetsClient) getValues(ctx context.Context, ref string) (*valueRange, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, c.spreadsheetID, url.PathEscape(ref))

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var vr valueRange
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("ledger: parsing values response: %w", err)
	}
	return &vr, nil
}

// do performs an authenticated request and returns the response body.
func (c *SheetsClient) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: resolving credentials: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("ledger: creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ledger: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("ledger: reading response: %w", err)
	}
	return data, nil
}
