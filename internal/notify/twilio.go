package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	twilioBaseURL  = "https://api.twilio.com/2010-04-01"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrUnauthorized indicates the Twilio credentials were rejected.
var ErrUnauthorized = errors.New("notify: unauthorized")

// TwilioClient sends SMS messages through the Twilio REST API.
type TwilioClient struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	http       *http.Client
}

// NewTwilioClient creates an SMS notifier sending from the given number.
func NewTwilioClient(accountSID, authToken, from string) *TwilioClient {
	return &TwilioClient{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    twilioBaseURL,
		http:       &http.Client{},
	}
}

// Send implements Notifier.
func (c *TwilioClient) Send(ctx context.Context, to, body string) error {
	form := url.Values{
		"To":   {to},
		"From": {c.from},
		"Body": {body},
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("notify: creating request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("notify: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify: unexpected status %d", resp.StatusCode)
	}

	return nil
}
