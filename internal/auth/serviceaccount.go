package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	googleTokenURL = "https://oauth2.googleapis.com/token"
	jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	tokenLifetime  = time.Hour
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB

	// ScopeSpreadsheets grants read/write access to Google Sheets.
	ScopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
)

// ErrTokenRejected indicates the OAuth endpoint refused the signed
// assertion (bad key, wrong client email, clock skew).
var ErrTokenRejected = errors.New("auth: token exchange rejected")

// ServiceAccount mints short-lived access tokens for a Google service
// account by signing a JWT assertion and exchanging it at the OAuth token
// endpoint. Tokens are cached until shortly before expiry.
type ServiceAccount struct {
	email    string
	key      *rsa.PrivateKey
	scopes   []string
	tokenURL string
	http     *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewServiceAccount builds a token source from a client email and a PEM
// private key. Escaped newlines in the key are unescaped so keys can be
// passed through environment variables.
func NewServiceAccount(email, privateKeyPEM string, scopes ...string) (*ServiceAccount, error) {
	if email == "" {
		return nil, errors.New("auth: service account email is empty")
	}

	key, err := parsePrivateKey(strings.ReplaceAll(privateKeyPEM, `\n`, "\n"))
	if err != nil {
		return nil, err
	}

	return &ServiceAccount{
		email:    email,
		key:      key,
		scopes:   scopes,
		tokenURL: googleTokenURL,
		http:     &http.Client{},
	}, nil
}

// Token returns a cached access token, minting a fresh one when the cache
// is empty or about to expire.
func (s *ServiceAccount) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expiry.Add(-time.Minute)) {
		return s.token, nil
	}

	token, expiresIn, err := s.exchange(ctx)
	if err != nil {
		return "", err
	}

	s.token = token
	s.expiry = time.Now().Add(expiresIn)
	return token, nil
}

func (s *ServiceAccount) exchange(ctx context.Context) (string, time.Duration, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   s.email,
		"scope": strings.Join(s.scopes, " "),
		"aud":   s.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key)
	if err != nil {
		return "", 0, fmt.Errorf("auth: signing assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {jwtBearerGrant},
		"assertion":  {assertion},
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("auth: creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("auth: token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", 0, fmt.Errorf("auth: reading token response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden ||
		resp.StatusCode == http.StatusBadRequest {
		return "", 0, fmt.Errorf("%w: status %d", ErrTokenRejected, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, fmt.Errorf("auth: unexpected token status %d", resp.StatusCode)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", 0, fmt.Errorf("auth: parsing token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", 0, errors.New("auth: token response missing access_token")
	}

	expiresIn := time.Duration(parsed.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = tokenLifetime
	}
	return parsed.AccessToken, expiresIn, nil
}

func parsePrivateKey(pemKey string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, errors.New("auth: private key is not PEM encoded")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("auth: parsing private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("auth: private key is not RSA")
	}
	return key, nil
}
