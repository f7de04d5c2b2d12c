// Package auth resolves credentials for the external ledger store. The
// rest of the system only sees opaque bearer tokens through TokenSource.
package auth

import "context"

// TokenSource supplies a bearer token valid for the ledger API.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, used in tests and local tooling.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}
