// Package blob resolves stored payment proof references to fetchable URLs.
// Proof uploads land in an object store fronted by a public base URL; the
// service keeps only the opaque reference and builds the URL on demand.
package blob

import (
	"context"
	"net/url"

	"marketplace/internal/pkg/errs"
)

// BaseURLStore implements ports.BlobStore by joining references onto a
// fixed public base URL.
type BaseURLStore struct {
	baseURL *url.URL
}

// NewBaseURLStore creates a store over the given base URL.
func NewBaseURLStore(rawBaseURL string) (*BaseURLStore, error) {
	if rawBaseURL == "" {
		return nil, errs.NewValueIsRequiredError("base URL")
	}

	baseURL, err := url.Parse(rawBaseURL)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("base URL", err)
	}
	if !baseURL.IsAbs() {
		return nil, errs.NewValueIsInvalidError("base URL")
	}

	return &BaseURLStore{baseURL: baseURL}, nil
}

// ResolveURL turns a stored reference into a fetchable URL.
func (s *BaseURLStore) ResolveURL(_ context.Context, ref string) (string, error) {
	if ref == "" {
		return "", errs.NewValueIsRequiredError("ref")
	}

	return s.baseURL.JoinPath(ref).String(), nil
}
