package authenticator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const maxDiscoveryBytes = 1 << 20

// Resolver fetches the discovery document once and remembers it.
// Failures are not remembered, so the next call retries.
type Resolver struct {
	url    string
	client *http.Client

	mu  sync.Mutex
	doc *DiscoveryDocument
}

// NewResolver creates a resolver for the document at url
func NewResolver(url string, client *http.Client) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &Resolver{url: url, client: client}
}

// URL returns the discovery document address
func (r *Resolver) URL() string {
	return r.url
}

// Resolve returns the discovery document, fetching it on first use
func (r *Resolver) Resolve(ctx context.Context) (*DiscoveryDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doc != nil {
		return r.doc, nil
	}

	doc, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	r.doc = doc
	return doc, nil
}

func (r *Resolver) fetch(ctx context.Context) (*DiscoveryDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, &DiscoveryError{URL: r.url, Reason: "Invalid discovery document URL", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &DiscoveryError{URL: r.url, Reason: "Error while fetching discovery document", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DiscoveryError{
			URL:        r.url,
			StatusCode: resp.StatusCode,
			Reason:     fmt.Sprintf("Unexpected status (%d) when fetching discovery document", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDiscoveryBytes))
	if err != nil {
		return nil, &DiscoveryError{URL: r.url, Reason: "Error while fetching discovery document", Err: err}
	}

	var doc DiscoveryDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &DiscoveryError{URL: r.url, Reason: "Error while parsing discovery document", Err: err}
	}

	var missing []string
	if doc.AuthorizationEndpoint == "" {
		missing = append(missing, "authorization_endpoint")
	}
	if doc.TokenEndpoint == "" {
		missing = append(missing, "token_endpoint")
	}
	if doc.UserInfoEndpoint == "" {
		missing = append(missing, "userinfo_endpoint")
	}
	if len(missing) > 0 {
		return nil, &DiscoveryError{
			URL:     r.url,
			Missing: missing,
			Reason:  fmt.Sprintf("Missing %s in discovery document", strings.Join(missing, ", ")),
		}
	}

	return &doc, nil
}
