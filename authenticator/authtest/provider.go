// Package authtest runs a fake OpenID Connect provider for tests.
package authtest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Endpoint paths served by the fake provider
const (
	DiscoveryPath = "/.well-known/openid-configuration"
	AuthorizePath = "/authorize"
	TokenPath     = "/token"
	UserInfoPath  = "/userinfo"
	JWKSPath      = "/jwks"
)

const keyID = "authtest"

// Grant describes what the provider hands out for a code or refresh token
type Grant struct {
	// Claims are returned by the userinfo endpoint for the issued access token.
	Claims map[string]any
	// RefreshToken is included in the token response when non-empty.
	RefreshToken string
	// IDToken adds a signed ID token carrying Nonce to the token response.
	IDToken bool
	Nonce   string
}

// Provider is an httptest server speaking enough OpenID Connect for the
// login and refresh flows
type Provider struct {
	Server       *httptest.Server
	ClientID     string
	ClientSecret string

	key *rsa.PrivateKey

	mu        sync.Mutex
	discovery map[string]any
	codes     map[string]Grant
	refresh   map[string]Grant
	access    map[string]map[string]any
	status    map[string]int
	hits      map[string]int
	forms     []url.Values
	issued    int
}

// New starts a provider that is closed when the test ends
func New(t testing.TB) *Provider {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate signing key: %v", err)
	}

	p := &Provider{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		key:          key,
		codes:        make(map[string]Grant),
		refresh:      make(map[string]Grant),
		access:       make(map[string]map[string]any),
		status:       make(map[string]int),
		hits:         make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(DiscoveryPath, p.handleDiscovery)
	mux.HandleFunc(TokenPath, p.handleToken)
	mux.HandleFunc(UserInfoPath, p.handleUserInfo)
	mux.HandleFunc(JWKSPath, p.handleJWKS)
	p.Server = httptest.NewServer(mux)
	t.Cleanup(p.Server.Close)

	base := p.Server.URL
	p.discovery = map[string]any{
		"issuer":                 base,
		"authorization_endpoint": base + AuthorizePath,
		"token_endpoint":         base + TokenPath,
		"userinfo_endpoint":      base + UserInfoPath,
		"jwks_uri":               base + JWKSPath,
	}
	return p
}

// URL is the provider base address and issuer
func (p *Provider) URL() string {
	return p.Server.URL
}

// DiscoveryURL is the address of the discovery document
func (p *Provider) DiscoveryURL() string {
	return p.Server.URL + DiscoveryPath
}

// HTTPClient returns a client that talks to the provider
func (p *Provider) HTTPClient() *http.Client {
	return p.Server.Client()
}

// UpdateDiscovery edits the discovery document served from now on
func (p *Provider) UpdateDiscovery(edit func(doc map[string]any)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	edit(p.discovery)
}

// AddCode registers an authorization code
func (p *Provider) AddCode(code string, g Grant) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codes[code] = g
}

// AddRefreshToken registers a refresh token
func (p *Provider) AddRefreshToken(token string, g Grant) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refresh[token] = g
}

// SetStatus forces the endpoint at path to answer with status. Zero restores
// normal behaviour.
func (p *Provider) SetStatus(path string, status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status[path] = status
}

// Hits returns how many requests reached the endpoint at path
func (p *Provider) Hits(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits[path]
}

// TokenRequests returns the form of every token request received
func (p *Provider) TokenRequests() []url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]url.Values, len(p.forms))
	copy(out, p.forms)
	return out
}

// SignIDToken signs claims with the provider key
func (p *Provider) SignIDToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = keyID
	return token.SignedString(p.key)
}

func (p *Provider) begin(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hits[path]++
	return p.status[path]
}

func (p *Provider) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	if status := p.begin(DiscoveryPath); status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	p.mu.Lock()
	body, err := json.Marshal(p.discovery)
	p.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (p *Provider) handleToken(w http.ResponseWriter, r *http.Request) {
	status := p.begin(TokenPath)

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_request"})
		return
	}

	p.mu.Lock()
	p.forms = append(p.forms, r.PostForm)
	p.mu.Unlock()

	if status != 0 {
		writeJSON(w, status, map[string]any{"error": "server_error"})
		return
	}
	if r.PostForm.Get("client_id") != p.ClientID || r.PostForm.Get("client_secret") != p.ClientSecret {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid_client"})
		return
	}

	var (
		grant Grant
		ok    bool
	)
	p.mu.Lock()
	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		grant, ok = p.codes[r.PostForm.Get("code")]
	case "refresh_token":
		grant, ok = p.refresh[r.PostForm.Get("refresh_token")]
	}
	if ok {
		p.issued++
	}
	accessToken := fmt.Sprintf("access-%d", p.issued)
	if ok {
		p.access[accessToken] = grant.Claims
	}
	p.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant"})
		return
	}

	resp := map[string]any{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	}
	if grant.RefreshToken != "" {
		resp["refresh_token"] = grant.RefreshToken
	}
	if grant.IDToken {
		now := time.Now()
		sub, _ := grant.Claims["email"].(string)
		idToken, err := p.SignIDToken(jwt.MapClaims{
			"iss":   p.Server.URL,
			"sub":   sub,
			"aud":   p.ClientID,
			"iat":   now.Unix(),
			"exp":   now.Add(time.Hour).Unix(),
			"nonce": grant.Nonce,
		})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		resp["id_token"] = idToken
	}
	writeJSON(w, http.StatusOK, resp)
}

func (p *Provider) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	if status := p.begin(UserInfoPath); status != 0 {
		writeJSON(w, status, map[string]any{"error": "server_error"})
		return
	}

	accessToken := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	p.mu.Lock()
	claims, ok := p.access[accessToken]
	p.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid_token"})
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func (p *Provider) handleJWKS(w http.ResponseWriter, r *http.Request) {
	p.begin(JWKSPath)

	pub := p.key.PublicKey
	writeJSON(w, http.StatusOK, map[string]any{
		"keys": []map[string]any{{
			"kty": "RSA",
			"alg": "RS256",
			"use": "sig",
			"kid": keyID,
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
