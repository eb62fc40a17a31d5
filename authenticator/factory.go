package authenticator

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Factory builds clients that share an HTTP client and logger
type Factory struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewFactory creates a client factory
func NewFactory(httpClient *http.Client, logger *logrus.Logger) *Factory {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Factory{httpClient: httpClient, logger: logger}
}

// NewResolver creates a discovery resolver using the factory's HTTP client
func (f *Factory) NewResolver(discoveryURL string) *Resolver {
	return NewResolver(discoveryURL, f.httpClient)
}

// NewClient creates a client with its own discovery resolver
func (f *Factory) NewClient(cfg Config) (Provider, error) {
	return NewClient(cfg, WithHTTPClient(f.httpClient), WithLogger(f.logger))
}

// NewClientWithResolver creates a client that shares resolver r
func (f *Factory) NewClientWithResolver(cfg Config, r *Resolver) (Provider, error) {
	return NewClient(cfg, WithHTTPClient(f.httpClient), WithLogger(f.logger), WithResolver(r))
}
