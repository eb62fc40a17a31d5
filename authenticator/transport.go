package authenticator

import (
	"fmt"
	"io"
	"net/http"
)

// statusError is produced by statusCheckTransport for any non-200 answer
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// statusCheckTransport fails every response whose status is not exactly 200
type statusCheckTransport struct {
	base http.RoundTripper
}

func (t statusCheckTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &statusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return resp, nil
}

// strictClient returns a copy of client whose transport rejects non-200 answers
func strictClient(client *http.Client) *http.Client {
	strict := *client
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	strict.Transport = statusCheckTransport{base: base}
	return &strict
}
