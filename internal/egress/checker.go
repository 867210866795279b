// Package egress verifies that outbound network access works from the
// execution environment by fetching a well-known external URL.
package egress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

const contentTypeHeader = "Content-Type"

// Doer is satisfied by *http.Client
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ Doer = (*http.Client)(nil)

// Checker issues a single GET against url and relays whatever comes back
type Checker struct {
	client Doer
	url    string
}

// NewChecker creates a new Checker
func NewChecker(client Doer, url string) *Checker {
	return &Checker{
		client: client,
		url:    url,
	}
}

// URL returns the endpoint probed by Check
func (c *Checker) URL() string {
	return c.url
}

// Check performs the GET. The status code is never interpreted: a 500 from
// the remote host is still proof that egress works, so it is returned as-is.
func (c *Checker) Check(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	logger := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to create request for %s: %w", c.url, err)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to GET %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to read response from %s: %w", c.url, err)
	}

	logger.Info().
		Str("url", c.url).
		Int("status_code", resp.StatusCode).
		Int("body_bytes", len(body)).
		Dur("elapsed", time.Since(started)).
		Msg("Egress check completed")

	// headers are always non-nil so the response never serializes nulls
	headers := map[string]string{}
	if contentType := resp.Header.Get(contentTypeHeader); contentType != "" {
		headers[contentTypeHeader] = contentType
	}

	return events.APIGatewayProxyResponse{
		StatusCode:        resp.StatusCode,
		Headers:           headers,
		MultiValueHeaders: map[string][]string{},
		Body:              string(body),
	}, nil
}

// Handle adapts Check to the Lambda handler signature; the event payload is ignored
func (c *Checker) Handle(ctx context.Context, _ json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return c.Check(ctx)
}
