package analytics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/turbot/cloudfront-analytics-forwarder/constants"
	"github.com/valyala/fastjson"
)

// ErrInvalidHit is returned in validation mode when the collector rejects a hit
var ErrInvalidHit = errors.New("invalid hit")

// Client sends pageviews to an analytics property
type Client interface {
	Send(ctx context.Context, p Pageview) error
}

// HTTPClient is the subset of *http.Client used to post hits
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Options struct {
	TrackingId string
	// Endpoint is the collector base url, defaults to the Google Analytics collector
	Endpoint string
	// Validate posts hits to the debug endpoint and checks the parsing result
	Validate   bool
	HTTPClient HTTPClient
}

// MeasurementProtocolClient sends hits using the Google Analytics Measurement Protocol (v1)
// each hit is sent with a new client id, so every pageview is a new visitor
type MeasurementProtocolClient struct {
	trackingId string
	endpoint   string
	validate   bool
	httpClient HTTPClient
	parser     fastjson.ParserPool
}

func NewMeasurementProtocolClient(opts Options) (*MeasurementProtocolClient, error) {
	if opts.TrackingId == "" {
		return nil, errors.New("tracking id must be set")
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = constants.DefaultAnalyticsEndpoint
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &MeasurementProtocolClient{
		trackingId: opts.TrackingId,
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		validate:   opts.Validate,
		httpClient: httpClient,
	}, nil
}

func (c *MeasurementProtocolClient) Send(ctx context.Context, p Pageview) error {
	path := "/collect"
	if c.validate {
		path = "/debug/collect"
	}

	body := p.values(c.trackingId, uuid.NewString()).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create analytics request, %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send pageview, %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read analytics response, %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("analytics collector returned status %d", resp.StatusCode)
	}

	if c.validate {
		return c.checkParsingResult(respBody)
	}
	return nil
}

// checkParsingResult checks the debug collector response, which has the form
// {"hitParsingResult": [{"valid": bool, "parserMessage": [{"description": "..."}]}]}
func (c *MeasurementProtocolClient) checkParsingResult(body []byte) error {
	p := c.parser.Get()
	defer c.parser.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return fmt.Errorf("failed to parse validation response, %w", err)
	}

	results := v.GetArray("hitParsingResult")
	if len(results) == 0 {
		return fmt.Errorf("validation response has no hitParsingResult")
	}

	for _, result := range results {
		if result.GetBool("valid") {
			continue
		}
		var messages []string
		for _, m := range result.GetArray("parserMessage") {
			messages = append(messages, string(m.GetStringBytes("description")))
		}
		slog.Debug("Hit failed validation", "messages", messages)
		return fmt.Errorf("%w: %s", ErrInvalidHit, strings.Join(messages, "; "))
	}
	return nil
}
