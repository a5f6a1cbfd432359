package dispatch

import (
	"fmt"
	"net/url"

	"github.com/turbot/cloudfront-analytics-forwarder/analytics"
	"github.com/turbot/cloudfront-analytics-forwarder/table"
)

// BuildPageview builds the pageview hit for a log record
func BuildPageview(r *table.LogRecord) (analytics.Pageview, error) {
	var p analytics.Pageview

	if r.URI != nil {
		p.DocumentPath = *r.URI
	}
	if r.URIQuery != nil {
		p.DocumentPath += "?" + *r.URIQuery
	}

	p.DocumentHost = r.ForwardedHostHeaders

	p.UserIP = r.ClientIP
	if r.XForwardedFor != nil {
		p.UserIP = r.XForwardedFor
	}

	if r.UserAgent != nil {
		ua, err := decodeUserAgent(*r.UserAgent)
		if err != nil {
			return p, err
		}
		p.UserAgent = &ua
	}

	p.DocumentReferrer = r.Referrer
	return p, nil
}

// decodeUserAgent decodes the user agent, which CloudFront writes percent-encoded twice
func decodeUserAgent(ua string) (string, error) {
	decoded := ua
	for range 2 {
		var err error
		decoded, err = url.PathUnescape(decoded)
		if err != nil {
			return "", fmt.Errorf("failed to decode user agent '%s', %w", ua, err)
		}
	}
	return decoded, nil
}
