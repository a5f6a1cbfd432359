package analytics

import (
	"net/url"
)

// Pageview is a single pageview hit
// nil fields are left out of the hit
type Pageview struct {
	DocumentPath     string
	DocumentHost     *string
	UserIP           *string
	UserAgent        *string
	DocumentReferrer *string
}

// values returns the Measurement Protocol parameters for the hit
func (p Pageview) values(trackingId, clientId string) url.Values {
	v := url.Values{}
	v.Set("v", "1")
	v.Set("tid", trackingId)
	v.Set("cid", clientId)
	v.Set("t", "pageview")
	v.Set("dp", p.DocumentPath)
	setIfNotNil(v, "dh", p.DocumentHost)
	setIfNotNil(v, "uip", p.UserIP)
	setIfNotNil(v, "ua", p.UserAgent)
	setIfNotNil(v, "dr", p.DocumentReferrer)
	return v
}

func setIfNotNil(v url.Values, key string, value *string) {
	if value != nil {
		v.Set(key, *value)
	}
}
