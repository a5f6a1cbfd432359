package mappers

import "strings"

// sampleFields is a well formed CloudFront access log line, split into fields
func sampleFields() []string {
	return []string{
		"2019-12-04",
		"21:02:31",
		"LAX1",
		"392",
		"192.0.2.100",
		"GET",
		"d111111abcdef8.cloudfront.net",
		"/index.html",
		"200",
		"https://example.com/start",
		"Mozilla/5.0%2520(Windows%2520NT%252010.0)",
		"a=1&b=2",
		"-",
		"Hit",
		"SOX4xwn4XV6Q4rgb7XiVGOHms_BGlTAC4KyHmureZmBNrjGdRLiNIQ==",
		"www.example.com",
		"https",
		"23",
		"0.001",
		"203.0.113.7",
		"TLSv1.2",
		"ECDHE-RSA-AES128-GCM-SHA256",
		"Hit",
	}
}

// sampleLine returns a tab separated log line, with the given fields replaced
func sampleLine(overrides map[int]string) string {
	fields := sampleFields()
	for i, v := range overrides {
		fields[i] = v
	}
	return strings.Join(fields, "\t")
}
